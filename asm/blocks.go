// This file is part of torth - https://github.com/CyberPaddy/torth
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"strconv"

	"github.com/CyberPaddy/torth/program"
)

type chainKind int

const (
	chainIf chainKind = iota
	chainWhile
)

type chainFrame struct {
	kind        chainKind
	headID      int
	pendingDoID int
	chainIDs    []int // ELIF/ELSE op ids in this IF-chain, resolved to the ENDIF id once seen
}

// blockLinks is the result of matchBlocks: everything the per-op assembly
// templates need to resolve a jump target, computed once in a single
// forward pass over the Program instead of the repeated rescans of
// original_source/compiler/asm.py's get_do_asm/get_parent_while (spec.md §9's
// redesign flag). assumes prog already passed check.Check: structural
// balance is not re-validated here.
type blockLinks struct {
	doTarget    map[int]string // DO id -> formatted label it jumps to on false
	chainCloser map[int]int    // ELIF/ELSE id -> its ENDIF id
	whileHeadOf map[int]int    // BREAK/CONTINUE id -> enclosing WHILE's own id
	doneOfWhile map[int]int    // WHILE head id -> DONE id
	whileOfDone map[int]int    // DONE id -> its WHILE head id
}

func matchBlocks(prog program.Program) *blockLinks {
	links := &blockLinks{
		doTarget:    map[int]string{},
		chainCloser: map[int]int{},
		whileHeadOf: map[int]int{},
		doneOfWhile: map[int]int{},
		whileOfDone: map[int]int{},
	}

	var stack []chainFrame
	top := func() *chainFrame { return &stack[len(stack)-1] }

	for _, op := range prog {
		switch op.Type {
		case program.If:
			stack = append(stack, chainFrame{kind: chainIf, headID: op.ID, pendingDoID: -1})
		case program.While:
			stack = append(stack, chainFrame{kind: chainWhile, headID: op.ID, pendingDoID: -1})
		case program.Do:
			if len(stack) > 0 {
				top().pendingDoID = op.ID
			}
		case program.Elif:
			if len(stack) == 0 {
				continue
			}
			t := top()
			if t.pendingDoID >= 0 {
				links.doTarget[t.pendingDoID] = label(program.Elif, op.ID)
				t.pendingDoID = -1
			}
			t.chainIDs = append(t.chainIDs, op.ID)
		case program.Else:
			if len(stack) == 0 {
				continue
			}
			t := top()
			if t.pendingDoID >= 0 {
				links.doTarget[t.pendingDoID] = label(program.Else, op.ID)
				t.pendingDoID = -1
			}
			t.chainIDs = append(t.chainIDs, op.ID)
		case program.Endif:
			if len(stack) == 0 {
				continue
			}
			t := *top()
			if t.pendingDoID >= 0 {
				links.doTarget[t.pendingDoID] = label(program.Endif, op.ID)
			}
			for _, id := range t.chainIDs {
				links.chainCloser[id] = op.ID
			}
			stack = stack[:len(stack)-1]
		case program.Done:
			if len(stack) == 0 {
				continue
			}
			t := *top()
			if t.pendingDoID >= 0 {
				links.doTarget[t.pendingDoID] = label(program.Done, op.ID)
			}
			links.doneOfWhile[t.headID] = op.ID
			links.whileOfDone[op.ID] = t.headID
			stack = stack[:len(stack)-1]
		case program.Break, program.Continue:
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].kind == chainWhile {
					links.whileHeadOf[op.ID] = stack[i].headID
					break
				}
			}
		}
	}
	return links
}

// label formats a jump target the way every get_*_asm function in
// original_source/compiler/asm.py does: the target Op's Type name followed
// by its id, e.g. "ENDIF42".
func label(t program.Type, id int) string {
	return t.String() + strconv.Itoa(id)
}
