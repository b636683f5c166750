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

package check

import (
	"strconv"

	"github.com/CyberPaddy/torth/program"
)

// blockKind distinguishes the two grammars that share the DO/ELIF/ELSE/ENDIF
// and DO/DONE closers: an IF-family chain and a WHILE loop. Grounded on
// original_source/compiler/asm.py's get_parent_op_type_do nesting counter,
// which separately tracks IF/ELIF nesting from WHILE nesting for exactly
// this reason.
type blockKind int

const (
	kindIf blockKind = iota
	kindWhile
)

// frame is one open block on the control-flow stack.
type frame struct {
	kind      blockKind
	opener    program.Op
	loopEntry []value // WHILE only: stack shape at the WHILE op itself
	bodyEntry []value // shape every arm of this block must reproduce by its closer
	sawDo     bool    // whether the matching DO for the current arm has run
}

// Checker simulates a Program's operand stack. All state lives on the
// receiver, never in a package global (spec.md §9).
type Checker struct {
	stack  []value
	blocks []frame
}

// Check runs the stack simulation over prog and returns the first violation
// found, or nil if prog is well-typed and leaves the stack empty.
func Check(prog program.Program) error {
	c := &Checker{}
	for _, op := range prog {
		if err := c.step(op); err != nil {
			return err
		}
	}
	if len(c.blocks) > 0 {
		return &ErrUnclosedBlock{Opener: c.blocks[len(c.blocks)-1].opener.Token}
	}
	if len(c.stack) > 0 {
		return &ErrNonEmptyFinalStack{Remaining: tagsOf(c.stack)}
	}
	return nil
}

func (c *Checker) pop(op program.Op) (value, error) {
	if len(c.stack) == 0 {
		return value{}, &ErrEmptyStack{Op: op}
	}
	v := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return v, nil
}

func (c *Checker) popExpect(op program.Op, want Tag) error {
	got, err := c.pop(op)
	if err != nil {
		return err
	}
	if got.Tag != want {
		return &ErrTypeMismatch{Op: op, Expected: want, Got: got.Tag}
	}
	return nil
}

func (c *Checker) push(t Tag) {
	c.stack = append(c.stack, value{Tag: t})
}

func (c *Checker) pushValue(v value) {
	c.stack = append(c.stack, v)
}

// pushLiteral records a PUSH_INT whose value is read straight off the
// token, so a later NTH against it can be bounds-checked.
func (c *Checker) pushLiteral(tok string) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		c.push(Int)
		return
	}
	c.stack = append(c.stack, value{Tag: Int, Lit: n, HasLit: true})
}

func (c *Checker) top() *frame {
	if len(c.blocks) == 0 {
		return nil
	}
	return &c.blocks[len(c.blocks)-1]
}

func (c *Checker) nearestWhile() *frame {
	for i := len(c.blocks) - 1; i >= 0; i-- {
		if c.blocks[i].kind == kindWhile {
			return &c.blocks[i]
		}
	}
	return nil
}

func (c *Checker) step(op program.Op) error {
	switch op.Type {
	case program.PushInt:
		c.pushLiteral(op.Token.Value)
	case program.PushBool:
		c.push(Bool)
	case program.PushChar:
		c.push(Char)
	case program.PushPtr:
		c.push(Ptr)
	case program.PushStr:
		c.push(Str)
	case program.PushCstr:
		c.push(Ptr)
	case program.PushUint8:
		c.push(Uint8)
	case program.PushArray:
		c.push(Ptr)

	case program.CastBool:
		if _, err := c.pop(op); err != nil {
			return err
		}
		c.push(Bool)
	case program.CastChar:
		if _, err := c.pop(op); err != nil {
			return err
		}
		c.push(Char)
	case program.CastInt:
		if _, err := c.pop(op); err != nil {
			return err
		}
		c.push(Int)
	case program.CastPtr:
		if _, err := c.pop(op); err != nil {
			return err
		}
		c.push(Ptr)
	case program.CastStr:
		if _, err := c.pop(op); err != nil {
			return err
		}
		c.push(Str)

	case program.If:
		// IF only opens the block; the condition computed after it is
		// consumed by the following DO.
		c.blocks = append(c.blocks, frame{kind: kindIf, opener: op})
	case program.Elif:
		top := c.top()
		if top == nil || top.kind != kindIf {
			return &ErrUnstructuredControlFlow{Op: op, Reason: "ELIF without a matching IF"}
		}
		if top.sawDo && !sameShape(c.stack, top.bodyEntry) {
			return &ErrBranchShapeMismatch{Op: op, Expected: tagsOf(top.bodyEntry), Got: tagsOf(c.stack)}
		}
		// ELIF re-tests a condition already computed on the stack: it
		// duplicates the top value for the following DO to consume
		// (DESIGN.md Open Question 4, "ELIF is like DUP").
		v, err := c.pop(op)
		if err != nil {
			return err
		}
		c.pushValue(v)
		c.pushValue(v)
	case program.Else:
		top := c.top()
		if top == nil || top.kind != kindIf {
			return &ErrUnstructuredControlFlow{Op: op, Reason: "ELSE without a matching IF"}
		}
		if top.sawDo && !sameShape(c.stack, top.bodyEntry) {
			return &ErrBranchShapeMismatch{Op: op, Expected: tagsOf(top.bodyEntry), Got: tagsOf(c.stack)}
		}
		top.bodyEntry = cloneShape(c.stack)
	case program.Endif:
		top := c.top()
		if top == nil || top.kind != kindIf {
			return &ErrUnstructuredControlFlow{Op: op, Reason: "ENDIF without a matching IF"}
		}
		if top.sawDo && !sameShape(c.stack, top.bodyEntry) {
			return &ErrBranchShapeMismatch{Op: op, Expected: tagsOf(top.bodyEntry), Got: tagsOf(c.stack)}
		}
		c.blocks = c.blocks[:len(c.blocks)-1]

	case program.While:
		c.blocks = append(c.blocks, frame{kind: kindWhile, opener: op, loopEntry: cloneShape(c.stack)})
	case program.Do:
		top := c.top()
		if top == nil {
			return &ErrUnstructuredControlFlow{Op: op, Reason: "DO without a matching IF/ELIF/WHILE"}
		}
		if err := c.popExpect(op, Bool); err != nil {
			return err
		}
		top.bodyEntry = cloneShape(c.stack)
		top.sawDo = true
	case program.Done:
		top := c.top()
		if top == nil || top.kind != kindWhile {
			return &ErrUnstructuredControlFlow{Op: op, Reason: "DONE without a matching WHILE"}
		}
		if !sameShape(c.stack, top.loopEntry) {
			return &ErrBranchShapeMismatch{Op: op, Expected: tagsOf(top.loopEntry), Got: tagsOf(c.stack)}
		}
		c.blocks = c.blocks[:len(c.blocks)-1]
	case program.Break, program.Continue:
		if c.nearestWhile() == nil {
			return &ErrUnstructuredControlFlow{Op: op, Reason: "BREAK/CONTINUE outside any WHILE"}
		}

	case program.Intrinsic:
		if err := c.intrinsic(op); err != nil {
			return err
		}
	}
	return nil
}
