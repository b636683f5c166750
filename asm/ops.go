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
	"fmt"

	"github.com/CyberPaddy/torth/program"
)

// pushIntASM covers PUSH_INT, PUSH_UINT8 and PUSH_BOOL alike: token.Normalize
// already folds TRUE/FALSE to "1"/"0" at lex time (unlike
// original_source/compiler/asm.py's get_push_bool_asm, which still branches
// on the literal text "TRUE"), so by the time a token reaches this package
// a bool literal's Value is already the decimal integer to move into rax.
func pushIntASM(value string) string {
	return fmt.Sprintf("  mov rax, %s\n  push rax\n", value)
}

// pushCharASM pushes a CHAR literal's ordinal value, e.g. 'a' -> 97.
func pushCharASM(op program.Op) string {
	v := op.Token.Value
	ch := byte('\'')
	if len(v) > 1 {
		ch = v[1]
	}
	return fmt.Sprintf("  mov rax, %d\n  push rax\n", ch)
}

// pushPtrASM pushes a Constant/Memory name's address; NASM's own
// %define/label resolution substitutes the name's value.
func pushPtrASM(name string) string {
	return fmt.Sprintf("  mov rax, %s\n  push rax\n", name)
}

// pushVarPtrASM pushes the address of a PUSH_STR/PUSH_CSTR/PUSH_ARRAY
// variable declared by asm.go into .data under label sN.
func pushVarPtrASM(op program.Op) string {
	return fmt.Sprintf("  mov rsi, s%d ; Pointer to string\n  push rsi\n", op.ID)
}

// doASM is DO's conditional jump to whatever op closes its IF/ELIF/WHILE
// chain (an ELIF, ELSE, ENDIF or DONE label), resolved once by matchBlocks
// instead of get_do_asm's per-DO rescan.
func doASM(op program.Op, links *blockLinks) string {
	target, ok := links.doTarget[op.ID]
	if !ok {
		return ""
	}
	return fmt.Sprintf("  pop rax\n  add rsp, 8\n  test rax, rax\n  jz %s\n", target)
}

// chainJumpASM is ELIF/ELSE's "jump to ENDIF, then mark this op's own
// label for DO to target" pair.
func chainJumpASM(op program.Op, links *blockLinks) string {
	closer, ok := links.chainCloser[op.ID]
	if !ok {
		return ""
	}
	return fmt.Sprintf("  jmp %s\n%s:\n", label(program.Endif, closer), label(op.Type, op.ID))
}

// breakASM is BREAK's unconditional jump to the enclosing loop's DONE.
func breakASM(op program.Op, links *blockLinks) string {
	head, ok := links.whileHeadOf[op.ID]
	if !ok {
		return ""
	}
	done, ok := links.doneOfWhile[head]
	if !ok {
		return ""
	}
	return fmt.Sprintf("  jmp %s\n", label(program.Done, done))
}

// continueASM is CONTINUE's unconditional jump back to the enclosing
// loop's WHILE, followed by its own DONE-named label (matching
// get_continue_asm, which reuses the DONE-prefixed label name for the
// landing site so BREAK's jump table doesn't need a third label kind).
func continueASM(op program.Op, links *blockLinks) string {
	head, ok := links.whileHeadOf[op.ID]
	if !ok {
		return ""
	}
	return fmt.Sprintf("  jmp %s\n%s:\n", label(program.While, head), label(program.Done, op.ID))
}

// doneASM is the loop tail: unconditional jump back to WHILE, then its own
// label for BREAK (via doneOfWhile) to target.
func doneASM(op program.Op, links *blockLinks) string {
	head, ok := links.whileOfDone[op.ID]
	if !ok {
		return ""
	}
	return fmt.Sprintf("  jmp %s\n%s:\n", label(program.While, head), label(program.Done, op.ID))
}
