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
	"fmt"

	"github.com/CyberPaddy/torth/program"
	"github.com/CyberPaddy/torth/token"
)

// ErrEmptyStack is POP_FROM_EMPTY_STACK: an Op required an operand the
// simulated stack did not have.
type ErrEmptyStack struct {
	Op program.Op
}

func (e *ErrEmptyStack) Error() string {
	return fmt.Sprintf("POP_FROM_EMPTY_STACK: %s at %s", e.Op.Type, e.Op.Token.Location)
}

// ErrTypeMismatch is TYPE_MISMATCH: an Op's operand(s) did not have the tag
// the operation requires.
type ErrTypeMismatch struct {
	Op       program.Op
	Expected Tag
	Got      Tag
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("TYPE_MISMATCH: %s expected %s, got %s at %s", e.Op.Type, e.Expected, e.Got, e.Op.Token.Location)
}

// ErrBranchShapeMismatch is BRANCH_SHAPE_MISMATCH: two arms of the same
// IF/ELIF/ELSE chain, or a WHILE loop's body, left the stack in different
// shapes.
type ErrBranchShapeMismatch struct {
	Op       program.Op
	Expected []Tag
	Got      []Tag
}

func (e *ErrBranchShapeMismatch) Error() string {
	return fmt.Sprintf("BRANCH_SHAPE_MISMATCH: %s expected stack shape %v, got %v at %s", e.Op.Type, e.Expected, e.Got, e.Op.Token.Location)
}

// ErrUnstructuredControlFlow covers every way a control-flow Op can appear
// without the opener its grammar requires: DO/DONE/ELIF/ELSE/ENDIF with no
// matching IF/WHILE, or BREAK/CONTINUE outside any WHILE.
type ErrUnstructuredControlFlow struct {
	Op     program.Op
	Reason string
}

func (e *ErrUnstructuredControlFlow) Error() string {
	return fmt.Sprintf("UNSTRUCTURED_CONTROL_FLOW: %s at %s: %s", e.Op.Type, e.Op.Token.Location, e.Reason)
}

// ErrUnclosedBlock is returned when the Program ends with open IF/WHILE
// frames still on the block stack.
type ErrUnclosedBlock struct {
	Opener token.Token
}

func (e *ErrUnclosedBlock) Error() string {
	return fmt.Sprintf("UNSTRUCTURED_CONTROL_FLOW: block opened at %s was never closed", e.Opener.Location)
}

// ErrNonEmptyFinalStack is returned when the Program finishes with values
// still on the simulated stack.
type ErrNonEmptyFinalStack struct {
	Remaining []Tag
}

func (e *ErrNonEmptyFinalStack) Error() string {
	return fmt.Sprintf("TYPE_MISMATCH: program left %d value(s) on the stack: %v", len(e.Remaining), e.Remaining)
}
