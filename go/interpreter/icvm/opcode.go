// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package icvm

import "fmt"

// OpCode is the base operation code of an instruction, the two lowest
// decimal digits of an instruction word.
type OpCode byte

const (
	ADD                  OpCode = 1
	MUL                  OpCode = 2
	INPUT                OpCode = 3
	OUTPUT               OpCode = 4
	JUMP_IF_TRUE         OpCode = 5
	JUMP_IF_FALSE        OpCode = 6
	LESS_THAN            OpCode = 7
	EQUALS               OpCode = 8
	ADJUST_RELATIVE_BASE OpCode = 9
	HALT                 OpCode = 99
)

// numOpCodes is the size of the OpCode space, all values of `word mod 100`.
const numOpCodes = 100

// maxOperands is the largest number of operands of any instruction.
const maxOperands = 3

func (op OpCode) String() string {
	switch op {
	case ADD:
		return "ADD"
	case MUL:
		return "MUL"
	case INPUT:
		return "INPUT"
	case OUTPUT:
		return "OUTPUT"
	case JUMP_IF_TRUE:
		return "JUMP_IF_TRUE"
	case JUMP_IF_FALSE:
		return "JUMP_IF_FALSE"
	case LESS_THAN:
		return "LESS_THAN"
	case EQUALS:
		return "EQUALS"
	case ADJUST_RELATIVE_BASE:
		return "ADJUST_RELATIVE_BASE"
	case HALT:
		return "HALT"
	}
	return fmt.Sprintf("op(%d)", byte(op))
}

// opCodeInfo summarizes the static properties of an OpCode.
type opCodeInfo struct {
	valid    bool
	operands int // < number of operands following the instruction word
	target   int // < index of the operand written to, -1 if none
}

// width is the number of memory words occupied by the instruction.
func (i opCodeInfo) width() int {
	return i.operands + 1
}

func getOpCodeInfo(op OpCode) opCodeInfo {
	switch op {
	case ADD, MUL, LESS_THAN, EQUALS:
		return opCodeInfo{valid: true, operands: 3, target: 2}
	case INPUT:
		return opCodeInfo{valid: true, operands: 1, target: 0}
	case OUTPUT, ADJUST_RELATIVE_BASE:
		return opCodeInfo{valid: true, operands: 1, target: -1}
	case JUMP_IF_TRUE, JUMP_IF_FALSE:
		return opCodeInfo{valid: true, operands: 2, target: -1}
	case HALT:
		return opCodeInfo{valid: true, operands: 0, target: -1}
	}
	return opCodeInfo{target: -1}
}

// IsValid returns true if the OpCode is part of the instruction set.
func (op OpCode) IsValid() bool {
	return _precomputedOpCodeInfo.get(op).valid
}

// Width returns the number of memory words occupied by an instruction with
// this OpCode, including the instruction word itself. Invalid OpCodes have a
// width of 1.
func (op OpCode) Width() int {
	return _precomputedOpCodeInfo.get(op).width()
}

// opCodePropertyMap is a generic property map for precomputed values.
// Its purpose is to provide a precomputed lookup table for OpCode properties
// that can be generated from a function that takes an OpCode as input.
type opCodePropertyMap[T any] struct {
	lookup [numOpCodes]T
}

// newOpCodePropertyMap creates a new OpCode property map.
// The property function shall be resilient to undefined OpCode values, and not
// panic. The zero values or a sentinel value shall be used in such cases.
func newOpCodePropertyMap[T any](property func(op OpCode) T) opCodePropertyMap[T] {
	lookup := [numOpCodes]T{}
	for i := 0; i < numOpCodes; i++ {
		lookup[i] = property(OpCode(i))
	}
	return opCodePropertyMap[T]{lookup}
}

func (p *opCodePropertyMap[T]) get(op OpCode) T {
	if int(op) >= numOpCodes {
		var zero T
		return zero
	}
	return p.lookup[op]
}

var _precomputedOpCodeInfo = newOpCodePropertyMap(getOpCodeInfo)

// allOpCodes lists the OpCodes of the instruction set in ascending order.
func allOpCodes() []OpCode {
	res := []OpCode{}
	for i := 0; i < numOpCodes; i++ {
		if op := OpCode(i); op.IsValid() {
			res = append(res, op)
		}
	}
	return res
}
