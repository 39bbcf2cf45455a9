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

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Intcode/go/intcode"
)

// Mode is the addressing mode of an instruction operand.
type Mode byte

const (
	ModePosition  Mode = 0 // < the operand is the address of the value
	ModeImmediate Mode = 1 // < the operand is the value itself
	ModeRelative  Mode = 2 // < the operand is an address offset to the relative base
)

func (m Mode) isValid() bool {
	return m <= ModeRelative
}

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", byte(m))
}

// modeDigitDivisors selects the decimal digit of an instruction word holding
// the mode of each operand: the hundreds digit is the mode of the first
// operand, the thousands digit of the second, the ten-thousands digit of the
// third.
var modeDigitDivisors = [maxOperands]intcode.Word{100, 1_000, 10_000}

// opCodeDivisor extracts the two lowest decimal digits of an instruction word.
const opCodeDivisor = 100

// Parameter is a decoded instruction operand.
type Parameter struct {
	Mode  Mode
	Value intcode.Word
}

func (p Parameter) String() string {
	switch p.Mode {
	case ModePosition:
		return fmt.Sprintf("[%d]", p.Value)
	case ModeImmediate:
		return fmt.Sprintf("%d", p.Value)
	case ModeRelative:
		if p.Value < 0 {
			return fmt.Sprintf("[rb%d]", p.Value)
		}
		return fmt.Sprintf("[rb+%d]", p.Value)
	}
	return fmt.Sprintf("%v(%d)", p.Mode, p.Value)
}

// Instruction is a decoded instruction with its operands.
type Instruction struct {
	OpCode OpCode
	Params [maxOperands]Parameter
}

// Operands returns the operands used by the instruction.
func (i Instruction) Operands() []Parameter {
	return i.Params[:_precomputedOpCodeInfo.get(i.OpCode).operands]
}

// Target returns the operand the instruction writes its result to. The
// second result is false for instructions not writing to memory.
func (i Instruction) Target() (Parameter, bool) {
	target := _precomputedOpCodeInfo.get(i.OpCode).target
	if target < 0 {
		return Parameter{}, false
	}
	return i.Params[target], true
}

// Width returns the number of words occupied by the instruction.
func (i Instruction) Width() int {
	return i.OpCode.Width()
}

func (i Instruction) String() string {
	var builder strings.Builder
	builder.WriteString(i.OpCode.String())
	for _, param := range i.Operands() {
		builder.WriteByte(' ')
		builder.WriteString(param.String())
	}
	return builder.String()
}

// decode decodes the instruction stored at the given position of the memory.
// The position must not be negative.
func decode(memory *Memory, pc intcode.Word) (Instruction, error) {
	word := memory.Read(pc)
	if word < 0 {
		return Instruction{}, fmt.Errorf("%w %d at position %d", intcode.ErrInvalidOpCode, word, pc)
	}
	op := OpCode(word % opCodeDivisor)
	info := _precomputedOpCodeInfo.get(op)
	if !info.valid {
		return Instruction{}, fmt.Errorf("%w %d at position %d", intcode.ErrInvalidOpCode, word, pc)
	}

	res := Instruction{OpCode: op}
	for i := 0; i < info.operands; i++ {
		mode := Mode(word / modeDigitDivisors[i] % 10)
		if !mode.isValid() {
			return Instruction{}, fmt.Errorf("%w %d for operand %d of instruction %d at position %d", intcode.ErrInvalidMode, mode, i+1, word, pc)
		}
		res.Params[i] = Parameter{
			Mode:  mode,
			Value: memory.Read(pc + 1 + intcode.Word(i)),
		}
	}
	return res, nil
}
