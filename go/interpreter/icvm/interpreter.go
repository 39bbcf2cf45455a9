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

	"github.com/Fantom-foundation/Intcode/go/intcode"
)

// status is enumeration of the execution state of an interpreter run.
type status byte

const (
	statusRunning    status = iota // < all fine, ops are processed
	statusOutput                   // < execution paused after producing an output
	statusNeedsInput               // < execution paused at an Input without a value
	statusHalted                   // < execution stopped with a HALT
)

func (s status) String() string {
	switch s {
	case statusRunning:
		return "running"
	case statusOutput:
		return "output"
	case statusNeedsInput:
		return "needs-input"
	case statusHalted:
		return "halted"
	}
	return fmt.Sprintf("status(%d)", byte(s))
}

// context is the execution state of a single program. It is created once per
// engine and survives suspensions, so a resumed run continues exactly where
// the previous one stopped.
type context struct {
	memory *Memory
	pc     intcode.Word // < position of the next instruction
	base   intcode.Word // < the relative base

	// input is the value offered by the caller, consumed by the next
	// executed Input instruction. nil if no value is pending.
	input *intcode.Word
	// output is the value produced by the last Output instruction.
	output intcode.Word

	steps     uint64 // < number of executed instructions
	stepLimit uint64 // < 0 for no limit

	// lastOp is the most recently executed instruction as seen by the
	// statistics runner, 0 before the first one. It is kept across
	// suspensions so instruction pairs spanning an Input or Output are
	// counted.
	lastOp OpCode
}

func newContext(program intcode.Program, stepLimit uint64) *context {
	return &context{
		memory:    NewMemory(program),
		stepLimit: stepLimit,
	}
}

// resolve computes the memory address referenced by a parameter.
func (c *context) resolve(param Parameter) (intcode.Word, error) {
	addr := param.Value
	if param.Mode == ModeRelative {
		addr += c.base
	}
	if addr < 0 {
		return 0, fmt.Errorf("%w %d referenced at position %d", intcode.ErrNegativeAddress, addr, c.pc)
	}
	return addr, nil
}

// load obtains the value referenced by the given parameter.
func (c *context) load(param Parameter) (intcode.Word, error) {
	if param.Mode == ModeImmediate {
		return param.Value, nil
	}
	addr, err := c.resolve(param)
	if err != nil {
		return 0, err
	}
	return c.memory.Read(addr), nil
}

// store writes the value to the location referenced by the given parameter.
// Stores to immediate parameters are ignored.
func (c *context) store(param Parameter, value intcode.Word) error {
	if param.Mode == ModeImmediate {
		return nil
	}
	addr, err := c.resolve(param)
	if err != nil {
		return err
	}
	if addr >= maxMemorySize {
		return fmt.Errorf("%w: write to address %d at position %d", intcode.ErrMemoryLimit, addr, c.pc)
	}
	c.memory.Write(addr, value)
	return nil
}

// --- Runners ---

type runner interface {
	// run executes instructions of the program in the given context until
	// the execution suspends. It returns the status of the suspension or an
	// error if the program performed an invalid operation.
	run(*context) (status, error)
}

// vanillaRunner is the default runner that executes the program without any
// additional features.
type vanillaRunner struct{}

func (vanillaRunner) run(c *context) (status, error) {
	status := statusRunning
	var err error
	for status == statusRunning {
		status, err = step(c)
		if err != nil {
			return status, err
		}
	}
	return status, nil
}

// --- Execution ---

// step executes the single instruction pointed to by the program counter.
// An Input instruction without an available value is not executed; the
// program counter is retained so the instruction is retried on the next step.
func step(c *context) (status, error) {
	if c.pc < 0 {
		return statusRunning, fmt.Errorf("%w: program counter %d", intcode.ErrNegativeAddress, c.pc)
	}
	instruction, err := decode(c.memory, c.pc)
	if err != nil {
		return statusRunning, err
	}

	if instruction.OpCode == INPUT && c.input == nil {
		return statusNeedsInput, nil
	}

	if c.stepLimit > 0 && c.steps >= c.stepLimit {
		return statusRunning, fmt.Errorf("%w: %d instructions executed", intcode.ErrStepLimitExceeded, c.steps)
	}
	c.steps++

	params := instruction.Params
	next := c.pc + intcode.Word(instruction.Width())
	status := statusRunning

	switch instruction.OpCode {
	case ADD:
		err = opBinary(c, instruction, func(a, b intcode.Word) intcode.Word { return a + b })
	case MUL:
		err = opBinary(c, instruction, func(a, b intcode.Word) intcode.Word { return a * b })
	case LESS_THAN:
		err = opBinary(c, instruction, func(a, b intcode.Word) intcode.Word { return toWord(a < b) })
	case EQUALS:
		err = opBinary(c, instruction, func(a, b intcode.Word) intcode.Word { return toWord(a == b) })
	case INPUT:
		err = opInput(c, instruction)
	case OUTPUT:
		err = opOutput(c, params[0])
		status = statusOutput
	case JUMP_IF_TRUE:
		next, err = opJump(c, params, next, func(v intcode.Word) bool { return v != 0 })
	case JUMP_IF_FALSE:
		next, err = opJump(c, params, next, func(v intcode.Word) bool { return v == 0 })
	case ADJUST_RELATIVE_BASE:
		err = opAdjustRelativeBase(c, params[0])
	case HALT:
		return statusHalted, nil
	default:
		err = fmt.Errorf("%w %v at position %d", intcode.ErrInvalidOpCode, instruction.OpCode, c.pc)
	}

	if err != nil {
		return statusRunning, err
	}
	c.pc = next
	return status, nil
}

func toWord(b bool) intcode.Word {
	if b {
		return 1
	}
	return 0
}

// --- Instructions ---

func opBinary(c *context, instruction Instruction, op func(a, b intcode.Word) intcode.Word) error {
	a, err := c.load(instruction.Params[0])
	if err != nil {
		return err
	}
	b, err := c.load(instruction.Params[1])
	if err != nil {
		return err
	}
	target, _ := instruction.Target()
	return c.store(target, op(a, b))
}

func opInput(c *context, instruction Instruction) error {
	target, _ := instruction.Target()
	if err := c.store(target, *c.input); err != nil {
		return err
	}
	c.input = nil
	return nil
}

func opOutput(c *context, source Parameter) error {
	value, err := c.load(source)
	if err != nil {
		return err
	}
	c.output = value
	return nil
}

func opJump(c *context, params [maxOperands]Parameter, next intcode.Word, condition func(intcode.Word) bool) (intcode.Word, error) {
	value, err := c.load(params[0])
	if err != nil {
		return next, err
	}
	if !condition(value) {
		return next, nil
	}
	return c.load(params[1])
}

func opAdjustRelativeBase(c *context, param Parameter) error {
	value, err := c.load(param)
	if err != nil {
		return err
	}
	c.base += value
	return nil
}
