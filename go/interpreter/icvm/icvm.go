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
	"io"
	"os"
	"strings"

	"github.com/Fantom-foundation/Intcode/go/intcode"
)

// variants lists the configurations of the Intcode VM variants offered as
// engine implementations.
var variants = map[string]Config{
	// The default configuration, to be used for production purposes.
	"icvm": {},

	// Traces every executed instruction to stderr.
	"icvm-logging": {runner: newLogger(os.Stderr)},

	// Collects instruction statistics, see DumpProfile.
	"icvm-stats": {runner: profilingRunner},
}

// Registers the Intcode VM variants as possible engine implementations.
func init() {
	for name, config := range variants {
		err := intcode.RegisterEngineFactory(name, NewEngineFactory(config))
		if err != nil {
			panic(err)
		}
	}
}

// Variant returns the configuration of the named VM variant. Names are
// case-insensitive.
func Variant(name string) (Config, bool) {
	config, found := variants[strings.ToLower(name)]
	return config, found
}

// profilingRunner is shared by all engines of the icvm-stats variant.
var profilingRunner = &statisticRunner{stats: newStatistics()}

// DumpProfile writes the instruction statistics collected by engines of the
// icvm-stats variant to the given writer.
func DumpProfile(out io.Writer) error {
	_, err := io.WriteString(out, profilingRunner.getSummary())
	return err
}

// ResetProfile clears the instruction statistics of the icvm-stats variant.
func ResetProfile() {
	profilingRunner.reset()
}

// Config contains the configuration options of an engine.
type Config struct {
	// StepLimit is the maximum number of instructions an engine may execute.
	// If 0, the number of steps is not limited.
	StepLimit uint64
	runner    runner
}

// WithTracing returns a copy of the configuration that writes a trace line
// for every executed instruction to the given writer.
func (c Config) WithTracing(out io.Writer) Config {
	c.runner = newLogger(out)
	return c
}

// NewEngineFactory creates a factory producing engines using the given
// configuration.
func NewEngineFactory(config Config) intcode.EngineFactory {
	return func(program intcode.Program) (intcode.Engine, error) {
		return NewEngine(config, program), nil
	}
}

// Engine is an Intcode VM instance running a single program. It implements
// the intcode.Engine resume protocol.
type Engine struct {
	context *context
	runner  runner
	halted  bool
	err     error // < the fatal fault stopping the program, if any
}

// NewEngine creates an engine running the given program. The program is
// copied, so independent engines created from the same program never
// interfere with each other.
func NewEngine(config Config, program intcode.Program) *Engine {
	runner := config.runner
	if runner == nil {
		runner = vanillaRunner{}
	}
	return &Engine{
		context: newContext(program, config.StepLimit),
		runner:  runner,
	}
}

func (e *Engine) Resume(input *intcode.Word) (intcode.Result, error) {
	if e.err != nil {
		return intcode.Result{}, e.err
	}
	if e.halted {
		return intcode.Result{Status: intcode.Halted}, nil
	}
	if input != nil {
		if e.context.input != nil {
			return intcode.Result{}, intcode.ErrInputOverrun
		}
		value := *input
		e.context.input = &value
	}

	status, err := e.runner.run(e.context)
	if err != nil {
		e.err = err
		return intcode.Result{}, err
	}

	switch status {
	case statusOutput:
		return intcode.Result{Status: intcode.Produced, Value: e.context.output}, nil
	case statusNeedsInput:
		return intcode.Result{Status: intcode.NeedsInput}, nil
	case statusHalted:
		e.halted = true
		return intcode.Result{Status: intcode.Halted}, nil
	}
	e.err = fmt.Errorf("unexpected error in interpreter, unknown status: %v", status)
	return intcode.Result{}, e.err
}

func (e *Engine) Memory() intcode.Program {
	return e.context.memory.Snapshot()
}

// Halted returns true if the program executed a Halt instruction.
func (e *Engine) Halted() bool {
	return e.halted
}

// Steps returns the number of instructions executed so far.
func (e *Engine) Steps() uint64 {
	return e.context.steps
}

var (
	_ intcode.Engine      = (*Engine)(nil)
	_ intcode.StepCounter = (*Engine)(nil)
)

// --- Disassembly ---

// Disassemble renders the given program as a listing of instructions, one
// per line, prefixed by their position. Words that do not form a valid
// instruction are listed as data.
func Disassemble(program intcode.Program) string {
	var builder strings.Builder
	memory := NewMemory(program)
	for pc := intcode.Word(0); pc < intcode.Word(len(program)); {
		instruction, err := decode(memory, pc)
		if err != nil || pc+intcode.Word(instruction.Width()) > intcode.Word(len(program)) {
			builder.WriteString(fmt.Sprintf("%04d: DATA %d\n", pc, program[pc]))
			pc++
			continue
		}
		line := instruction.String()
		if target, ok := instruction.Target(); ok && target.Mode == ModeImmediate {
			line += " ; store ignored"
		}
		builder.WriteString(fmt.Sprintf("%04d: %s\n", pc, line))
		pc += intcode.Word(instruction.Width())
	}
	return builder.String()
}
