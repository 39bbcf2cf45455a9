// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"fmt"

	"github.com/Fantom-foundation/Intcode/go/intcode"
)

// Example is an executable description of a program computing a (int)->int
// function by reading its argument from the input and writing its result as
// the only output.
type Example struct {
	exampleSpec
	codeHash intcode.Hash // the hash of the program text
}

// exampleSpec specifies a program with a (int)->int signature.
type exampleSpec struct {
	Name      string
	code      string        // the program text
	reference func(int) int // a reference function computing the same function
}

func (s exampleSpec) build() Example {
	return Example{
		exampleSpec: s,
		codeHash:    intcode.HashProgramText(s.code),
	}
}

// Program returns a fresh copy of the program of this example.
func (e *Example) Program() intcode.Program {
	return intcode.MustParseProgram(e.code)
}

// Hash returns the hash of the program text of this example.
func (e *Example) Hash() intcode.Hash {
	return e.codeHash
}

type Result struct {
	Result int
	Steps  uint64 // < only reported by engines counting their steps
}

// RunOn runs this example on an engine created by the given factory, using
// the given argument.
func (e *Example) RunOn(factory intcode.EngineFactory, argument int) (Result, error) {
	engine, err := factory(e.Program())
	if err != nil {
		return Result{}, err
	}

	outputs, err := intcode.Run(engine, intcode.Word(argument))
	if err != nil {
		return Result{}, err
	}
	if len(outputs) != 1 {
		return Result{}, fmt.Errorf("unexpected number of outputs; wanted 1, got %d", len(outputs))
	}

	res := Result{Result: int(outputs[0])}
	if counter, ok := engine.(intcode.StepCounter); ok {
		res.Steps = counter.Steps()
	}
	return res, nil
}

// RunReference runs the reference function of this example to produce the expected result.
func (e *Example) RunReference(argument int) int {
	return e.reference(argument)
}

// GetAllExamples returns all examples in a fixed order.
func GetAllExamples() []Example {
	return []Example{
		GetCompareExample(),
		GetSumExample(),
		GetFibonacciExample(),
	}
}
