// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package intcode

import (
	"fmt"
	"iter"
)

// Outputs returns a lazy sequence of the values produced by the given
// engine. Whenever the engine requests input, exactly one value is pulled
// from the input source. The sequence ends cleanly when the program halts.
// If the input source has no value left, the sequence yields a single
// ErrNeedsInput and ends; the engine stays suspended at the Input
// instruction and can be driven further by the caller. Fatal engine errors
// are yielded the same way.
func Outputs(engine Engine, input Input) iter.Seq2[Word, error] {
	return func(yield func(Word, error) bool) {
		var pending *Word
		for {
			res, err := engine.Resume(pending)
			pending = nil
			if err != nil {
				yield(0, err)
				return
			}
			switch res.Status {
			case Produced:
				if !yield(res.Value, nil) {
					return
				}
			case NeedsInput:
				value, ok := Word(0), false
				if input != nil {
					value, ok = input.Next()
				}
				if !ok {
					yield(0, ErrNeedsInput)
					return
				}
				pending = &value
			case Halted:
				return
			default:
				yield(0, fmt.Errorf("unexpected engine status: %v", res.Status))
				return
			}
		}
	}
}

// Run executes the program loaded in the engine in batch mode: the given
// inputs are supplied on demand and all produced outputs are collected until
// the program halts. If the program requests more input than provided, the
// outputs produced so far are returned together with ErrNeedsInput.
func Run(engine Engine, inputs ...Word) ([]Word, error) {
	outputs := []Word{}
	for value, err := range Outputs(engine, NewQueue(inputs...)) {
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, value)
	}
	return outputs, nil
}
