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

import "fmt"

//go:generate mockgen -source engine.go -destination engine_mock.go -package intcode

// Engine is a suspendable Intcode machine. Execution is driven by the caller
// through Resume; the engine runs until one of the following conditions is
// reached and then pauses:
//   - an Output instruction produced a value (Produced),
//   - an Input instruction found no value to consume (NeedsInput),
//   - the program executed Halt (Halted).
//
// Resuming continues at exactly the point of suspension. A pending Input
// instruction is retried, not skipped. After Halted, every further Resume
// reports Halted again.
//
// Engines are not safe for concurrent use.
type Engine interface {
	// Resume continues the execution of the program. If input is not nil, the
	// value is consumed by the next executed Input instruction. At most one
	// value may be pending; offering a second value before the first was
	// consumed fails with ErrInputOverrun and leaves the engine unchanged.
	// A non-nil error is a fatal fault of the program; the engine can not be
	// resumed afterwards.
	Resume(input *Word) (Result, error)

	// Memory returns a snapshot of the current memory content.
	Memory() Program
}

// Status summarizes why an engine suspended its execution.
type Status byte

const (
	Produced   Status = iota // < an Output instruction produced a value
	NeedsInput               // < an Input instruction is waiting for a value
	Halted                   // < the program terminated
)

func (s Status) String() string {
	switch s {
	case Produced:
		return "produced"
	case NeedsInput:
		return "needs-input"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("Status(%d)", byte(s))
}

// Result is the outcome of a single Resume call. Value is only meaningful
// if the Status is Produced.
type Result struct {
	Status Status
	Value  Word
}

func (r Result) String() string {
	if r.Status == Produced {
		return fmt.Sprintf("produced(%d)", r.Value)
	}
	return r.Status.String()
}

// StepCounter is implemented by engines tracking the number of instructions
// they executed.
type StepCounter interface {
	Steps() uint64
}
