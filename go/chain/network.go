// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chain

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Intcode/go/intcode"
)

const (
	ErrNoStages = intcode.ConstError("network without stages")
	ErrDeadlock = intcode.ConstError("amplifier network deadlocked")
	ErrNoOutput = intcode.ConstError("amplifier network produced no output")
)

// Topology defines how the stages of a network are connected.
type Topology byte

const (
	// Pipeline connects the output of each stage to the input of the next
	// stage. The output of the last stage is the result of the network.
	Pipeline Topology = iota
	// Feedback extends the pipeline by feeding the output of the last stage
	// back into the first stage until all stages halted.
	Feedback
)

func (t Topology) String() string {
	switch t {
	case Pipeline:
		return "pipeline"
	case Feedback:
		return "feedback"
	}
	return fmt.Sprintf("Topology(%d)", byte(t))
}

// DefaultPhases returns the phase settings searched for the topology.
func (t Topology) DefaultPhases() []intcode.Word {
	if t == Feedback {
		return []intcode.Word{5, 6, 7, 8, 9}
	}
	return []intcode.Word{0, 1, 2, 3, 4}
}

// ParseTopology parses the name of a topology (case-insensitive).
func ParseTopology(name string) (Topology, error) {
	switch strings.ToLower(name) {
	case "pipeline":
		return Pipeline, nil
	case "feedback":
		return Feedback, nil
	}
	return Pipeline, fmt.Errorf("unknown topology %q, use one of: pipeline, feedback", name)
}

// Network is a chain of engines all running the same program. Each stage
// receives its phase setting as its first input; the first stage receives
// the initial signal as its second input.
type Network struct {
	factory  intcode.EngineFactory
	program  intcode.Program
	topology Topology
	signal   intcode.Word
}

// NewNetwork creates a network running the given program on engines created
// by the given factory.
func NewNetwork(factory intcode.EngineFactory, program intcode.Program, topology Topology, signal intcode.Word) *Network {
	return &Network{
		factory:  factory,
		program:  program.Clone(),
		topology: topology,
		signal:   signal,
	}
}

// Topology returns the topology of the network.
func (n *Network) Topology() Topology {
	return n.topology
}

// stage is a single engine of a network and its pending inputs.
type stage struct {
	engine intcode.Engine
	inputs *intcode.Queue
	halted bool
}

// advance resumes the engine of the stage until it halts or requests an
// input not available yet. Inputs are consumed one at a time, exactly when
// the engine asks for them. All produced values are returned in order. The
// progress flag is false if the engine neither consumed input, produced
// output, nor halted.
func (s *stage) advance() (outputs []intcode.Word, progress bool, err error) {
	var pending *intcode.Word
	for {
		res, err := s.engine.Resume(pending)
		if err != nil {
			return outputs, progress, err
		}
		if pending != nil {
			progress = true
			pending = nil
		}
		switch res.Status {
		case intcode.Produced:
			outputs = append(outputs, res.Value)
			progress = true
		case intcode.NeedsInput:
			value, ok := s.inputs.Next()
			if !ok {
				return outputs, progress, nil
			}
			pending = &value
		case intcode.Halted:
			s.halted = true
			return outputs, true, nil
		default:
			return outputs, progress, fmt.Errorf("unexpected engine status: %v", res.Status)
		}
	}
}

// Run runs the network with one stage per given phase setting and returns
// the last value produced by the last stage. Every call uses freshly created
// engines. Stages are advanced in ascending order, round after round, until
// all of them halted.
func (n *Network) Run(phases []intcode.Word) (intcode.Word, error) {
	if len(phases) == 0 {
		return 0, ErrNoStages
	}

	stages := make([]stage, len(phases))
	for i, phase := range phases {
		engine, err := n.factory(n.program)
		if err != nil {
			return 0, fmt.Errorf("failed to create engine for stage %d: %w", i, err)
		}
		stages[i] = stage{
			engine: engine,
			inputs: intcode.NewQueue(phase),
		}
	}
	stages[0].inputs.Push(n.signal)

	var result intcode.Word
	haveResult := false
	for round := 0; ; round++ {
		progress := false
		allHalted := true
		for i := range stages {
			cur := &stages[i]
			if cur.halted {
				continue
			}
			outputs, advanced, err := cur.advance()
			if err != nil {
				return 0, fmt.Errorf("stage %d failed in round %d: %w", i, round, err)
			}
			progress = progress || advanced
			allHalted = allHalted && cur.halted

			for _, value := range outputs {
				next := i + 1
				if next == len(stages) {
					result, haveResult = value, true
					if n.topology != Feedback {
						continue
					}
					next = 0
				}
				stages[next].inputs.Push(value)
			}
		}
		if allHalted {
			break
		}
		if !progress {
			return 0, fmt.Errorf("%w in round %d", ErrDeadlock, round)
		}
	}

	if !haveResult {
		return 0, ErrNoOutput
	}
	return result, nil
}
