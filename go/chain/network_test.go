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
	"errors"
	"testing"

	"github.com/Fantom-foundation/Intcode/go/intcode"
	"github.com/Fantom-foundation/Intcode/go/interpreter/icvm"
	"go.uber.org/mock/gomock"
)

const (
	pipelineProgramA = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	pipelineProgramB = "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0"
	pipelineProgramC = "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0"
	feedbackProgramA = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
	feedbackProgramB = "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10"
)

func icvmFactory() intcode.EngineFactory {
	return icvm.NewEngineFactory(icvm.Config{})
}

func newNetwork(t *testing.T, code string, topology Topology) *Network {
	t.Helper()
	program, err := intcode.ParseProgram(code)
	if err != nil {
		t.Fatalf("failed to parse program: %v", err)
	}
	return NewNetwork(icvmFactory(), program, topology, 0)
}

func ptr(w intcode.Word) *intcode.Word {
	return &w
}

func TestNetwork_RunProducesKnownSignals(t *testing.T) {
	tests := map[string]struct {
		code     string
		topology Topology
		phases   []intcode.Word
		want     intcode.Word
	}{
		"pipeline A": {pipelineProgramA, Pipeline, []intcode.Word{4, 3, 2, 1, 0}, 43210},
		"pipeline B": {pipelineProgramB, Pipeline, []intcode.Word{0, 1, 2, 3, 4}, 54321},
		"pipeline C": {pipelineProgramC, Pipeline, []intcode.Word{1, 0, 4, 3, 2}, 65210},
		"feedback A": {feedbackProgramA, Feedback, []intcode.Word{9, 8, 7, 6, 5}, 139629729},
		"feedback B": {feedbackProgramB, Feedback, []intcode.Word{9, 7, 8, 5, 6}, 18216},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			network := newNetwork(t, test.code, test.topology)
			got, err := network.Run(test.phases)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := test.want; want != got {
				t.Errorf("unexpected signal, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestNetwork_RunIsRepeatable(t *testing.T) {
	network := newNetwork(t, feedbackProgramA, Feedback)
	phases := []intcode.Word{9, 8, 7, 6, 5}
	for i := 0; i < 3; i++ {
		got, err := network.Run(phases)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := intcode.Word(139629729); want != got {
			t.Errorf("run %d: unexpected signal, wanted %d, got %d", i, want, got)
		}
	}
}

func TestNetwork_SingleStagePipeline(t *testing.T) {
	// Outputs phase + signal.
	network := newNetwork(t, "3,11,3,12,1,11,12,11,4,11,99,0,0", Pipeline)
	network.signal = 7
	got, err := network.Run([]intcode.Word{5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := intcode.Word(12); want != got {
		t.Errorf("unexpected signal, wanted %d, got %d", want, got)
	}
}

func TestNetwork_PipelineForwardsAllOutputs(t *testing.T) {
	// The first stage outputs its phase and the signal, the second stage
	// outputs the sum of its three inputs.
	first := "3,11,3,12,4,11,4,12,99,0,0,0,0"
	second := "3,17,3,18,3,19,1,17,18,17,1,17,19,17,4,17,99,0,0,0"
	programs := []string{first, second}

	ctrl := gomock.NewController(t)
	stage := 0
	factory := func(program intcode.Program) (intcode.Engine, error) {
		code := intcode.MustParseProgram(programs[stage])
		stage++
		engine := intcode.NewMockEngine(ctrl)
		vm := icvm.NewEngine(icvm.Config{}, code)
		engine.EXPECT().Resume(gomock.Any()).DoAndReturn(vm.Resume).AnyTimes()
		return engine, nil
	}

	network := NewNetwork(factory, intcode.Program{99}, Pipeline, 3)
	got, err := network.Run([]intcode.Word{2, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := intcode.Word(15); want != got {
		t.Errorf("unexpected signal, wanted %d, got %d", want, got)
	}
}

func TestNetwork_StagesAreScheduledInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := intcode.NewMockEngine(ctrl)
	second := intcode.NewMockEngine(ctrl)
	engines := []intcode.Engine{first, second}

	gomock.InOrder(
		first.EXPECT().Resume(nil).Return(intcode.Result{Status: intcode.NeedsInput}, nil),
		first.EXPECT().Resume(ptr(3)).Return(intcode.Result{Status: intcode.NeedsInput}, nil),
		first.EXPECT().Resume(ptr(0)).Return(intcode.Result{Status: intcode.Produced, Value: 10}, nil),
		first.EXPECT().Resume(nil).Return(intcode.Result{Status: intcode.Halted}, nil),
		second.EXPECT().Resume(nil).Return(intcode.Result{Status: intcode.NeedsInput}, nil),
		second.EXPECT().Resume(ptr(4)).Return(intcode.Result{Status: intcode.NeedsInput}, nil),
		second.EXPECT().Resume(ptr(10)).Return(intcode.Result{Status: intcode.Produced, Value: 20}, nil),
		second.EXPECT().Resume(nil).Return(intcode.Result{Status: intcode.Halted}, nil),
	)

	next := 0
	factory := func(intcode.Program) (intcode.Engine, error) {
		engine := engines[next]
		next++
		return engine, nil
	}

	network := NewNetwork(factory, intcode.Program{99}, Pipeline, 0)
	got, err := network.Run([]intcode.Word{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := intcode.Word(20); want != got {
		t.Errorf("unexpected signal, wanted %d, got %d", want, got)
	}
}

func TestNetwork_WaitingStagesAreSkippedUntilInputArrives(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := intcode.NewMockEngine(ctrl)
	second := intcode.NewMockEngine(ctrl)
	engines := []intcode.Engine{first, second}

	needsInput := intcode.Result{Status: intcode.NeedsInput}
	gomock.InOrder(
		// round 0
		first.EXPECT().Resume(nil).Return(needsInput, nil),
		first.EXPECT().Resume(ptr(5)).Return(needsInput, nil),
		first.EXPECT().Resume(ptr(0)).Return(intcode.Result{Status: intcode.Produced, Value: 1}, nil),
		first.EXPECT().Resume(nil).Return(needsInput, nil),
		second.EXPECT().Resume(nil).Return(needsInput, nil),
		second.EXPECT().Resume(ptr(6)).Return(needsInput, nil),
		second.EXPECT().Resume(ptr(1)).Return(intcode.Result{Status: intcode.Produced, Value: 2}, nil),
		second.EXPECT().Resume(nil).Return(needsInput, nil),
		// round 1
		first.EXPECT().Resume(nil).Return(needsInput, nil),
		first.EXPECT().Resume(ptr(2)).Return(intcode.Result{Status: intcode.Halted}, nil),
		second.EXPECT().Resume(nil).Return(needsInput, nil),
		// round 2: second stage makes no progress
		second.EXPECT().Resume(nil).Return(needsInput, nil),
	)

	next := 0
	factory := func(intcode.Program) (intcode.Engine, error) {
		engine := engines[next]
		next++
		return engine, nil
	}

	network := NewNetwork(factory, intcode.Program{99}, Feedback, 0)
	_, err := network.Run([]intcode.Word{5, 6})
	if !errors.Is(err, ErrDeadlock) {
		t.Errorf("expected deadlock, got %v", err)
	}
}

func TestNetwork_RunFailures(t *testing.T) {
	tests := map[string]struct {
		code     string
		topology Topology
		phases   []intcode.Word
		want     error
	}{
		"no stages":           {"99", Pipeline, nil, ErrNoStages},
		"no output":           {"99", Pipeline, []intcode.Word{0, 1}, ErrNoOutput},
		"invalid instruction": {"3,0,42", Pipeline, []intcode.Word{0}, intcode.ErrInvalidOpCode},
		"waiting for input":   {"3,0,3,0,3,0,99", Pipeline, []intcode.Word{0}, ErrDeadlock},
		"stalled feedback":    {"3,0,3,0,3,0,99", Feedback, []intcode.Word{0, 1}, ErrDeadlock},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			network := newNetwork(t, test.code, test.topology)
			_, err := network.Run(test.phases)
			if !errors.Is(err, test.want) {
				t.Errorf("unexpected error, wanted %v, got %v", test.want, err)
			}
		})
	}
}

func TestNetwork_FactoryErrorsAreReported(t *testing.T) {
	injected := errors.New("injected")
	factory := func(intcode.Program) (intcode.Engine, error) {
		return nil, injected
	}
	network := NewNetwork(factory, intcode.Program{99}, Pipeline, 0)
	if _, err := network.Run([]intcode.Word{0}); !errors.Is(err, injected) {
		t.Errorf("unexpected error, wanted %v, got %v", injected, err)
	}
}

func TestNetwork_ProgramIsCopied(t *testing.T) {
	program := intcode.MustParseProgram(pipelineProgramA)
	network := NewNetwork(icvmFactory(), program, Pipeline, 0)
	program[0] = 99
	got, err := network.Run([]intcode.Word{4, 3, 2, 1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := intcode.Word(43210); want != got {
		t.Errorf("unexpected signal, wanted %d, got %d", want, got)
	}
}

func TestTopology_String(t *testing.T) {
	tests := map[Topology]string{
		Pipeline:    "pipeline",
		Feedback:    "feedback",
		Topology(7): "Topology(7)",
	}
	for topology, want := range tests {
		if got := topology.String(); want != got {
			t.Errorf("unexpected name, wanted %q, got %q", want, got)
		}
	}
}

func TestParseTopology(t *testing.T) {
	for _, topology := range []Topology{Pipeline, Feedback} {
		got, err := ParseTopology(topology.String())
		if err != nil {
			t.Fatalf("failed to parse %v: %v", topology, err)
		}
		if got != topology {
			t.Errorf("unexpected topology, wanted %v, got %v", topology, got)
		}
	}
	if got, err := ParseTopology("FeedBack"); err != nil || got != Feedback {
		t.Errorf("parsing should be case-insensitive, got %v, %v", got, err)
	}
	if _, err := ParseTopology("ring"); err == nil {
		t.Errorf("unknown topology should be rejected")
	}
}

func TestTopology_DefaultPhases(t *testing.T) {
	pipeline := Pipeline.DefaultPhases()
	feedback := Feedback.DefaultPhases()
	for i := 0; i < 5; i++ {
		if want, got := intcode.Word(i), pipeline[i]; want != got {
			t.Errorf("unexpected pipeline phase, wanted %d, got %d", want, got)
		}
		if want, got := intcode.Word(i+5), feedback[i]; want != got {
			t.Errorf("unexpected feedback phase, wanted %d, got %d", want, got)
		}
	}
}
