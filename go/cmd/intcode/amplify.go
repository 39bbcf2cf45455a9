// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"time"

	"github.com/Fantom-foundation/Intcode/go/chain"
	cliUtils "github.com/Fantom-foundation/Intcode/go/cmd/intcode/cli"
	"github.com/dsnet/golib/unitconv"
	"github.com/tliron/commonlog"
	"github.com/urfave/cli/v2"
)

var AmplifyCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doAmplify,
	Name:      "amplify",
	Usage:     "Searches the phase settings producing the highest signal of an amplifier network",
	ArgsUsage: "<program-file>",
	Flags: []cli.Flag{
		cliUtils.EngineFlag,
		cliUtils.StepLimitFlag,
		cliUtils.ModeFlag,
		cliUtils.PhasesFlag,
		cliUtils.SignalFlag,
		cliUtils.JobsFlag,
	},
})

func doAmplify(context *cli.Context) error {
	config, err := cliUtils.ConfigFlag.Fetch(context)
	if err != nil {
		return err
	}
	program, err := loadProgram(context)
	if err != nil {
		return err
	}
	topology, err := cliUtils.ModeFlag.Fetch(context, config)
	if err != nil {
		return err
	}
	phases, err := cliUtils.PhasesFlag.Fetch(context, config, topology)
	if err != nil {
		return err
	}
	factory, err := newEngineFactory(
		cliUtils.EngineFlag.Fetch(context, config),
		cliUtils.StepLimitFlag.Fetch(context, config),
		false,
	)
	if err != nil {
		return err
	}

	jobCount := cliUtils.JobsFlag.Fetch(context, config)
	network := chain.NewNetwork(factory, program, topology, cliUtils.SignalFlag.Fetch(context, config))

	printProgress := func(relativeTime time.Duration, rate float64, current int64) {
		fmt.Fprintf(context.App.ErrWriter,
			"[t=%4d:%02d] - Evaluating ~%s orderings per second, total %d of %d\n",
			int(relativeTime.Seconds())/60, int(relativeTime.Seconds())%60,
			unitconv.FormatPrefix(rate, unitconv.SI, 0), current, chain.NumPermutations(len(phases)),
		)
	}

	log := commonlog.GetLogger("intcode.amplify")
	log.Infof("searching %d orderings of %v in %v mode using %d jobs", chain.NumPermutations(len(phases)), phases, network.Topology(), jobCount)

	result, err := network.Search(phases, chain.SearchConfig{
		Jobs:           jobCount,
		Log:            log,
		ReportProgress: printProgress,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Fprintf(context.App.Writer, "%d\n", result.Signal)
	log.Infof("best phase settings: %v", result.Phases)
	return nil
}
