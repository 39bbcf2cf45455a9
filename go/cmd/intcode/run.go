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
	"strings"

	cliUtils "github.com/Fantom-foundation/Intcode/go/cmd/intcode/cli"
	"github.com/Fantom-foundation/Intcode/go/intcode"
	"github.com/Fantom-foundation/Intcode/go/interpreter/icvm"
	"github.com/tliron/commonlog"
	"github.com/urfave/cli/v2"
)

var RunCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Runs an Intcode program and prints its outputs",
	ArgsUsage: "<program-file>",
	Flags: []cli.Flag{
		cliUtils.EngineFlag,
		cliUtils.StepLimitFlag,
		cliUtils.InputFlag,
		cliUtils.PatchFlag,
		cliUtils.TraceFlag,
		&cli.BoolFlag{
			Name:  "dump-memory",
			Usage: "print the memory of the engine after the program halted",
		},
	},
})

func doRun(context *cli.Context) error {
	config, err := cliUtils.ConfigFlag.Fetch(context)
	if err != nil {
		return err
	}
	program, err := loadProgram(context)
	if err != nil {
		return err
	}
	patches, err := cliUtils.PatchFlag.Fetch(context)
	if err != nil {
		return err
	}
	program, err = program.Patch(patches)
	if err != nil {
		return err
	}
	inputs, err := cliUtils.InputFlag.Fetch(context)
	if err != nil {
		return err
	}

	name := cliUtils.EngineFlag.Fetch(context, config)
	factory, err := newEngineFactory(name, cliUtils.StepLimitFlag.Fetch(context, config), cliUtils.TraceFlag.Fetch(context))
	if err != nil {
		return err
	}
	engine, err := factory(program)
	if err != nil {
		return err
	}

	log := commonlog.GetLogger("intcode.run")
	log.Infof("running program of %d words on %s with %d inputs", len(program), name, len(inputs))

	queue := intcode.NewQueue(inputs...)
	count := 0
	for value, err := range intcode.Outputs(engine, queue) {
		if err != nil {
			return fmt.Errorf("program failed after %d outputs: %w", count, err)
		}
		fmt.Fprintln(context.App.Writer, value)
		count++
	}
	log.Debugf("program halted after %d outputs, %d inputs left unused", count, queue.Len())

	if context.Bool("dump-memory") {
		fmt.Fprintln(context.App.Writer, engine.Memory())
	}
	if strings.EqualFold(name, "icvm-stats") {
		return icvm.DumpProfile(context.App.ErrWriter)
	}
	return nil
}
