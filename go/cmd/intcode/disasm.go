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

	cliUtils "github.com/Fantom-foundation/Intcode/go/cmd/intcode/cli"
	"github.com/Fantom-foundation/Intcode/go/interpreter/icvm"
	"github.com/urfave/cli/v2"
)

var DisasmCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doDisasm,
	Name:      "disasm",
	Usage:     "Prints a listing of the instructions of an Intcode program",
	ArgsUsage: "<program-file>",
	Flags: []cli.Flag{
		cliUtils.PatchFlag,
	},
})

func doDisasm(context *cli.Context) error {
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
	_, err = fmt.Fprint(context.App.Writer, icvm.Disassemble(program))
	return err
}
