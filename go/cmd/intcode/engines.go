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

	"github.com/Fantom-foundation/Intcode/go/intcode"
	"github.com/urfave/cli/v2"
)

var EnginesCmd = cli.Command{
	Action: doEngines,
	Name:   "engines",
	Usage:  "Lists the names of the available engines",
}

func doEngines(context *cli.Context) error {
	for _, name := range intcode.RegisteredEngineNames() {
		fmt.Fprintln(context.App.Writer, name)
	}
	return nil
}
