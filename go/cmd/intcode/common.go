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
	"os"
	"sync"

	"github.com/Fantom-foundation/Intcode/go/intcode"
	"github.com/Fantom-foundation/Intcode/go/interpreter/icvm"
	"github.com/urfave/cli/v2"
)

// getLoader returns the loader shared by all commands.
var getLoader = sync.OnceValues(func() (*intcode.Loader, error) {
	return intcode.NewLoader(intcode.LoaderConfig{})
})

// loadProgram loads the program named by the single argument of the command.
func loadProgram(context *cli.Context) (intcode.Program, error) {
	if context.Args().Len() != 1 {
		return nil, fmt.Errorf("expected exactly one program file, got %d arguments", context.Args().Len())
	}
	loader, err := getLoader()
	if err != nil {
		return nil, err
	}
	return loader.LoadFile(context.Args().First())
}

// newEngineFactory resolves the named engine. Step limits and tracing are
// only supported by the icvm variants.
func newEngineFactory(name string, stepLimit uint64, trace bool) (intcode.EngineFactory, error) {
	if config, found := icvm.Variant(name); found {
		config.StepLimit = stepLimit
		if trace {
			config = config.WithTracing(os.Stderr)
		}
		return icvm.NewEngineFactory(config), nil
	}

	factory := intcode.GetEngineFactory(name)
	if factory == nil {
		return nil, fmt.Errorf("%w %q, use one of: %v", intcode.ErrUnknownEngine, name, intcode.RegisteredEngineNames())
	}
	if stepLimit > 0 || trace {
		return nil, fmt.Errorf("engine %s does not support step limits or tracing", name)
	}
	return factory, nil
}
