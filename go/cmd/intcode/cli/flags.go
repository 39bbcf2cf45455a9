// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/Fantom-foundation/Intcode/go/chain"
	"github.com/Fantom-foundation/Intcode/go/intcode"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/urfave/cli/v2"
)

type configFlagType struct {
	cli.StringFlag
}

var ConfigFlag = &configFlagType{
	cli.StringFlag{
		Name:      "config",
		Aliases:   []string{"c"},
		Usage:     "load default options from the given TOML file",
		TakesFile: true,
	},
}

// Fetch loads the configuration file named on the command line. Without a
// file an empty configuration is returned.
func (f *configFlagType) Fetch(context *cli.Context) (*Config, error) {
	path := context.String(f.Name)
	if path == "" {
		return &Config{}, nil
	}
	return LoadConfig(path)
}

type engineFlagType struct {
	cli.StringFlag
}

var EngineFlag = &engineFlagType{
	cli.StringFlag{
		Name:    "engine",
		Aliases: []string{"e"},
		Usage:   "name of the engine executing the program",
		Value:   "icvm",
	},
}

func (f *engineFlagType) Fetch(context *cli.Context, config *Config) string {
	if !context.IsSet(f.Name) && config.Engine.Name != "" {
		return config.Engine.Name
	}
	return context.String(f.Name)
}

type stepLimitFlagType struct {
	cli.Uint64Flag
}

var StepLimitFlag = &stepLimitFlagType{
	cli.Uint64Flag{
		Name:  "step-limit",
		Usage: "maximum number of instructions executed by each engine, 0 for no limit",
	},
}

func (f *stepLimitFlagType) Fetch(context *cli.Context, config *Config) uint64 {
	if !context.IsSet(f.Name) {
		return config.Engine.StepLimit
	}
	return context.Uint64(f.Name)
}

type inputFlagType struct {
	cli.StringFlag
}

var InputFlag = &inputFlagType{
	cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "comma separated list of values consumed by input instructions",
	},
}

func (f *inputFlagType) Fetch(context *cli.Context) ([]intcode.Word, error) {
	return parseWords(context.String(f.Name))
}

type patchFlagType struct {
	cli.StringSliceFlag
}

var PatchFlag = &patchFlagType{
	cli.StringSliceFlag{
		Name:    "patch",
		Aliases: []string{"p"},
		Usage:   "overwrite a memory cell before the start, given as <address>=<value>",
	},
}

func (f *patchFlagType) Fetch(context *cli.Context) (map[int]intcode.Word, error) {
	patches := map[int]intcode.Word{}
	for _, patch := range context.StringSlice(f.Name) {
		address, value, found := strings.Cut(patch, "=")
		if !found {
			return nil, fmt.Errorf("invalid patch %q, expected <address>=<value>", patch)
		}
		pos, err := strconv.Atoi(strings.TrimSpace(address))
		if err != nil {
			return nil, fmt.Errorf("invalid address in patch %q: %w", patch, err)
		}
		word, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in patch %q: %w", patch, err)
		}
		patches[pos] = intcode.Word(word)
	}
	return patches, nil
}

type traceFlagType struct {
	cli.BoolFlag
}

var TraceFlag = &traceFlagType{
	cli.BoolFlag{
		Name:  "trace",
		Usage: "print every executed instruction to stderr",
	},
}

func (f *traceFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type modeFlagType struct {
	cli.StringFlag
}

var ModeFlag = &modeFlagType{
	cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Usage:   "topology of the amplifier network, pipeline or feedback",
		Value:   chain.Pipeline.String(),
	},
}

func (f *modeFlagType) Fetch(context *cli.Context, config *Config) (chain.Topology, error) {
	if !context.IsSet(f.Name) && config.Amplify.Mode != "" {
		return chain.ParseTopology(config.Amplify.Mode)
	}
	return chain.ParseTopology(context.String(f.Name))
}

type phasesFlagType struct {
	cli.StringFlag
}

var PhasesFlag = &phasesFlagType{
	cli.StringFlag{
		Name:  "phases",
		Usage: "comma separated phase settings to search, defaults to 0-4 for pipelines and 5-9 for feedback networks",
	},
}

func (f *phasesFlagType) Fetch(context *cli.Context, config *Config, topology chain.Topology) ([]intcode.Word, error) {
	if context.IsSet(f.Name) {
		phases, err := parseWords(context.String(f.Name))
		if err != nil {
			return nil, err
		}
		if len(phases) == 0 {
			return nil, fmt.Errorf("no phase settings given")
		}
		return phases, nil
	}
	if phases := config.Amplify.PhaseWords(); len(phases) > 0 {
		return phases, nil
	}
	return topology.DefaultPhases(), nil
}

type signalFlagType struct {
	cli.Int64Flag
}

var SignalFlag = &signalFlagType{
	cli.Int64Flag{
		Name:  "signal",
		Usage: "initial input signal of the first amplifier",
	},
}

func (f *signalFlagType) Fetch(context *cli.Context, config *Config) intcode.Word {
	if !context.IsSet(f.Name) {
		return intcode.Word(config.Amplify.Signal)
	}
	return intcode.Word(context.Int64(f.Name))
}

type jobsFlagType struct {
	cli.IntFlag
}

var JobsFlag = &jobsFlagType{
	cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "number of networks evaluated simultaneously",
		Value:   1,
	},
}

func (f *jobsFlagType) Fetch(context *cli.Context, config *Config) int {
	if !context.IsSet(f.Name) && config.Amplify.Jobs > 0 {
		return config.Amplify.Jobs
	}
	return context.Int(f.Name)
}

type verboseFlagType struct {
	cli.BoolFlag
}

var VerboseFlag = &verboseFlagType{
	cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "increase log verbosity, may be repeated",
		Count:   new(int),
	},
}

func (f *verboseFlagType) Fetch(context *cli.Context) int {
	return context.Count(f.Name)
}

type cpuProfileType struct {
	cli.StringFlag
}

var CpuProfileFlag = &cpuProfileType{
	cli.StringFlag{
		Name:      "cpuprofile",
		Usage:     "store CPU profile in the provided filename",
		TakesFile: true,
	},
}

func (f *cpuProfileType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

var commonFlags = []cli.Flag{
	CpuProfileFlag,
	VerboseFlag,
	ConfigFlag,
}

// AddCommonFlags adds the profiling, logging and configuration flags to the
// given command and sets up profiling and logging before running its action.
func AddCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, commonFlags...)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {
		commonlog.Configure(VerboseFlag.Fetch(ctx), nil)

		if cpuprofileFilename := CpuProfileFlag.Fetch(ctx); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}

// parseWords parses a comma separated list of words. An empty list is valid.
func parseWords(text string) ([]intcode.Word, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	words, err := intcode.ParseProgram(text)
	if err != nil {
		return nil, fmt.Errorf("invalid list of values %q: %w", text, err)
	}
	return words, nil
}
