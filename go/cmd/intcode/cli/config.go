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
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Fantom-foundation/Intcode/go/intcode"
)

// Config is the content of an intcode.toml configuration file. Values given
// on the command line take precedence over values from the file.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Amplify AmplifyConfig `toml:"amplify"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// EngineConfig selects the engine executing programs.
type EngineConfig struct {
	Name      string `toml:"name"`
	StepLimit uint64 `toml:"step-limit"`
}

// AmplifyConfig configures the amplifier network search.
type AmplifyConfig struct {
	Mode   string  `toml:"mode"`
	Phases []int64 `toml:"phases"`
	Signal int64   `toml:"signal"`
	Jobs   int     `toml:"jobs"`
}

// PhaseWords returns the configured phase settings as words.
func (c *AmplifyConfig) PhaseWords() []intcode.Word {
	if len(c.Phases) == 0 {
		return nil
	}
	res := make([]intcode.Word, len(c.Phases))
	for i, phase := range c.Phases {
		res[i] = intcode.Word(phase)
	}
	return res
}

// LoadConfig parses the configuration file at the given path. Unknown keys
// are reported as errors to catch misspelled options.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var config Config
	meta, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}
	if config.Amplify.Jobs < 0 {
		return nil, fmt.Errorf("invalid number of jobs in %s: %d", path, config.Amplify.Jobs)
	}

	config.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return &config, nil
}
