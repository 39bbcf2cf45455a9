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
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Intcode/go/intcode"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intcode.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_ParsesAllSections(t *testing.T) {
	path := writeConfig(t, `
[engine]
name = "icvm-stats"
step-limit = 1000

[amplify]
mode = "feedback"
phases = [5, 6, 7]
signal = -3
jobs = 4
`)
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if want, got := "icvm-stats", config.Engine.Name; want != got {
		t.Errorf("unexpected engine, wanted %q, got %q", want, got)
	}
	if want, got := uint64(1000), config.Engine.StepLimit; want != got {
		t.Errorf("unexpected step limit, wanted %d, got %d", want, got)
	}
	if want, got := "feedback", config.Amplify.Mode; want != got {
		t.Errorf("unexpected mode, wanted %q, got %q", want, got)
	}
	if want, got := []intcode.Word{5, 6, 7}, config.Amplify.PhaseWords(); !slices.Equal(want, got) {
		t.Errorf("unexpected phases, wanted %v, got %v", want, got)
	}
	if want, got := int64(-3), config.Amplify.Signal; want != got {
		t.Errorf("unexpected signal, wanted %d, got %d", want, got)
	}
	if want, got := 4, config.Amplify.Jobs; want != got {
		t.Errorf("unexpected jobs, wanted %d, got %d", want, got)
	}
	if !filepath.IsAbs(config.Path) {
		t.Errorf("config path should be absolute, got %s", config.Path)
	}
}

func TestLoadConfig_EmptyFileIsValid(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if config.Engine.Name != "" || config.Amplify.PhaseWords() != nil {
		t.Errorf("empty config should not define values, got %+v", config)
	}
}

func TestLoadConfig_Failures(t *testing.T) {
	tests := map[string]struct {
		content string
		want    string
	}{
		"syntax error":        {"[engine\nname = 1", "parse error"},
		"wrong type":          {"[engine]\nstep-limit = \"many\"", "parse error"},
		"negative step limit": {"[engine]\nstep-limit = -1", "parse error"},
		"unknown key":         {"[engine]\nnmae = \"icvm\"", "unknown keys"},
		"unknown table":       {"[amplifier]\nmode = \"feedback\"", "unknown keys"},
		"negative jobs":       {"[amplify]\njobs = -2", "invalid number of jobs"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, test.content))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("unexpected error, wanted %q, got %v", test.want, err)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !os.IsNotExist(errors.Unwrap(err)) {
		t.Errorf("unexpected error for missing file: %v", err)
	}
}
