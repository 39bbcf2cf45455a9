// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package intcode

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// This file provides a registry for Engine implementations.
//
// For an implementation to be available it needs to be registered. Typically,
// this registration is part of the init code of the package providing an
// implementation. Thus, by including the implementation package, engine
// variants become available in this central registry.

// EngineFactory is the type of a function creating a new Engine with the
// given program loaded as its initial memory image. Factories must not retain
// or modify the provided program.
type EngineFactory func(program Program) (Engine, error)

// NewEngine performs a lookup for the given name (case-insensitive) in the
// registry and creates a new Engine running the given program.
func NewEngine(name string, program Program) (Engine, error) {
	factory := GetEngineFactory(name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
	return factory(program)
}

// GetEngineFactory performs a lookup for the given name (case-insensitive)
// in the registry. The result is nil if no factory was registered under the
// given name.
func GetEngineFactory(name string) EngineFactory {
	engineRegistryLock.Lock()
	defer engineRegistryLock.Unlock()
	return engineRegistry[strings.ToLower(name)]
}

// GetAllRegisteredEngines obtains all registered implementations.
func GetAllRegisteredEngines() map[string]EngineFactory {
	engineRegistryLock.Lock()
	defer engineRegistryLock.Unlock()
	return maps.Clone(engineRegistry)
}

// RegisteredEngineNames lists the names of all registered implementations
// in lexicographical order.
func RegisteredEngineNames() []string {
	names := maps.Keys(GetAllRegisteredEngines())
	slices.Sort(names)
	return names
}

// RegisterEngineFactory registers a new Engine implementation to be exported
// for general use in the binary. The name is not case-sensitive. An error is
// returned if a factory was bound to the same name before, or the factory is
// nil. This function is mainly intended to be used by package initialization
// code.
func RegisterEngineFactory(name string, factory EngineFactory) error {
	key := strings.ToLower(name)
	if factory == nil {
		return fmt.Errorf("invalid initialization: cannot register nil-factory using `%s`", key)
	}
	engineRegistryLock.Lock()
	defer engineRegistryLock.Unlock()
	if _, found := engineRegistry[key]; found {
		return fmt.Errorf("invalid initialization: multiple factories registered for `%s`", key)
	}
	engineRegistry[key] = factory
	return nil
}

// engineRegistry is a global registry for Engine factories of different
// implementations and configurations.
var engineRegistry = map[string]EngineFactory{}

// engineRegistryLock to protect access to the registry.
var engineRegistryLock sync.Mutex
