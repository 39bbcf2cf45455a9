// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package icvm

import (
	"fmt"

	"github.com/Fantom-foundation/Intcode/go/intcode"
)

// maxMemorySize is the largest number of words a program may address by
// writing. It bounds the damage a malformed program can do by writing to a
// huge address. Reads beyond the current size never allocate.
const maxMemorySize = 1 << 26 // = 512 MiB of words

// Memory is a growable, zero-filled store of words indexed by non-negative
// addresses. Reading beyond the current size yields zero, writing beyond the
// current size extends the store.
type Memory struct {
	store []intcode.Word
}

// NewMemory creates a memory initialized with a copy of the given image.
func NewMemory(image intcode.Program) *Memory {
	return &Memory{store: image.Clone()}
}

// Read returns the word stored at the given address, or zero if the address
// is beyond the current size. Negative addresses are a programming error.
func (m *Memory) Read(addr intcode.Word) intcode.Word {
	if addr < 0 {
		panic(fmt.Sprintf("read from negative memory address %d", addr))
	}
	if addr >= intcode.Word(len(m.store)) {
		return 0
	}
	return m.store[addr]
}

// Write stores the given value at the given address, extending the memory
// with zeros as needed. Negative addresses are a programming error.
func (m *Memory) Write(addr intcode.Word, value intcode.Word) {
	if addr < 0 {
		panic(fmt.Sprintf("write to negative memory address %d", addr))
	}
	m.expand(addr + 1)
	m.store[addr] = value
}

// expand grows the memory to at least the given size.
func (m *Memory) expand(size intcode.Word) {
	if cur := intcode.Word(len(m.store)); cur < size {
		m.store = append(m.store, make([]intcode.Word, size-cur)...)
	}
}

// Len returns the current size of the memory in words.
func (m *Memory) Len() int {
	return len(m.store)
}

// Snapshot returns a copy of the current memory content.
func (m *Memory) Snapshot() intcode.Program {
	return intcode.Program(m.store).Clone()
}
