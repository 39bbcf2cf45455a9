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
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"
)

// Hash is a Keccak-256 hash of a program text.
type Hash [32]byte

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

type keccakHasher interface {
	Reset()
	Write(in []byte) (int, error)
	Read(out []byte) (int, error)
}

// HashProgramText computes the Keccak-256 hash of the given program text
// after removing leading and trailing white space.
func HashProgramText(text string) Hash {
	hasher := keccakHasherPool.Get().(keccakHasher)
	hasher.Reset()
	hasher.Write([]byte(strings.TrimSpace(text)))
	var res Hash
	hasher.Read(res[:])
	keccakHasherPool.Put(hasher)
	return res
}

// LoaderConfig contains the configuration options of a Loader.
type LoaderConfig struct {
	// CacheSize is the maximum number of parsed programs retained. If set to
	// 0, a default size is used. If negative, no cache is used.
	CacheSize int
}

const defaultLoaderCacheSize = 1 << 10

// Loader parses program texts into memory images. Parsed images are
// retained in an LRU cache indexed by the hash of their text, so repeated
// loads of the same program, e.g. once per evaluated phase permutation, do
// not parse the text again. Loaders are safe for concurrent use.
type Loader struct {
	cache *lru.Cache[Hash, Program]
}

// NewLoader creates a new Loader with the provided configuration.
func NewLoader(config LoaderConfig) (*Loader, error) {
	if config.CacheSize == 0 {
		config.CacheSize = defaultLoaderCacheSize
	}
	var cache *lru.Cache[Hash, Program]
	if config.CacheSize > 0 {
		var err error
		cache, err = lru.New[Hash, Program](config.CacheSize)
		if err != nil {
			return nil, err
		}
	}
	return &Loader{cache: cache}, nil
}

// Load parses the given program text. Every call returns a fresh copy of the
// memory image which the caller may modify freely.
func (l *Loader) Load(text string) (Program, error) {
	if l.cache == nil {
		return ParseProgram(text)
	}

	hash := HashProgramText(text)
	if res, found := l.cache.Get(hash); found {
		return res.Clone(), nil
	}

	res, err := ParseProgram(text)
	if err != nil {
		return nil, err
	}
	l.cache.Add(hash, res)
	return res.Clone(), nil
}

// LoadFile reads and parses the program stored in the given file.
func (l *Loader) LoadFile(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program %s: %w", path, err)
	}
	res, err := l.Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse program %s: %w", path, err)
	}
	return res, nil
}

// Len returns the number of cached programs.
func (l *Loader) Len() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}
