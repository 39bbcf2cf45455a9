// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chain

import (
	"fmt"
	"slices"
	"testing"

	"github.com/Fantom-foundation/Intcode/go/intcode"
	"pgregory.net/rand"
)

func collect(values []intcode.Word) [][]intcode.Word {
	res := [][]intcode.Word{}
	for permutation := range Permutations(values) {
		res = append(res, permutation)
	}
	return res
}

func TestPermutations_SmallSets(t *testing.T) {
	tests := map[string]struct {
		values []intcode.Word
		want   [][]intcode.Word
	}{
		"empty": {nil, [][]intcode.Word{{}}},
		"one":   {[]intcode.Word{7}, [][]intcode.Word{{7}}},
		"two":   {[]intcode.Word{1, 2}, [][]intcode.Word{{1, 2}, {2, 1}}},
		"three": {[]intcode.Word{3, 1, 2}, [][]intcode.Word{
			{3, 1, 2}, {3, 2, 1}, {1, 3, 2}, {1, 2, 3}, {2, 3, 1}, {2, 1, 3},
		}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := collect(test.values)
			if len(got) != len(test.want) {
				t.Fatalf("unexpected number of permutations, wanted %d, got %d", len(test.want), len(got))
			}
			for i := range got {
				if !slices.Equal(test.want[i], got[i]) {
					t.Errorf("unexpected permutation %d, wanted %v, got %v", i, test.want[i], got[i])
				}
			}
		})
	}
}

func TestPermutations_StartWithIdentity(t *testing.T) {
	values := []intcode.Word{9, 8, 7, 6, 5}
	for permutation := range Permutations(values) {
		if !slices.Equal(values, permutation) {
			t.Errorf("first permutation should be the input ordering, got %v", permutation)
		}
		break
	}
}

func TestPermutations_RandomSetsAreFullyEnumerated(t *testing.T) {
	random := rand.New(42)
	for i := 0; i < 20; i++ {
		size := random.Intn(6) + 1
		values := make([]intcode.Word, size)
		for j := range values {
			values[j] = intcode.Word(random.Intn(1000) - 500)
		}
		// Duplicates would render orderings indistinguishable.
		slices.Sort(values)
		values = slices.Compact(values)

		sorted := slices.Clone(values)
		seen := map[string]bool{}
		count := int64(0)
		for permutation := range Permutations(values) {
			count++
			key := fmt.Sprint(permutation)
			if seen[key] {
				t.Fatalf("duplicate permutation %v of %v", permutation, values)
			}
			seen[key] = true
			cur := slices.Clone(permutation)
			slices.Sort(cur)
			if !slices.Equal(sorted, cur) {
				t.Fatalf("%v is not a permutation of %v", permutation, values)
			}
		}
		if want := NumPermutations(len(values)); want != count {
			t.Errorf("unexpected number of permutations of %v, wanted %d, got %d", values, want, count)
		}
	}
}

func TestPermutations_YieldedSlicesAreIndependent(t *testing.T) {
	values := []intcode.Word{1, 2, 3}
	all := [][]intcode.Word{}
	for permutation := range Permutations(values) {
		permutation[0] = 0
		all = append(all, permutation)
	}
	if want := []intcode.Word{1, 2, 3}; !slices.Equal(want, values) {
		t.Errorf("input was modified, wanted %v, got %v", want, values)
	}
	if want, got := []intcode.Word{0, 1, 3}, all[2]; !slices.Equal(want, got) {
		t.Errorf("unexpected permutation, wanted %v, got %v", want, got)
	}
}

func TestPermutations_EarlyStop(t *testing.T) {
	count := 0
	for range Permutations([]intcode.Word{0, 1, 2, 3, 4}) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("unexpected number of iterations: %d", count)
	}
}

func TestNumPermutations(t *testing.T) {
	tests := map[int]int64{0: 1, 1: 1, 2: 2, 3: 6, 5: 120, 10: 3628800}
	for n, want := range tests {
		if got := NumPermutations(n); want != got {
			t.Errorf("unexpected number of permutations of %d values, wanted %d, got %d", n, want, got)
		}
	}
}
