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
	"iter"
	"slices"

	"github.com/Fantom-foundation/Intcode/go/intcode"
)

// Permutations enumerates all orderings of the given values in lexicographic
// order of their positions, starting with the given ordering itself. Every
// yielded slice is a fresh copy owned by the consumer.
func Permutations(values []intcode.Word) iter.Seq[[]intcode.Word] {
	return func(yield func([]intcode.Word) bool) {
		indices := make([]int, len(values))
		for i := range indices {
			indices[i] = i
		}
		for {
			permutation := make([]intcode.Word, len(values))
			for i, index := range indices {
				permutation[i] = values[index]
			}
			if !yield(permutation) {
				return
			}
			if !nextPermutation(indices) {
				return
			}
		}
	}
}

// nextPermutation rearranges the indices into the lexicographically next
// greater ordering. It returns false if the indices are in the last ordering.
func nextPermutation(indices []int) bool {
	i := len(indices) - 2
	for i >= 0 && indices[i] >= indices[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(indices) - 1
	for indices[j] <= indices[i] {
		j--
	}
	indices[i], indices[j] = indices[j], indices[i]
	slices.Reverse(indices[i+1:])
	return true
}

// NumPermutations returns the number of orderings of n distinct values.
func NumPermutations(n int) int64 {
	res := int64(1)
	for i := 2; i <= n; i++ {
		res *= int64(i)
	}
	return res
}
