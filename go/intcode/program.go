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
	"strconv"
	"strings"
)

// Word is the unit of memory, and the value type of every operand, input
// and output of an Intcode program.
type Word int64

// Program is an Intcode memory image. The word at position 0 is the first
// instruction executed.
type Program []Word

// ParseProgram parses the textual representation of a program, a single line
// of comma-separated decimal integers. Leading and trailing white space of the
// full text is ignored, white space within the text is not.
func ParseProgram(text string) (Program, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: empty program", ErrMalformedProgram)
	}
	tokens := strings.Split(text, ",")
	res := make(Program, len(tokens))
	for i, token := range tokens {
		value, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d (%q) is not an integer", ErrMalformedProgram, i, token)
		}
		res[i] = Word(value)
	}
	return res, nil
}

// MustParseProgram is like ParseProgram but panics on malformed input. It
// is intended for programs embedded in code and tests.
func MustParseProgram(text string) Program {
	res, err := ParseProgram(text)
	if err != nil {
		panic(err)
	}
	return res
}

// Clone creates an independent copy of the program.
func (p Program) Clone() Program {
	if p == nil {
		return nil
	}
	res := make(Program, len(p))
	copy(res, p)
	return res
}

// String renders the program in its textual comma-separated format.
func (p Program) String() string {
	var builder strings.Builder
	for i, word := range p {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(strconv.FormatInt(int64(word), 10))
	}
	return builder.String()
}

// Patch returns a copy of the program where the given positions are
// overwritten with new values. Positions beyond the end of the program
// extend the copy with zeros.
func (p Program) Patch(patches map[int]Word) (Program, error) {
	res := p.Clone()
	for pos, value := range patches {
		if pos < 0 {
			return nil, fmt.Errorf("%w: cannot patch position %d", ErrNegativeAddress, pos)
		}
		if pos >= len(res) {
			res = append(res, make(Program, pos-len(res)+1)...)
		}
		res[pos] = value
	}
	return res, nil
}
