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

// Input is a pull-based source of input values. Next returns false if no
// value is currently available. Sources are owned by the caller; drivers
// pull exactly one value per executed Input instruction.
type Input interface {
	Next() (Word, bool)
}

// InputFunc adapts a plain function to the Input interface.
type InputFunc func() (Word, bool)

func (f InputFunc) Next() (Word, bool) {
	return f()
}

// Queue is a FIFO Input source. Values can be appended at any time, which
// makes it usable for batch runs as well as for interactive feeding.
type Queue struct {
	values []Word
}

// NewQueue creates a queue holding the given values.
func NewQueue(values ...Word) *Queue {
	res := &Queue{}
	res.Push(values...)
	return res
}

// Push appends values to the end of the queue.
func (q *Queue) Push(values ...Word) {
	q.values = append(q.values, values...)
}

// Next removes and returns the oldest value of the queue.
func (q *Queue) Next() (Word, bool) {
	if len(q.values) == 0 {
		return 0, false
	}
	res := q.values[0]
	q.values = q.values[1:]
	return res, true
}

// Len returns the number of values in the queue.
func (q *Queue) Len() int {
	return len(q.values)
}
