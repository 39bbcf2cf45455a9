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
	"sort"
	"strings"
	"sync"
)

// statisticRunner is a runner that collects statistics about the instruction
// sequence of the executed programs. A single runner may be shared by many
// engines, the collected statistics are aggregated.
type statisticRunner struct {
	mutex sync.Mutex
	stats *statistics
}

func (s *statisticRunner) run(c *context) (status, error) {
	stats := statsCollector{stats: newStatistics(), last: c.lastOp}
	status := statusRunning
	var executionError error
	for status == statusRunning {
		steps := c.steps
		op := OpCode(0)
		if c.pc >= 0 {
			op = OpCode(c.memory.Read(c.pc) % opCodeDivisor)
		}
		status, executionError = step(c)
		if executionError != nil {
			break
		}
		// Only count instructions that were actually executed.
		if c.steps != steps {
			stats.nextOp(op)
		}
	}
	c.lastOp = stats.last

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	s.stats.insert(stats.stats)
	return status, executionError
}

// getSummary returns a summary of the collected statistics in a human-readable
// format.
func (s *statisticRunner) getSummary() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	return s.stats.print()
}

// reset clears the collected statistics.
func (s *statisticRunner) reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats = newStatistics()
}

// statistics contains the instruction sequence statistics of program
// executions. It counts the number of times each instruction is executed, as
// well as the number of times each pair of instructions is executed.
type statistics struct {
	count       uint64
	singleCount map[uint64]uint64
	pairCount   map[uint64]uint64
}

func newStatistics() *statistics {
	return &statistics{
		singleCount: map[uint64]uint64{},
		pairCount:   map[uint64]uint64{},
	}
}

// insert adds the instruction counts of the given statistics to this instance.
func (s *statistics) insert(src *statistics) {
	s.count += src.count
	for k, v := range src.singleCount {
		s.singleCount[k] += v
	}
	for k, v := range src.pairCount {
		s.pairCount[k] += v
	}
}

// print returns a human-readable summary of the collected statistics.
func (s *statistics) print() string {

	type entry struct {
		value uint64
		count uint64
	}

	getTopN := func(data map[uint64]uint64, n int) []entry {
		list := make([]entry, 0, len(data))
		for k, c := range data {
			list = append(list, entry{k, c})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].count == list[j].count {
				return list[i].value < list[j].value
			}
			return list[i].count > list[j].count
		})
		if len(list) < n {
			return list
		}
		return list[0:n]
	}

	builder := strings.Builder{}
	write := func(format string, args ...interface{}) {
		builder.WriteString(fmt.Sprintf(format, args...))
	}

	write("\n----- Statistics ------\n")
	write("\nSteps: %d\n", s.count)
	write("\nSingles:\n")
	for _, e := range getTopN(s.singleCount, 5) {
		write("\t%-30v: %d (%.2f%%)\n", OpCode(e.value), e.count, float32(e.count*100)/float32(s.count))
	}
	write("\nPairs:\n")
	for _, e := range getTopN(s.pairCount, 5) {
		write("\t%-30v%-30v: %d (%.2f%%)\n", OpCode(e.value>>8), OpCode(e.value&0xff), e.count, float32(e.count*100)/float32(s.count))
	}
	write("\n")

	return builder.String()
}

// statsCollector is a helper struct that keeps track of the last executed
// instruction to collect instruction pair statistics. A last OpCode of 0
// marks the start of a program.
type statsCollector struct {
	stats *statistics
	last  OpCode
}

func (s *statsCollector) nextOp(op OpCode) {
	cur := uint64(op)
	s.stats.count++
	s.stats.singleCount[cur]++
	if s.last != 0 {
		s.stats.pairCount[uint64(s.last)<<8|cur]++
	}
	s.last = op
}
