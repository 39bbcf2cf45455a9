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
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fantom-foundation/Intcode/go/intcode"
	"github.com/tliron/commonlog"
)

// SearchConfig controls the phase setting search of a network.
type SearchConfig struct {
	// Jobs is the number of networks evaluated in parallel. Values below 1
	// are treated as 1.
	Jobs int
	// Log receives a debug message for every evaluated ordering. If nil,
	// the "intcode.chain" logger is used.
	Log commonlog.Logger
	// ReportProgress, if set, is called every ReportInterval with the number
	// of orderings evaluated so far.
	ReportProgress func(relativeTime time.Duration, rate float64, current int64)
	// ReportInterval defaults to 5 seconds.
	ReportInterval time.Duration
}

// SearchResult is the best signal found by a search and the phase settings
// producing it.
type SearchResult struct {
	Signal    intcode.Word
	Phases    []intcode.Word
	Evaluated int64
}

func (r SearchResult) String() string {
	return fmt.Sprintf("%d (phases %v)", r.Signal, r.Phases)
}

type candidate struct {
	index  int64
	phases []intcode.Word
}

// Search runs the network for every ordering of the given phase settings,
// the given ordering included, and returns the highest final signal. If
// several orderings produce the highest signal, the first one in enumeration
// order is reported. Any failing network aborts the search.
func (n *Network) Search(phases []intcode.Word, config SearchConfig) (SearchResult, error) {
	if len(phases) == 0 {
		return SearchResult{}, ErrNoStages
	}
	numJobs := max(config.Jobs, 1)
	log := config.Log
	if log == nil {
		log = commonlog.GetLogger("intcode.chain")
	}

	var counter atomic.Int64
	var abort atomic.Bool

	done := make(chan bool)
	printerDone := make(chan bool)
	go func() {
		defer close(printerDone)
		if config.ReportProgress == nil {
			return
		}
		interval := config.ReportInterval
		if interval <= 0 {
			interval = 5 * time.Second
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		startTime := time.Now()
		lastTime := startTime
		lastCounter := int64(0)
		for {
			select {
			case <-done:
				return
			case curTime := <-ticker.C:
				cur := counter.Load()
				diffCounter := cur - lastCounter
				diffTime := curTime.Sub(lastTime)
				lastTime = curTime
				lastCounter = cur
				config.ReportProgress(curTime.Sub(startTime), float64(diffCounter)/diffTime.Seconds(), cur)
			}
		}
	}()

	var (
		mutex    sync.Mutex
		best     SearchResult
		firstErr error
	)
	bestIdx := int64(-1)

	var wg sync.WaitGroup
	wg.Add(numJobs)
	candidates := make(chan candidate, 10*numJobs)
	for i := 0; i < numJobs; i++ {
		go func() {
			defer wg.Done()
			for cur := range candidates {
				if abort.Load() {
					continue // keep draining the channel
				}
				signal, err := n.Run(cur.phases)
				counter.Add(1)
				if err != nil {
					abort.Store(true)
					mutex.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("phases %v: %w", cur.phases, err)
					}
					mutex.Unlock()
					continue
				}
				log.Debugf("phases %v produced signal %d", cur.phases, signal)
				mutex.Lock()
				if bestIdx < 0 || signal > best.Signal || (signal == best.Signal && cur.index < bestIdx) {
					best = SearchResult{Signal: signal, Phases: cur.phases}
					bestIdx = cur.index
				}
				mutex.Unlock()
			}
		}()
	}

	index := int64(0)
	for permutation := range Permutations(phases) {
		if abort.Load() {
			break
		}
		candidates <- candidate{index: index, phases: permutation}
		index++
	}
	close(candidates)
	wg.Wait()

	close(done)
	<-printerDone

	if firstErr != nil {
		return SearchResult{}, firstErr
	}
	best.Evaluated = counter.Load()
	log.Infof("%v network: best signal %d for phases %v out of %d orderings", n.topology, best.Signal, best.Phases, best.Evaluated)
	return best, nil
}
