package kmeans

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Strategy selects how workers combine their contributions to the shared
// accumulators.
type Strategy int

const (
	// StrategyCritical adds every contribution into one shared accumulator
	// under a mutex.
	StrategyCritical Strategy = iota
	// StrategyReduction keeps one partial accumulator per worker and merges
	// them in worker order after the phase joins.
	StrategyReduction
)

func (s Strategy) String() string {
	switch s {
	case StrategyCritical:
		return "critical"
	case StrategyReduction:
		return "reduction"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) Valid() bool {
	return s == StrategyCritical || s == StrategyReduction
}

// Pool runs per-sample loops on a fixed number of workers.
type Pool struct {
	workers  int
	strategy Strategy
}

func NewPool(workers int, strategy Strategy) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, strategy: strategy}
}

func (p *Pool) Workers() int { return p.workers }

func (p *Pool) Strategy() Strategy { return p.strategy }

// chunks splits [0,n) into at most p.workers contiguous, non-overlapping ranges.
func (p *Pool) chunks(n int) [][2]int {
	if n <= 0 {
		return nil
	}
	size := (n + p.workers - 1) / p.workers
	ranges := make([][2]int, 0, p.workers)
	for lo := 0; lo < n; lo += size {
		ranges = append(ranges, [2]int{lo, min(lo+size, n)})
	}
	return ranges
}

// For calls fn once per chunk of [0,n), each on its own goroutine, and returns
// after every chunk has finished. worker is the chunk index, always below
// p.Workers().
func (p *Pool) For(n int, fn func(worker, lo, hi int)) {
	var g errgroup.Group
	g.SetLimit(p.workers)
	for w, r := range p.chunks(n) {
		g.Go(func() error {
			fn(w, r[0], r[1])
			return nil
		})
	}
	_ = g.Wait()
}
