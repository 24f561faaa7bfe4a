package kmeans

import "sync"

// Accumulator is a per-cluster (sum, count) pair. Add applies both fields
// under one lock so no reader ever sees a sum without its count.
type Accumulator struct {
	sum   float64
	count int
	mu    sync.Mutex
}

func (s *Accumulator) Add(value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sum += value
	s.count += 1
}

// Merge folds a partial sum and count collected elsewhere into s.
func (s *Accumulator) Merge(sum float64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sum += sum
	s.count += count
}

// Mean returns sum/count, or fallback when nothing has been added.
func (s *Accumulator) Mean(fallback float64) float64 {
	if s.count == 0 {
		return fallback
	}
	return s.sum / float64(s.count)
}

func (s *Accumulator) Count() int { return s.count }

func (s *Accumulator) Sum() float64 { return s.sum }

// SSE is the squared error total shared by all workers of one assignment phase.
type SSE struct {
	total float64
	mu    sync.Mutex
}

func (s *SSE) Add(d float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total += d
}

func (s *SSE) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
