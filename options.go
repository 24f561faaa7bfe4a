package kmeans1d

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/yyyoichi/kmeans1d/internal/kmeans"
)

const (
	DefaultWorkers = 4
	DefaultMaxIter = 100
	DefaultEpsilon = 1e-6
)

type Option func(*Clusterer) error

// Strategy selects how workers combine their contributions to the SSE total
// and to the per-cluster sums and counts.
type Strategy = kmeans.Strategy

const (
	// StrategyCritical serializes every contribution through a mutex on one
	// shared accumulator. This is the default.
	StrategyCritical = kmeans.StrategyCritical
	// StrategyReduction gives each worker private partial accumulators and
	// merges them after the phase. Results equal StrategyCritical up to
	// floating point summation order.
	StrategyReduction = kmeans.StrategyReduction
)

// ParseStrategy returns the Strategy named by s ("critical" or "reduction").
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return StrategyCritical, nil
	case "reduction":
		return StrategyReduction, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// WithWorkers sets the number of goroutines used by each parallel phase.
// The pool lives only for the runs of this Clusterer.
func WithWorkers(n int) Option {
	return func(c *Clusterer) error {
		if n < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidWorkers, n)
		}
		c.workers = n
		return nil
	}
}

// WithMaxIter bounds the number of assignment steps.
func WithMaxIter(n int) Option {
	return func(c *Clusterer) error {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidMaxIter, n)
		}
		c.maxIter = n
		return nil
	}
}

// WithEpsilon sets the relative SSE change below which the run is converged.
func WithEpsilon(eps float64) Option {
	return func(c *Clusterer) error {
		if !(eps > 0) || math.IsInf(eps, 1) {
			return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, eps)
		}
		c.eps = eps
		return nil
	}
}

func WithStrategy(s Strategy) Option {
	return func(c *Clusterer) error {
		if !s.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidStrategy, s)
		}
		c.strategy = s
		return nil
	}
}

// WithObserver receives (iteration, SSE) once per assignment step, in order,
// while the run is in progress. Iterations are 0-indexed.
func WithObserver(fn Observer) Option {
	return func(c *Clusterer) error {
		c.observer = fn
		return nil
	}
}

// WithLogger sets the structured logger. Logging is discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Clusterer) error {
		c.logger = l
		return nil
	}
}
