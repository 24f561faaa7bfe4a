// Package kmeans1d clusters one-dimensional samples with Lloyd's k-means,
// running the assignment and update phases on a fixed pool of goroutines.
package kmeans1d

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"

	"github.com/yyyoichi/kmeans1d/internal/kmeans"
)

var (
	ErrNoSamples       = errors.New("sample set is empty")
	ErrNoCentroids     = errors.New("centroid set is empty")
	ErrNonFinite       = errors.New("value is not finite")
	ErrInvalidWorkers  = errors.New("worker count must be at least 1")
	ErrInvalidMaxIter  = errors.New("max iterations must be positive")
	ErrInvalidEpsilon  = errors.New("epsilon must be positive")
	ErrInvalidStrategy = errors.New("unknown accumulation strategy")
)

// Cluster runs one clustering with the given options.
// This is a convenience function that creates a Clusterer and calls its Run method.
func Cluster(ctx context.Context, samples, centroids []float64, opts ...Option) (*Result, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, samples, centroids)
}

type Clusterer struct {
	workers  int
	maxIter  int
	eps      float64
	strategy Strategy
	observer Observer
	logger   *slog.Logger
}

// New initializes a Clusterer.
// For default values, refer to the init function.
func New(opts ...Option) (*Clusterer, error) {
	c := new(Clusterer)
	if err := c.init(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Run clusters samples starting from centroids.
//
// Each iteration:
//  1. Assigns every sample to its nearest centroid and computes the SSE.
//  2. Reports (iteration, SSE) to the observer.
//  3. Stops if the relative SSE change against the previous iteration is
//     below epsilon. The centroids are not updated on that iteration.
//  4. Otherwise moves every centroid to the mean of its samples.
//
// The loop ends after max iterations even without convergence.
// samples is only read; centroids is copied and never modified.
// ctx carries logging context only, a run cannot be cancelled.
func (c *Clusterer) Run(ctx context.Context, samples, centroids []float64) (*Result, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := validateData(samples, centroids); err != nil {
		return nil, err
	}

	var (
		pool   = kmeans.NewPool(c.workers, c.strategy)
		cents  = slices.Clone(centroids)
		assign = make([]int, len(samples))
		prev   float64
		sse    float64
		it     int
		status = Exhausted
	)
	for it < c.maxIter {
		sse = kmeans.Assign(pool, samples, cents, assign)
		if c.observer != nil {
			c.observer(it, sse)
		}
		c.logger.DebugContext(ctx, "assignment step", "iteration", it, "sse", sse)
		it++
		// The first step has nothing to compare with.
		if it > 1 && relativeChange(sse, prev) < c.eps {
			status = Converged
			break
		}
		kmeans.Update(pool, samples, cents, assign)
		prev = sse
	}

	c.logger.InfoContext(ctx, "clustering finished",
		"n", len(samples),
		"k", len(cents),
		"workers", c.workers,
		"strategy", c.strategy.String(),
		"iterations", it,
		"sse", sse,
		"status", status.String(),
	)
	return &Result{
		Assignments: assign,
		Centroids:   cents,
		Iterations:  it,
		SSE:         sse,
		Status:      status,
	}, nil
}

// relativeChange is |sse-prev| / max(prev, 1).
func relativeChange(sse, prev float64) float64 {
	return math.Abs(sse-prev) / max(prev, 1.0)
}

func (c *Clusterer) init(opts ...Option) error {
	c.workers = DefaultWorkers
	c.maxIter = DefaultMaxIter
	c.eps = DefaultEpsilon
	c.strategy = StrategyCritical
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}
