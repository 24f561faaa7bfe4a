package kmeans1d

import (
	"fmt"
	"math"
)

func (c *Clusterer) validate() error {
	if c.workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.workers)
	}
	if c.maxIter <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxIter, c.maxIter)
	}
	if !(c.eps > 0) || math.IsInf(c.eps, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, c.eps)
	}
	if !c.strategy.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidStrategy, c.strategy)
	}
	return nil
}

func validateData(samples, centroids []float64) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if len(centroids) == 0 {
		return ErrNoCentroids
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d is %v", ErrNonFinite, i, v)
		}
	}
	for i, v := range centroids {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: centroid %d is %v", ErrNonFinite, i, v)
		}
	}
	return nil
}
