package kmeans

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Nearest returns the index of the centroid closest to x and the squared
// distance to it. On equal distances the lowest index wins.
func Nearest(x float64, centroids []float64) (int, float64) {
	best, bestd := 0, math.Inf(1)
	for c, v := range centroids {
		diff := x - v
		if d := diff * diff; d < bestd {
			best, bestd = c, d
		}
	}
	return best, bestd
}

// Assign writes the nearest centroid of every sample into assign and returns
// the sum of squared distances. assign must have len(samples) entries and
// centroids must not be empty.
func Assign(p *Pool, samples, centroids []float64, assign []int) float64 {
	if p.strategy == StrategyReduction {
		partial := make([]float64, p.workers)
		p.For(len(samples), func(w, lo, hi int) {
			var local float64
			for i := lo; i < hi; i++ {
				c, d := Nearest(samples[i], centroids)
				assign[i] = c
				local += d
			}
			partial[w] = local
		})
		return floats.Sum(partial)
	}

	var sse SSE
	p.For(len(samples), func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			c, d := Nearest(samples[i], centroids)
			assign[i] = c
			sse.Add(d)
		}
	})
	return sse.Total()
}

// Update overwrites centroids with the mean of the samples assigned to each
// cluster. A cluster left without samples takes the value of samples[0].
func Update(p *Pool, samples, centroids []float64, assign []int) {
	k := len(centroids)
	acc := make([]Accumulator, k)

	if p.strategy == StrategyReduction {
		sums := make([][]float64, p.workers)
		counts := make([][]int, p.workers)
		p.For(len(samples), func(w, lo, hi int) {
			sum, count := make([]float64, k), make([]int, k)
			for i := lo; i < hi; i++ {
				c := assign[i]
				sum[c] += samples[i]
				count[c]++
			}
			sums[w], counts[w] = sum, count
		})
		for w := range sums {
			if sums[w] == nil {
				continue
			}
			for c := range k {
				acc[c].Merge(sums[w][c], counts[w][c])
			}
		}
	} else {
		p.For(len(samples), func(_, lo, hi int) {
			for i := lo; i < hi; i++ {
				acc[assign[i]].Add(samples[i])
			}
		})
	}

	for c := range acc {
		centroids[c] = acc[c].Mean(samples[0])
	}
}
