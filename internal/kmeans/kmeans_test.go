package kmeans

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

var strategies = []Strategy{StrategyCritical, StrategyReduction}

func TestNearest(t *testing.T) {
	test := []struct {
		name      string
		x         float64
		centroids []float64
		expIdx    int
		expDist   float64
	}{
		{"single", 5, []float64{1}, 0, 16},
		{"closest_second", 9, []float64{1, 10}, 1, 1},
		{"exact", 3, []float64{1, 3, 5}, 1, 0},
		{"tie_keeps_lowest", 2, []float64{1, 3}, 0, 1},
		{"tie_three", 0, []float64{-1, 1, -1}, 0, 1},
		{"duplicate_centroids", 4, []float64{7, 4, 4}, 1, 0},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			idx, d := Nearest(tt.x, tt.centroids)
			assert.Equal(t, tt.expIdx, idx)
			assert.Equal(t, tt.expDist, d)
		})
	}
}

func TestPoolFor(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 7, 16, 100} {
		for _, n := range []int{0, 1, 5, 64, 1001} {
			p := NewPool(workers, StrategyCritical)
			visits := make([]int32, n)
			var maxWorker atomic.Int32
			p.For(n, func(w, lo, hi int) {
				for {
					cur := maxWorker.Load()
					if int32(w) <= cur || maxWorker.CompareAndSwap(cur, int32(w)) {
						break
					}
				}
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
			})
			for i, v := range visits {
				require.EqualValues(t, 1, v, "workers=%d n=%d index=%d", workers, n, i)
			}
			assert.Less(t, int(maxWorker.Load()), p.Workers())
		}
	}
}

func TestNewPoolClampsWorkers(t *testing.T) {
	assert.Equal(t, 1, NewPool(0, StrategyCritical).Workers())
	assert.Equal(t, 1, NewPool(-3, StrategyReduction).Workers())
	assert.Equal(t, StrategyReduction, NewPool(2, StrategyReduction).Strategy())
}

func TestStrategy(t *testing.T) {
	assert.Equal(t, "critical", StrategyCritical.String())
	assert.Equal(t, "reduction", StrategyReduction.String())
	assert.Equal(t, "Strategy(9)", Strategy(9).String())
	assert.True(t, StrategyCritical.Valid())
	assert.False(t, Strategy(-1).Valid())
}

func TestAccumulator(t *testing.T) {
	var acc Accumulator
	assert.Equal(t, 42.0, acc.Mean(42))

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for range 1000 {
				acc.Add(float64(g))
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 8000, acc.Count())
	assert.Equal(t, 28000.0, acc.Sum())
	assert.Equal(t, 3.5, acc.Mean(0))

	acc.Merge(2000, 2000)
	assert.Equal(t, 10000, acc.Count())
	assert.Equal(t, 3.0, acc.Mean(0))
}

func TestAssign(t *testing.T) {
	samples := []float64{1, 2, 3, 10, 11, 12}
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			assign := make([]int, len(samples))
			sse := Assign(NewPool(3, s), samples, []float64{1, 12}, assign)
			assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, assign)
			assert.Equal(t, 10.0, sse)
		})
	}
}

func TestAssignSingleCentroid(t *testing.T) {
	samples := []float64{-4, 0, 2, 9}
	assign := []int{7, 7, 7, 7}
	sse := Assign(NewPool(2, StrategyCritical), samples, []float64{1}, assign)
	assert.Equal(t, []int{0, 0, 0, 0}, assign)
	assert.Equal(t, 25.0+1+1+64, sse)
}

// Every sample contributes exactly 1 to the SSE and to its cluster, so any
// lost update shows up as an exact mismatch.
func TestNoLostUpdates(t *testing.T) {
	const n = 200_000
	samples := make([]float64, n)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 1
		} else {
			samples[i] = 11
		}
	}
	for _, s := range strategies {
		for _, workers := range []int{2, 8, 32} {
			p := NewPool(workers, s)
			centroids := []float64{0, 10}
			assign := make([]int, n)

			sse := Assign(p, samples, centroids, assign)
			require.Equal(t, float64(n), sse, "strategy=%s workers=%d", s, workers)

			Update(p, samples, centroids, assign)
			require.Equal(t, []float64{1, 11}, centroids, "strategy=%s workers=%d", s, workers)
		}
	}
}

func TestUpdate(t *testing.T) {
	samples := []float64{1, 2, 3, 10, 11, 12}
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			centroids := []float64{1, 12}
			Update(NewPool(4, s), samples, centroids, []int{0, 0, 0, 1, 1, 1})
			assert.Equal(t, []float64{2, 11}, centroids)
		})
	}
}

func TestUpdateEmptyCluster(t *testing.T) {
	samples := []float64{5, 1, 3}
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			centroids := []float64{0, 100, -50}
			assign := make([]int, len(samples))
			Assign(NewPool(2, s), samples, centroids, assign)
			require.Equal(t, []int{0, 0, 0}, assign)

			Update(NewPool(2, s), samples, centroids, assign)
			assert.Equal(t, []float64{3, 5, 5}, centroids)
		})
	}
}

func TestStrategiesAgree(t *testing.T) {
	rd := rand.New(rand.NewSource(7))
	samples := make([]float64, 5000)
	for i := range samples {
		samples[i] = rd.NormFloat64()*10 + float64(rd.Intn(4))*50
	}
	initial := []float64{-10, 40, 90, 160}

	var (
		expSSE    float64
		expAssign []int
		expCents  []float64
	)
	for i, s := range strategies {
		for _, workers := range []int{1, 3, 8} {
			p := NewPool(workers, s)
			centroids := append([]float64(nil), initial...)
			assign := make([]int, len(samples))
			sse := Assign(p, samples, centroids, assign)
			Update(p, samples, centroids, assign)
			if i == 0 && workers == 1 {
				expSSE, expAssign, expCents = sse, assign, centroids
				continue
			}
			assert.InEpsilon(t, expSSE, sse, 1e-10)
			assert.Equal(t, expAssign, assign)
			assert.True(t, floats.EqualApprox(expCents, centroids, 1e-9), "%v != %v", expCents, centroids)
		}
	}
}
