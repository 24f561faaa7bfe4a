package kmeans1d

import "fmt"

// Observer is called with the 0-indexed iteration and its SSE after every
// assignment step, including the one that converges.
type Observer func(iteration int, sse float64)

// Status is the terminal state of a run.
type Status int

const (
	// Exhausted means max iterations ran without meeting epsilon.
	Exhausted Status = iota
	// Converged means the relative SSE change dropped below epsilon.
	Converged
)

func (s Status) String() string {
	switch s {
	case Exhausted:
		return "exhausted"
	case Converged:
		return "converged"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type Result struct {
	// Assignments holds the cluster index of every sample, in [0, len(Centroids)).
	Assignments []int
	// Centroids are the centroids that produced Assignments when the run
	// converged, or the last updated centroids when it was exhausted.
	Centroids []float64
	// Iterations is the number of assignment steps performed.
	Iterations int
	// SSE is the sum of squared errors of the last assignment step.
	SSE    float64
	Status Status
}

func (r *Result) Converged() bool { return r.Status == Converged }

// Sizes returns the number of samples assigned to each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, c := range r.Assignments {
		sizes[c]++
	}
	return sizes
}
