// Package kmeans implements the two phases of 1-D Lloyd iteration.
//
// Assign and Update each run one parallel pass over the samples on a Pool.
// Per-sample writes go to disjoint slots; the only shared state is the SSE
// total and the per-cluster (sum, count) pairs, which are combined according
// to the pool's Strategy.
package kmeans
