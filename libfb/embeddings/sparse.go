package embeddings

import (
	"fmt"
	"sort"
)

// SparseVector represents a sparse embedding as parallel arrays of indices and values.
// Indices are token IDs from the model's vocabulary, sorted ascending.
// Values are the corresponding weights (always positive after SPLADE activation).
type SparseVector struct {
	Indices []int32   `json:"indices"`
	Values  []float32 `json:"values"`
}

// NNZ returns the number of non-zero entries.
func (v SparseVector) NNZ() int {
	return len(v.Indices)
}

// Validate checks structural invariants: parallel array lengths and
// strictly ascending indices.
func (v SparseVector) Validate() error {
	if len(v.Indices) != len(v.Values) {
		return fmt.Errorf("indices/values length mismatch: %d vs %d", len(v.Indices), len(v.Values))
	}
	for i := 1; i < len(v.Indices); i++ {
		if v.Indices[i] <= v.Indices[i-1] {
			return fmt.Errorf("indices not strictly ascending at position %d", i)
		}
	}
	return nil
}

// Dot computes the dot product of two sparse vectors. Both vectors must
// have ascending indices.
func (v SparseVector) Dot(other SparseVector) float32 {
	var sum float32
	i, j := 0, 0
	for i < len(v.Indices) && j < len(other.Indices) {
		switch {
		case v.Indices[i] == other.Indices[j]:
			sum += v.Values[i] * other.Values[j]
			i++
			j++
		case v.Indices[i] < other.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// TopWeights returns the n largest weights with their vocabulary indices,
// ordered by descending weight. Useful for eyeballing what a SPLADE
// expansion activated on.
func (v SparseVector) TopWeights(n int) ([]int32, []float32) {
	type entry struct {
		idx int32
		val float32
	}
	entries := make([]entry, len(v.Indices))
	for i := range v.Indices {
		entries[i] = entry{v.Indices[i], v.Values[i]}
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].val > entries[b].val
	})
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	indices := make([]int32, n)
	values := make([]float32, n)
	for i := 0; i < n; i++ {
		indices[i] = entries[i].idx
		values[i] = entries[i].val
	}
	return indices, values
}
