package vectorizer

import "math"

// SparseVector holds the non-zero entries of a vector, ordered by index.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no non-zero entry.
func (v SparseVector) IsZero() bool {
	return len(v.Indices) == 0
}

// Norm returns the L2 norm.
func (v SparseVector) Norm() float64 {
	sum := 0.0
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot merges both index lists; both vectors must be sorted by index.
func (v SparseVector) Dot(other SparseVector) float64 {
	sum := 0.0
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

// normalize scales v to unit length in place. The zero vector stays zero.
func (v SparseVector) normalize() {
	n := v.Norm()
	if n == 0 {
		return
	}
	for i := range v.Values {
		v.Values[i] /= n
	}
}

// Dense expands the vector to dim entries.
func (v SparseVector) Dense(dim int) []float64 {
	out := make([]float64, dim)
	for k, idx := range v.Indices {
		if idx < dim {
			out[idx] = v.Values[k]
		}
	}
	return out
}

// DocumentMatrix holds one normalized TF-IDF row per document.
type DocumentMatrix struct {
	Rows []SparseVector
	Dim  int
}

// NumRows returns the number of documents.
func (m *DocumentMatrix) NumRows() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}
