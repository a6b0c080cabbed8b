package retriever

import (
	"sort"

	"faq/internal/adapter/vectorizer"
)

// Index scores query vectors against a fitted document matrix.
type Index struct {
	vocab  *vectorizer.Vocabulary
	matrix *vectorizer.DocumentMatrix
}

// NewIndex wraps a vocabulary and the matrix fitted with it.
func NewIndex(vocab *vectorizer.Vocabulary, matrix *vectorizer.DocumentMatrix) *Index {
	return &Index{vocab: vocab, matrix: matrix}
}

// Vocabulary returns the vocabulary queries must be transformed with.
func (ix *Index) Vocabulary() *vectorizer.Vocabulary {
	return ix.vocab
}

// Matrix returns the indexed document vectors.
func (ix *Index) Matrix() *vectorizer.DocumentMatrix {
	return ix.matrix
}

// Size returns the number of indexed rows.
func (ix *Index) Size() int {
	return ix.matrix.NumRows()
}

// Score returns the cosine similarity of query against every row.
// Both sides are L2-normalized with non-negative weights, so scores
// fall in [0,1]; rounding overshoot is clamped.
func (ix *Index) Score(query vectorizer.SparseVector) []float64 {
	scores := make([]float64, ix.matrix.NumRows())
	if query.IsZero() {
		return scores
	}
	for i, row := range ix.matrix.Rows {
		scores[i] = clamp(query.Dot(row))
	}
	return scores
}

// Rank returns the row indices of the k best scores, highest first.
// Equal scores keep ascending row order.
func Rank(scores []float64, k int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k < len(order) {
		order = order[:k]
	}
	return order
}

func clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
