package vectorizer

import (
	"errors"
	"math"
	"sort"

	"faq/internal/port"
)

var (
	ErrNoDocuments     = errors.New("no documents to fit")
	ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no terms")
)

// Vocabulary maps each fitted term to its dimension and IDF weight.
type Vocabulary struct {
	index map[string]int
	terms []string
	idf   []float64
}

// Len returns the number of dimensions.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Lookup returns the dimension of term.
func (v *Vocabulary) Lookup(term string) (int, bool) {
	idx, ok := v.index[term]
	return idx, ok
}

// Terms returns the terms in dimension order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// IDF returns the weight of dimension idx.
func (v *Vocabulary) IDF(idx int) float64 {
	return v.idf[idx]
}

// ProgressFunc is called after each document is tokenized.
type ProgressFunc func(done, total int)

// Vectorizer builds TF-IDF vectors with a smoothed IDF,
// idf = ln((1+n)/(1+df)) + 1, and L2-normalized rows.
type Vectorizer struct {
	tokenizer port.Tokenizer
	progress  ProgressFunc
}

// New creates a Vectorizer on top of tokenizer.
func New(tokenizer port.Tokenizer) *Vectorizer {
	return &Vectorizer{tokenizer: tokenizer}
}

// WithProgress returns a copy of v that reports fit progress to fn.
func (v *Vectorizer) WithProgress(fn ProgressFunc) *Vectorizer {
	return &Vectorizer{tokenizer: v.tokenizer, progress: fn}
}

// Tokenizer returns the tokenizer documents are split with.
func (v *Vectorizer) Tokenizer() port.Tokenizer {
	return v.tokenizer
}

// Fit builds the vocabulary over documents and returns their vectors.
// Dimensions are assigned in lexicographic term order.
func (v *Vectorizer) Fit(documents []string) (*Vocabulary, *DocumentMatrix, error) {
	if len(documents) == 0 {
		return nil, nil, ErrNoDocuments
	}

	counts := make([]map[string]int, len(documents))
	df := make(map[string]int)

	for i, doc := range documents {
		tf := termCounts(v.tokenizer.Tokenize(doc))
		counts[i] = tf
		for term := range tf {
			df[term]++
		}
		if v.progress != nil {
			v.progress(i+1, len(documents))
		}
	}

	if len(df) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := &Vocabulary{
		index: make(map[string]int, len(terms)),
		terms: terms,
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(documents))
	for i, term := range terms {
		vocab.index[term] = i
		vocab.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	matrix := &DocumentMatrix{
		Rows: make([]SparseVector, len(documents)),
		Dim:  len(terms),
	}
	for i, tf := range counts {
		matrix.Rows[i] = weigh(tf, vocab)
	}

	return vocab, matrix, nil
}

// Transform projects text onto vocab. Terms unseen at fit time are
// dropped; text without any known term yields the zero vector.
func (v *Vectorizer) Transform(text string, vocab *Vocabulary) SparseVector {
	if vocab.Len() == 0 {
		return SparseVector{}
	}
	return weigh(termCounts(v.tokenizer.Tokenize(text)), vocab)
}

func termCounts(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}

func weigh(tf map[string]int, vocab *Vocabulary) SparseVector {
	indices := make([]int, 0, len(tf))
	for term := range tf {
		if idx, ok := vocab.index[term]; ok {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	vec := SparseVector{
		Indices: indices,
		Values:  make([]float64, len(indices)),
	}
	for k, idx := range indices {
		vec.Values[k] = float64(tf[vocab.terms[idx]]) * vocab.idf[idx]
	}
	vec.normalize()
	return vec
}
