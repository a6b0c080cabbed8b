package usecase

import (
	"errors"
	"fmt"
	"time"

	"faq/internal/adapter/retriever"
	"faq/internal/adapter/vectorizer"
	"faq/internal/domain"
)

// IndexUseCase builds the similarity index over a knowledge base.
type IndexUseCase struct {
	vectorizer *vectorizer.Vectorizer
	separator  string
}

// NewIndexUseCase creates a new index use case. separator joins each
// row's question and answer into one document.
func NewIndexUseCase(v *vectorizer.Vectorizer, separator string) *IndexUseCase {
	return &IndexUseCase{
		vectorizer: v,
		separator:  separator,
	}
}

// IndexResult contains the results of an indexing operation.
type IndexResult struct {
	Rows           int
	VocabularySize int
	Duration       time.Duration
}

// Build fits the vectorizer over kb. progress may be nil.
func (u *IndexUseCase) Build(kb domain.KnowledgeBase, progress vectorizer.ProgressFunc) (*retriever.Index, *IndexResult, error) {
	if len(kb) == 0 {
		return nil, nil, domain.ErrEmptyKnowledgeBase
	}

	start := time.Now()

	v := u.vectorizer
	if progress != nil {
		v = v.WithProgress(progress)
	}

	vocab, matrix, err := v.Fit(kb.Documents(u.separator))
	if err != nil {
		if errors.Is(err, vectorizer.ErrEmptyVocabulary) {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrEmptyKnowledgeBase, err)
		}
		return nil, nil, fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	result := &IndexResult{
		Rows:           matrix.NumRows(),
		VocabularySize: vocab.Len(),
		Duration:       time.Since(start),
	}
	return retriever.NewIndex(vocab, matrix), result, nil
}
