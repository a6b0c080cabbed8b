package usecase

import (
	"fmt"
	"math"
	"strings"

	"faq/internal/adapter/cache"
	"faq/internal/adapter/retriever"
	"faq/internal/adapter/vectorizer"
	"faq/internal/domain"
)

// RetrieveUseCase resolves queries against a built index.
type RetrieveUseCase struct {
	vectorizer *vectorizer.Vectorizer
	cache      *cache.QueryCache
}

// NewRetrieveUseCase creates a new retrieve use case. queryCache may be nil.
func NewRetrieveUseCase(v *vectorizer.Vectorizer, queryCache *cache.QueryCache) *RetrieveUseCase {
	return &RetrieveUseCase{
		vectorizer: v,
		cache:      queryCache,
	}
}

// Query ranks the rows of kb against text and keeps the top-k. The best
// answer is set only when the top candidate reaches threshold; the
// candidates are returned either way.
func (u *RetrieveUseCase) Query(kb domain.KnowledgeBase, ix *retriever.Index, text string, topK int, threshold float64) (*domain.Answer, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if err := ValidateParams(topK, threshold); err != nil {
		return nil, err
	}

	candidates, hit := u.lookup(text, topK)
	if !hit {
		candidates = u.rank(kb, ix, text, topK)
		if u.cache != nil {
			u.cache.Put(text, topK, candidates)
		}
	}

	answer := &domain.Answer{
		Query:      text,
		Candidates: candidates,
		TopK:       topK,
		Threshold:  threshold,
	}
	if len(candidates) > 0 && candidates[0].Score >= threshold {
		best := candidates[0].Answer
		answer.BestAnswer = &best
	}
	return answer, nil
}

func (u *RetrieveUseCase) lookup(text string, topK int) ([]domain.ScoredCandidate, bool) {
	if u.cache == nil {
		return nil, false
	}
	return u.cache.Get(text, topK)
}

func (u *RetrieveUseCase) rank(kb domain.KnowledgeBase, ix *retriever.Index, text string, topK int) []domain.ScoredCandidate {
	query := u.vectorizer.Transform(text, ix.Vocabulary())
	scores := ix.Score(query)

	order := retriever.Rank(scores, topK)
	candidates := make([]domain.ScoredCandidate, 0, len(order))
	for _, idx := range order {
		row := kb[idx]
		candidates = append(candidates, domain.ScoredCandidate{
			RowIndex: idx,
			Question: row.Question,
			Answer:   row.Answer,
			Score:    scores[idx],
		})
	}
	return candidates
}

// ValidateParams checks top-k and threshold bounds.
func ValidateParams(topK int, threshold float64) error {
	if topK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1, got %d", domain.ErrInvalidParameter, topK)
	}
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: threshold must be within [0,1], got %g", domain.ErrInvalidParameter, threshold)
	}
	return nil
}
