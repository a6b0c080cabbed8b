package port

import "faq/internal/domain"

// KnowledgeBaseSource produces the rows of a knowledge base.
type KnowledgeBaseSource interface {
	// Rows returns the kept rows and a report of what was read and dropped.
	Rows() ([]domain.Row, domain.LoadReport, error)
}
