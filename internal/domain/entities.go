package domain

// Row is one question/answer pair of the knowledge base.
type Row struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// KnowledgeBase is the ordered set of rows the engine searches.
// A row's position is its identity and its index matrix row.
type KnowledgeBase []Row

// Documents joins question and answer of every row into one document.
func (kb KnowledgeBase) Documents(sep string) []string {
	docs := make([]string, len(kb))
	for i, r := range kb {
		docs[i] = r.Question + sep + r.Answer
	}
	return docs
}

// Clone returns a copy that shares no backing array with kb.
func (kb KnowledgeBase) Clone() KnowledgeBase {
	if kb == nil {
		return nil
	}
	out := make(KnowledgeBase, len(kb))
	copy(out, kb)
	return out
}

type ScoredCandidate struct {
	RowIndex int     `json:"row_index"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// Answer is the result of one query. BestAnswer is nil when the top
// candidate scored below the threshold.
type Answer struct {
	Query      string            `json:"query"`
	BestAnswer *string           `json:"best_answer"`
	Candidates []ScoredCandidate `json:"candidates"`
	TopK       int               `json:"top_k"`
	Threshold  float64           `json:"threshold"`
}

// Found reports whether a candidate passed the threshold.
func (a *Answer) Found() bool {
	return a != nil && a.BestAnswer != nil
}

// TopScore returns the best candidate score, or 0 without candidates.
func (a *Answer) TopScore() float64 {
	if a == nil || len(a.Candidates) == 0 {
		return 0
	}
	return a.Candidates[0].Score
}

type Stats struct {
	SessionID      string `json:"session_id"`
	Rows           int    `json:"rows"`
	VocabularySize int    `json:"vocabulary_size"`
	KBVersion      uint64 `json:"kb_version"`
	IndexVersion   uint64 `json:"index_version"`
	Indexed        bool   `json:"indexed"`
	Tokenizer      string `json:"tokenizer"`
}

// LoadReport describes the outcome of a knowledge base load.
type LoadReport struct {
	Source  string `json:"source"`
	Read    int    `json:"read"`
	Kept    int    `json:"kept"`
	Dropped int    `json:"dropped"`
}
