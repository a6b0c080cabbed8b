package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"faq/internal/adapter/cache"
	"faq/internal/adapter/retriever"
	"faq/internal/adapter/vectorizer"
	"faq/internal/domain"
	"faq/internal/logging"
	"faq/internal/port"
)

// Engine is one retrieval session: the knowledge base, the index built
// from it and the status shown to the caller. It is not safe for
// concurrent use; callers that may be concurrent must serialize access.
type Engine struct {
	id        string
	logger    *slog.Logger
	tokenizer port.Tokenizer
	indexer   *IndexUseCase
	retriever *RetrieveUseCase
	cache     *cache.QueryCache
	progress  vectorizer.ProgressFunc
	autoIndex bool

	kb        domain.KnowledgeBase
	kbVersion uint64
	seeded    bool

	snapshot *indexSnapshot

	status    domain.StatusEvent
	observers []port.StatusObserver
}

// indexSnapshot pins an index to the rows and version it was built from.
type indexSnapshot struct {
	kb      domain.KnowledgeBase
	index   *retriever.Index
	version uint64
}

type engineOptions struct {
	logger    *slog.Logger
	cache     *cache.QueryCache
	separator string
	autoIndex bool
	progress  vectorizer.ProgressFunc
	kb        domain.KnowledgeBase
	observers []port.StatusObserver
}

// Option configures an Engine.
type Option func(*engineOptions)

func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// WithCache enables query result caching.
func WithCache(c *cache.QueryCache) Option {
	return func(o *engineOptions) { o.cache = c }
}

// WithSeparator sets the text joining question and answer.
func WithSeparator(sep string) Option {
	return func(o *engineOptions) { o.separator = sep }
}

// WithAutoIndex controls whether Ask rebuilds a stale index. When off,
// queries keep using the last index and the rows it was built from
// until RebuildIndex is called. A session without any index always
// builds one on first use.
func WithAutoIndex(enabled bool) Option {
	return func(o *engineOptions) { o.autoIndex = enabled }
}

// WithIndexProgress reports index build progress to fn.
func WithIndexProgress(fn vectorizer.ProgressFunc) Option {
	return func(o *engineOptions) { o.progress = fn }
}

// WithKnowledgeBase replaces the default seed rows.
func WithKnowledgeBase(kb domain.KnowledgeBase) Option {
	return func(o *engineOptions) { o.kb = kb }
}

func WithObserver(obs port.StatusObserver) Option {
	return func(o *engineOptions) { o.observers = append(o.observers, obs) }
}

// NewEngine creates a session seeded with the default knowledge base.
func NewEngine(tokenizer port.Tokenizer, opts ...Option) *Engine {
	o := engineOptions{
		separator: " ",
		autoIndex: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Logger()
	}

	id := uuid.NewString()
	v := vectorizer.New(tokenizer)

	e := &Engine{
		id:        id,
		logger:    o.logger.With("session", id),
		tokenizer: tokenizer,
		indexer:   NewIndexUseCase(v, o.separator),
		retriever: NewRetrieveUseCase(v, o.cache),
		cache:     o.cache,
		progress:  o.progress,
		autoIndex: o.autoIndex,
		kb:        domain.DefaultKnowledgeBase(),
		kbVersion: 1,
		seeded:    true,
		observers: o.observers,
	}
	if o.kb != nil {
		e.kb = cleanRows(o.kb)
		e.seeded = false
	}

	e.setStatus(domain.StatusIdle, "initializing knowledge base", nil)
	e.logger.Info("engine: session created", "rows", len(e.kb), "tokenizer", tokenizer.Name())
	return e
}

// ID returns the session identifier.
func (e *Engine) ID() string {
	return e.id
}

// KnowledgeBase returns a copy of the current rows.
func (e *Engine) KnowledgeBase() domain.KnowledgeBase {
	return e.kb.Clone()
}

// Load replaces the knowledge base with rows, dropping rows that lack a
// question or an answer. The index becomes stale.
func (e *Engine) Load(rows []domain.Row) domain.LoadReport {
	kept := cleanRows(rows)
	report := domain.LoadReport{
		Source:  "rows",
		Read:    len(rows),
		Kept:    len(kept),
		Dropped: len(rows) - len(kept),
	}
	e.replace(kept, report)
	return report
}

// LoadFrom replaces the knowledge base with the rows of src. On error
// the current knowledge base and index are kept.
func (e *Engine) LoadFrom(src port.KnowledgeBaseSource) (domain.LoadReport, error) {
	rows, report, err := src.Rows()
	if err != nil {
		e.logger.Warn("engine: knowledge base load failed", "error", err)
		e.setStatus(domain.StatusError, "failed to load knowledge base", err)
		return report, err
	}

	kept := cleanRows(rows)
	report.Dropped += len(rows) - len(kept)
	report.Kept = len(kept)
	e.replace(kept, report)
	return report, nil
}

func (e *Engine) replace(rows domain.KnowledgeBase, report domain.LoadReport) {
	e.kb = rows
	e.kbVersion++
	e.seeded = false

	e.logger.Info("engine: knowledge base replaced",
		"source", report.Source,
		"read", report.Read,
		"kept", report.Kept,
		"dropped", report.Dropped,
		"kb_version", e.kbVersion,
	)
	e.setStatus(domain.StatusIdle, fmt.Sprintf("loaded %d rows, index needs rebuilding", len(rows)), nil)
}

// RebuildIndex fits a new index over the current knowledge base.
func (e *Engine) RebuildIndex() error {
	_, err := e.rebuild()
	return err
}

// RebuildIndexResult is RebuildIndex returning build statistics.
func (e *Engine) RebuildIndexResult() (*IndexResult, error) {
	return e.rebuild()
}

func (e *Engine) rebuild() (*IndexResult, error) {
	e.setStatus(domain.StatusIndexing, "building index", nil)

	kb := e.kb.Clone()
	ix, result, err := e.indexer.Build(kb, e.progress)
	if err != nil {
		e.logger.Warn("engine: index build failed", "rows", len(kb), "error", err)
		e.setStatus(domain.StatusError, "failed to build index", err)
		return nil, err
	}

	e.snapshot = &indexSnapshot{kb: kb, index: ix, version: e.kbVersion}
	if e.cache != nil {
		e.cache.Invalidate()
	}

	e.logger.Info("engine: index built",
		"rows", result.Rows,
		"vocabulary", result.VocabularySize,
		"kb_version", e.kbVersion,
		"duration", result.Duration,
	)

	label := "uploaded knowledge base indexed"
	if e.seeded {
		label = "default knowledge base indexed"
	}
	e.setStatus(domain.StatusReady, label, nil)
	return result, nil
}

// Indexed reports whether the index matches the current knowledge base.
func (e *Engine) Indexed() bool {
	return e.snapshot != nil && e.snapshot.version == e.kbVersion
}

func (e *Engine) ensureIndex() error {
	if e.snapshot == nil {
		e.setStatus(domain.StatusIndexing, "index not built yet, building automatically", nil)
		return e.RebuildIndex()
	}
	if e.autoIndex && !e.Indexed() {
		return e.RebuildIndex()
	}
	return nil
}

// Ask answers question with the top-k candidates. BestAnswer is nil when
// the best score is below threshold.
func (e *Engine) Ask(question string, topK int, threshold float64) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if err := ValidateParams(topK, threshold); err != nil {
		return nil, err
	}

	if err := e.ensureIndex(); err != nil {
		return nil, err
	}

	e.setStatus(domain.StatusQuerying, "querying", nil)
	start := time.Now()

	answer, err := e.retriever.Query(e.snapshot.kb, e.snapshot.index, question, topK, threshold)
	if err != nil {
		e.setStatus(domain.StatusError, "query failed", err)
		return nil, err
	}

	e.logger.Debug("engine: query resolved",
		"query", question,
		"top_k", topK,
		"threshold", threshold,
		"top_score", answer.TopScore(),
		"found", answer.Found(),
		"duration", time.Since(start),
	)

	if answer.Found() {
		e.setStatus(domain.StatusReady, "query complete", nil)
	} else {
		e.setStatus(domain.StatusReady, "query complete, no suitable answer", nil)
	}
	return answer, nil
}

// Status returns the latest status event.
func (e *Engine) Status() domain.StatusEvent {
	return e.status
}

// Subscribe registers an observer for subsequent status changes.
func (e *Engine) Subscribe(obs port.StatusObserver) {
	e.observers = append(e.observers, obs)
}

// Stats summarizes the session.
func (e *Engine) Stats() domain.Stats {
	stats := domain.Stats{
		SessionID: e.id,
		Rows:      len(e.kb),
		KBVersion: e.kbVersion,
		Indexed:   e.Indexed(),
		Tokenizer: e.tokenizer.Name(),
	}
	if e.snapshot != nil {
		stats.IndexVersion = e.snapshot.version
		stats.VocabularySize = e.snapshot.index.Vocabulary().Len()
	}
	return stats
}

func (e *Engine) setStatus(status domain.Status, label string, err error) {
	event := domain.StatusEvent{
		Status: status,
		Label:  label,
		At:     time.Now(),
	}
	if err != nil {
		event.Err = err.Error()
	}
	e.status = event
	for _, obs := range e.observers {
		obs.OnStatus(event)
	}
}

// cleanRows trims both fields and drops rows missing either.
func cleanRows(rows []domain.Row) domain.KnowledgeBase {
	kept := make(domain.KnowledgeBase, 0, len(rows))
	for _, r := range rows {
		r.Question = strings.TrimSpace(r.Question)
		r.Answer = strings.TrimSpace(r.Answer)
		if r.Question == "" || r.Answer == "" {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// IsUserError reports whether err is a validation failure the caller can
// fix by changing its input.
func IsUserError(err error) bool {
	return errors.Is(err, domain.ErrParse) ||
		errors.Is(err, domain.ErrEmptyQuery) ||
		errors.Is(err, domain.ErrInvalidParameter) ||
		errors.Is(err, domain.ErrEmptyKnowledgeBase)
}
