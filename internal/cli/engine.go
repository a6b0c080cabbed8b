package cli

import (
	"fmt"
	"path/filepath"

	"faq/config"
	"faq/internal/adapter/analyzer"
	"faq/internal/adapter/cache"
	"faq/internal/adapter/fs"
	"faq/internal/adapter/kbsource"
	"faq/internal/domain"
	"faq/internal/logging"
	"faq/internal/usecase"
)

// newEngine builds a session from cfg and loads the configured sources.
// Without sources the session keeps the built-in rows.
func newEngine(cfg *config.Config, opts ...usecase.Option) (*usecase.Engine, *domain.LoadReport, error) {
	tok, err := analyzer.New(cfg.Index.Tokenizer, cfg.Index.Dictionary, resolvePath(cfg.Index.UserDict))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}

	base := []usecase.Option{
		usecase.WithLogger(logging.Logger()),
		usecase.WithSeparator(cfg.Index.Separator),
		usecase.WithAutoIndex(cfg.Index.AutoIndex),
	}
	if cfg.Retrieve.CacheSize > 0 {
		base = append(base, usecase.WithCache(cache.NewQueryCache(cfg.Retrieve.CacheSize, cfg.Retrieve.CacheTTL)))
	}
	engine := usecase.NewEngine(tok, append(base, opts...)...)

	if len(cfg.KnowledgeBase.Sources) == 0 {
		return engine, nil, nil
	}

	report, err := loadSources(engine, cfg, cfg.KnowledgeBase.Sources)
	if err != nil {
		return nil, nil, err
	}
	return engine, &report, nil
}

func loadSources(engine *usecase.Engine, cfg *config.Config, paths []string) (domain.LoadReport, error) {
	resolved := make([]string, len(paths))
	for i, p := range paths {
		resolved[i] = resolvePath(p)
	}

	walker := fs.NewWalker(cfg.KnowledgeBase.Includes, cfg.KnowledgeBase.Excludes)
	src, err := kbsource.Open(resolved, walker, cfg.DelimiterRune())
	if err != nil {
		return domain.LoadReport{}, err
	}
	return engine.LoadFrom(src)
}

// resolvePath makes p relative to the root directory.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GetRootDir(), p)
}
