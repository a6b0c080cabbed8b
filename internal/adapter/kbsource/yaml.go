package kbsource

import (
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"faq/internal/domain"
)

// ParseYAML reads a YAML list of {question, answer} mappings.
func ParseYAML(r io.Reader, source string) ([]domain.Row, domain.LoadReport, error) {
	report := domain.LoadReport{Source: source}

	var raw []map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, report, domain.NewParseError(source, nil, "empty document")
		}
		return nil, report, domain.NewParseError(source, err, "invalid yaml")
	}

	hasQuestion, hasAnswer := false, false
	var rows []domain.Row
	for _, entry := range raw {
		report.Read++
		var row domain.Row
		for k, v := range entry {
			switch strings.ToLower(strings.TrimSpace(k)) {
			case ColumnQuestion:
				hasQuestion = true
				row.Question = strings.TrimSpace(v)
			case ColumnAnswer:
				hasAnswer = true
				row.Answer = strings.TrimSpace(v)
			}
		}
		if row.Question == "" || row.Answer == "" {
			report.Dropped++
			continue
		}
		rows = append(rows, row)
	}

	if len(raw) > 0 && !hasQuestion {
		return nil, report, domain.NewParseError(source, nil, "missing required column %q", ColumnQuestion)
	}
	if len(raw) > 0 && !hasAnswer {
		return nil, report, domain.NewParseError(source, nil, "missing required column %q", ColumnAnswer)
	}

	report.Kept = len(rows)
	return rows, report, nil
}
