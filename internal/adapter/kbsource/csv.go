package kbsource

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"faq/internal/domain"
)

const (
	ColumnQuestion = "question"
	ColumnAnswer   = "answer"
)

// ParseCSV reads delimited text with a header row naming the question and
// answer columns. Other columns are ignored; rows with an empty question or
// answer are dropped.
func ParseCSV(r io.Reader, source string, delimiter rune) ([]domain.Row, domain.LoadReport, error) {
	report := domain.LoadReport{Source: source}

	reader := csv.NewReader(r)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, report, domain.NewParseError(source, nil, "missing header row")
	}
	if err != nil {
		return nil, report, domain.NewParseError(source, err, "unreadable header")
	}

	qCol, aCol := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch {
		case name == ColumnQuestion && qCol < 0:
			qCol = i
		case name == ColumnAnswer && aCol < 0:
			aCol = i
		}
	}
	if qCol < 0 {
		return nil, report, domain.NewParseError(source, nil, "missing required column %q", ColumnQuestion)
	}
	if aCol < 0 {
		return nil, report, domain.NewParseError(source, nil, "missing required column %q", ColumnAnswer)
	}

	var rows []domain.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, report, domain.NewParseError(source, err, "malformed record")
		}
		report.Read++

		row := domain.Row{
			Question: field(record, qCol),
			Answer:   field(record, aCol),
		}
		if row.Question == "" || row.Answer == "" {
			report.Dropped++
			continue
		}
		rows = append(rows, row)
	}

	report.Kept = len(rows)
	return rows, report, nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
