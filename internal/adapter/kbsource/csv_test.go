package kbsource

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"faq/internal/adapter/fs"
	"faq/internal/domain"
)

func TestParseCSV(t *testing.T) {
	input := "\ufeffQuestion,Answer,category\n" +
		"營業時間?,週一至週五,hours\n" +
		"如何申請退貨？,,returns\n" +
		" ,空白問題,misc\n" +
		"\"運費如何計算？\",\"滿 NT$ 1000 免運, 未滿酌收 NT$ 80\",shipping\n"

	rows, report, err := ParseCSV(strings.NewReader(input), "faq.csv", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0] != (domain.Row{Question: "營業時間?", Answer: "週一至週五"}) {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Answer != "滿 NT$ 1000 免運, 未滿酌收 NT$ 80" {
		t.Errorf("expected quoted field with delimiter, got %q", rows[1].Answer)
	}

	if report.Read != 4 || report.Kept != 2 || report.Dropped != 2 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestParseCSV_MissingColumn(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no answer", "question,category\n營業時間?,hours\n"},
		{"no question", "answer\n週一至週五\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCSV(strings.NewReader(tt.input), "bad.csv", ',')
			if !errors.Is(err, domain.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			var pe *domain.ParseError
			if !errors.As(err, &pe) || pe.Source != "bad.csv" {
				t.Errorf("expected ParseError for bad.csv, got %#v", err)
			}
		})
	}
}

func TestParseCSV_ShortRecord(t *testing.T) {
	input := "question,answer\n只有問題\n問題,答案\n"

	rows, report, err := ParseCSV(strings.NewReader(input), "short.csv", ',')
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || report.Dropped != 1 {
		t.Errorf("expected short record to be dropped, got rows=%+v report=%+v", rows, report)
	}
}

func TestParseCSV_TabDelimited(t *testing.T) {
	input := "question\tanswer\n可以開立發票嗎？\t我們提供電子發票\n"

	rows, _, err := ParseCSV(strings.NewReader(input), "faq.tsv", '\t')
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Answer != "我們提供電子發票" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestParseYAML(t *testing.T) {
	input := `
- question: 你們的營業時間是？
  answer: 週一至週五 09:00–18:00
- question: 運費如何計算？
  answer: ""
- Question: 可以開立發票嗎？
  Answer: 我們提供電子發票
`
	rows, report, err := ParseYAML(strings.NewReader(input), "faq.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if rows[1].Question != "可以開立發票嗎？" {
		t.Errorf("expected case-insensitive keys, got %+v", rows[1])
	}
	if report.Dropped != 1 {
		t.Errorf("expected 1 dropped row, got %+v", report)
	}

	if _, _, err := ParseYAML(strings.NewReader("- question: only\n"), "bad.yaml"); !errors.Is(err, domain.ErrParse) {
		t.Errorf("expected ErrParse for missing answer key, got %v", err)
	}
	if _, _, err := ParseYAML(strings.NewReader("question: not a list\n"), "bad.yaml"); !errors.Is(err, domain.ErrParse) {
		t.Errorf("expected ErrParse for non-list document, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.csv"), []byte("question,answer\n問一,答一\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "b.yaml"), []byte("- question: 問二\n  answer: 答二\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := Open([]string{root}, fs.NewWalker(nil, nil), ',')
	if err != nil {
		t.Fatal(err)
	}

	rows, report, err := src.Rows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].Question != "問一" || rows[1].Question != "問二" {
		t.Errorf("expected rows in file order, got %+v", rows)
	}
	if report.Kept != 2 {
		t.Errorf("unexpected report: %+v", report)
	}

	empty := t.TempDir()
	if _, err := Open([]string{empty}, fs.NewWalker(nil, nil), ','); !errors.Is(err, domain.ErrParse) {
		t.Errorf("expected ErrParse for directory without sources, got %v", err)
	}
}

func TestFile_Unreadable(t *testing.T) {
	src := &File{Path: filepath.Join(t.TempDir(), "missing.csv")}
	if _, _, err := src.Rows(); !errors.Is(err, domain.ErrParse) {
		t.Errorf("expected ErrParse for missing file, got %v", err)
	}
}
