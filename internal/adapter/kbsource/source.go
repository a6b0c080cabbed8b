package kbsource

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"faq/internal/adapter/fs"
	"faq/internal/domain"
	"faq/internal/port"
)

type Format int

const (
	FormatCSV Format = iota
	FormatYAML
)

// DetectFormat picks the format and delimiter from the file extension.
// fallback is used for anything that is neither .tsv nor YAML.
func DetectFormat(path string, fallback rune) (Format, rune) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, 0
	case ".tsv":
		return FormatCSV, '\t'
	default:
		return FormatCSV, fallback
	}
}

// Reader is a source backed by an in-memory or streamed document.
type Reader struct {
	Name      string
	R         io.Reader
	Format    Format
	Delimiter rune
}

var _ port.KnowledgeBaseSource = (*Reader)(nil)

// FromBytes wraps uploaded content, detecting the format from name.
func FromBytes(name string, data []byte, delimiter rune) *Reader {
	format, delim := DetectFormat(name, delimiter)
	return &Reader{Name: name, R: bytes.NewReader(data), Format: format, Delimiter: delim}
}

func (s *Reader) Rows() ([]domain.Row, domain.LoadReport, error) {
	if s.Format == FormatYAML {
		return ParseYAML(s.R, s.Name)
	}
	return ParseCSV(s.R, s.Name, s.Delimiter)
}

// File is a source read from disk.
type File struct {
	Path      string
	Delimiter rune
}

func (s *File) Rows() ([]domain.Row, domain.LoadReport, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, domain.LoadReport{Source: s.Path}, domain.NewParseError(s.Path, err, "unreadable source")
	}
	defer f.Close()

	format, delim := DetectFormat(s.Path, s.Delimiter)
	r := &Reader{Name: s.Path, R: f, Format: format, Delimiter: delim}
	return r.Rows()
}

// Multi concatenates several sources in order. Any failing source fails
// the whole load.
type Multi struct {
	Sources []port.KnowledgeBaseSource
}

func (m *Multi) Rows() ([]domain.Row, domain.LoadReport, error) {
	var all []domain.Row
	names := make([]string, 0, len(m.Sources))
	total := domain.LoadReport{}

	for _, src := range m.Sources {
		rows, report, err := src.Rows()
		if err != nil {
			return nil, total, err
		}
		all = append(all, rows...)
		names = append(names, report.Source)
		total.Read += report.Read
		total.Kept += report.Kept
		total.Dropped += report.Dropped
	}

	total.Source = strings.Join(names, ",")
	return all, total, nil
}

// Open resolves paths (files or directories walked by w) into one source.
func Open(paths []string, w *fs.Walker, delimiter rune) (port.KnowledgeBaseSource, error) {
	files, err := w.Resolve(paths)
	if err != nil {
		return nil, domain.NewParseError(strings.Join(paths, ","), err, "unreadable source")
	}
	if len(files) == 0 {
		return nil, domain.NewParseError(strings.Join(paths, ","), nil, "no knowledge base files found")
	}
	if len(files) == 1 {
		return &File{Path: files[0], Delimiter: delimiter}, nil
	}

	multi := &Multi{Sources: make([]port.KnowledgeBaseSource, len(files))}
	for i, f := range files {
		multi.Sources[i] = &File{Path: f, Delimiter: delimiter}
	}
	return multi, nil
}
