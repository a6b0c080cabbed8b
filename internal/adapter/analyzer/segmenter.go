package analyzer

import (
	"fmt"
	"strings"

	"github.com/go-ego/gse"
)

// Segmenter tokenizes Chinese text with a dictionary and an HMM for
// unknown words (the jieba algorithm).
type Segmenter struct {
	seg gse.Segmenter
}

// NewSegmenter loads the embedded dictionary (all of them when dictionary
// is empty) and, if set, a user dictionary file on top.
func NewSegmenter(dictionary, userDict string) (*Segmenter, error) {
	s := &Segmenter{}

	var err error
	if dictionary != "" {
		err = s.seg.LoadDictEmbed(dictionary)
	} else {
		err = s.seg.LoadDictEmbed()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded dictionary: %w", err)
	}

	if userDict != "" {
		if err := s.seg.LoadDict(userDict); err != nil {
			return nil, fmt.Errorf("failed to load user dictionary %s: %w", userDict, err)
		}
	}

	return s, nil
}

func (s *Segmenter) Name() string {
	return NameGSE
}

// Tokenize cuts text into words, dropping whitespace and punctuation.
func (s *Segmenter) Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	words := s.seg.Cut(text, true)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if !keepToken(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
