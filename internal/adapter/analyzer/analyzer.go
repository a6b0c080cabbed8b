package analyzer

import (
	"fmt"
	"strings"

	"faq/internal/port"
)

const (
	NameGSE    = "gse"
	NameBigram = "bigram"
)

// New returns the tokenizer registered under name.
func New(name, dictionary, userDict string) (port.Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameGSE:
		return NewSegmenter(dictionary, userDict)
	case NameBigram:
		return NewBigramTokenizer(), nil
	default:
		return nil, fmt.Errorf("unsupported tokenizer: %s", name)
	}
}
