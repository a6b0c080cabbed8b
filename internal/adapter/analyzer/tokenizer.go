package analyzer

import (
	"strings"
	"unicode"
)

// BigramTokenizer splits text without a dictionary. CJK runs become
// overlapping rune bigrams, everything alphanumeric becomes one word.
type BigramTokenizer struct{}

// NewBigramTokenizer creates a new BigramTokenizer.
func NewBigramTokenizer() *BigramTokenizer {
	return &BigramTokenizer{}
}

func (t *BigramTokenizer) Name() string {
	return NameBigram
}

// Tokenize splits text into tokens.
func (t *BigramTokenizer) Tokenize(text string) []string {
	runs := splitRuns(text)
	tokens := make([]string, 0, len(runs))

	for _, r := range runs {
		if !r.cjk {
			tokens = append(tokens, strings.ToLower(string(r.runes)))
			continue
		}
		if len(r.runes) == 1 {
			tokens = append(tokens, string(r.runes))
			continue
		}
		for i := 0; i+1 < len(r.runes); i++ {
			tokens = append(tokens, string(r.runes[i:i+2]))
		}
	}

	return tokens
}

type run struct {
	runes []rune
	cjk   bool
}

// splitRuns splits text into maximal runs of CJK runes and of other
// letters/digits. Everything else separates runs.
func splitRuns(text string) []run {
	var runs []run
	var current []rune
	currentCJK := false

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, run{runes: current, cjk: currentCJK})
			current = nil
		}
	}

	for _, r := range text {
		switch {
		case isCJK(r):
			if !currentCJK {
				flush()
			}
			currentCJK = true
			current = append(current, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if currentCJK {
				flush()
			}
			currentCJK = false
			current = append(current, r)
		default:
			flush()
		}
	}
	flush()

	return runs
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// keepToken reports whether a segment carries any letter or digit.
func keepToken(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
