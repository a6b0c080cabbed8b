package port

// Tokenizer splits text into word-level tokens. Implementations must be
// deterministic for a fixed input and dictionary.
type Tokenizer interface {
	Tokenize(text string) []string

	// Name identifies the segmentation method, e.g. "gse" or "bigram".
	Name() string
}
