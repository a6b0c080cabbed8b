package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"faq/internal/domain"
)

var (
	askText      string
	askTopK      int
	askThreshold float64
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question from the knowledge base",
	Long: `Rank the knowledge base rows against a question and print the best answer
with the top-k candidates. No answer is printed when the best score is below
the threshold.

Examples:
  faq ask -q "你們幾點營業？"
  faq ask -q "運費" -k 3 -t 0.2 --json
  faq ask -q "發票" --kb ./kb/faq.csv`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askText, "query", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of candidates (default from config)")
	askCmd.Flags().Float64VarP(&askThreshold, "threshold", "t", 0, "minimum score for an answer (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	engine, _, err := newEngine(cfg)
	if err != nil {
		return err
	}

	topK := cfg.Retrieve.TopK
	if cmd.Flags().Changed("top-k") {
		topK = askTopK
	}
	threshold := cfg.Retrieve.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold = askThreshold
	}

	answer, err := engine.Ask(askText, topK, threshold)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if askJSON {
		output, _ := json.MarshalIndent(answer, "", "  ")
		fmt.Fprintln(out, string(output))
		return nil
	}
	printAnswer(out, answer)
	return nil
}

func printAnswer(w io.Writer, a *domain.Answer) {
	if a.Found() {
		fmt.Fprintf(w, "Answer: %s\n", *a.BestAnswer)
	} else {
		fmt.Fprintf(w, "No suitable answer (best score %.3f < threshold %.2f)\n", a.TopScore(), a.Threshold)
	}

	if len(a.Candidates) == 0 {
		return
	}
	fmt.Fprintf(w, "\nTop %d candidates for: %s\n\n", len(a.Candidates), a.Query)
	for i, c := range a.Candidates {
		fmt.Fprintf(w, "--- [%d] row %d (score: %.3f) ---\n", i+1, c.RowIndex+1, c.Score)
		fmt.Fprintf(w, "Q: %s\n", c.Question)
		fmt.Fprintf(w, "A: %s\n\n", truncate(c.Answer, 200))
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
