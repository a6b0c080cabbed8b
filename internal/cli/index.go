package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"faq/internal/usecase"
)

var indexQuiet bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the TF-IDF index and report vocabulary statistics",
	Long: `Load the configured knowledge base, fit the vectorizer over every row and
report the result. Useful to check a knowledge base and tokenizer before
serving it.

Examples:
  faq index
  faq index --kb ./kb --tokenizer bigram`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVar(&indexQuiet, "quiet", false, "hide the progress bar")
}

func runIndex(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var opts []usecase.Option
	if !indexQuiet {
		opts = append(opts, usecase.WithIndexProgress(newProgress(out)))
	}

	engine, report, err := newEngine(GetConfig(), opts...)
	if err != nil {
		return err
	}
	if report != nil {
		fmt.Fprintf(out, "Loaded %s: %d rows kept, %d dropped\n", report.Source, report.Kept, report.Dropped)
	}

	result, err := engine.RebuildIndexResult()
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	stats := engine.Stats()
	fmt.Fprintf(out, "\nIndexing complete:\n")
	fmt.Fprintf(out, "  Rows indexed:    %d\n", result.Rows)
	fmt.Fprintf(out, "  Vocabulary size: %d\n", result.VocabularySize)
	fmt.Fprintf(out, "  Tokenizer:       %s\n", stats.Tokenizer)
	fmt.Fprintf(out, "  Duration:        %s\n", formatDuration(result.Duration))
	fmt.Fprintf(out, "  Session:         %s\n", stats.SessionID)
	return nil
}

// newProgress returns a progress callback that draws a bar once the
// total is known.
func newProgress(out io.Writer) func(done, total int) {
	var bar *progressbar.ProgressBar
	var barMu sync.Mutex

	return func(done, total int) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(out),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Indexing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(out)
				}),
			)
		}
		bar.Set(done)
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
