package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var kbJSON bool

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Show the loaded knowledge base",
	Long: `Load the configured knowledge base and list its rows along with what was
read and dropped.

Examples:
  faq kb
  faq kb --kb ./kb --json`,
	RunE: runKB,
}

func init() {
	rootCmd.AddCommand(kbCmd)
	kbCmd.Flags().BoolVar(&kbJSON, "json", false, "output as JSON")
}

func runKB(cmd *cobra.Command, args []string) error {
	engine, report, err := newEngine(GetConfig())
	if err != nil {
		return err
	}

	rows := engine.KnowledgeBase()
	out := cmd.OutOrStdout()

	if kbJSON {
		output, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Fprintln(out, string(output))
		return nil
	}

	if report == nil {
		fmt.Fprintf(out, "Built-in knowledge base (%d rows)\n\n", len(rows))
	} else {
		fmt.Fprintf(out, "Loaded %s\n", report.Source)
		fmt.Fprintf(out, "  Rows read:    %d\n", report.Read)
		fmt.Fprintf(out, "  Rows kept:    %d\n", report.Kept)
		fmt.Fprintf(out, "  Rows dropped: %d (missing question or answer)\n\n", report.Dropped)
	}

	for i, r := range rows {
		fmt.Fprintf(out, "%3d. Q: %s\n     A: %s\n", i+1, r.Question, truncate(r.Answer, 200))
	}
	return nil
}
