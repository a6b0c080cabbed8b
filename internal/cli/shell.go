package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"faq/config"
	"faq/internal/domain"
	"faq/internal/port"
	"faq/internal/usecase"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive question answering session",
	Long: `Start an interactive session. Type a question to get an answer, or a
command starting with ':'.

Commands:
  :load <path>...  replace the knowledge base with files or directories
  :index           rebuild the index now
  :kb              list the knowledge base rows
  :status          show the session status
  :k <n>           set top-k
  :t <x>           set the threshold
  :quit            leave the session`,
	Args: cobra.NoArgs,
	RunE: runShellCmd,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShellCmd(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	out := cmd.OutOrStdout()

	engine, report, err := newEngine(cfg)
	if err != nil {
		return err
	}
	if report != nil {
		fmt.Fprintf(out, "Loaded %s: %d rows kept, %d dropped\n", report.Source, report.Kept, report.Dropped)
	}

	sh := &shell{
		engine:    engine,
		cfg:       cfg,
		out:       out,
		topK:      cfg.Retrieve.TopK,
		threshold: cfg.Retrieve.Threshold,
	}
	return sh.run(cmd.InOrStdin())
}

type shell struct {
	engine    *usecase.Engine
	cfg       *config.Config
	out       io.Writer
	topK      int
	threshold float64
}

func (sh *shell) run(in io.Reader) error {
	sh.engine.Subscribe(port.StatusObserverFunc(func(ev domain.StatusEvent) {
		if ev.Status == domain.StatusIndexing || ev.Status == domain.StatusError {
			fmt.Fprintf(sh.out, "[%s] %s\n", ev.Status, ev.Label)
		}
	}))

	fmt.Fprintf(sh.out, "FAQ session %s (top-k %d, threshold %.2f). Type :quit to leave.\n", sh.engine.ID(), sh.topK, sh.threshold)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			sh.ask(line)
			continue
		}
		if quit := sh.command(line); quit {
			return nil
		}
	}
}

func (sh *shell) ask(question string) {
	answer, err := sh.engine.Ask(question, sh.topK, sh.threshold)
	if err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
		return
	}
	printAnswer(sh.out, answer)
}

// command runs a ':' command and reports whether the session should end.
func (sh *shell) command(line string) bool {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case ":quit", ":q", ":exit":
		return true
	case ":load":
		if len(args) == 0 {
			fmt.Fprintln(sh.out, "usage: :load <path>...")
			return false
		}
		report, err := loadSources(sh.engine, sh.cfg, args)
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(sh.out, "Loaded %s: %d rows kept, %d dropped\n", report.Source, report.Kept, report.Dropped)
	case ":index":
		result, err := sh.engine.RebuildIndexResult()
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(sh.out, "Indexed %d rows, vocabulary %d\n", result.Rows, result.VocabularySize)
	case ":kb":
		for i, r := range sh.engine.KnowledgeBase() {
			fmt.Fprintf(sh.out, "%3d. Q: %s\n     A: %s\n", i+1, r.Question, truncate(r.Answer, 200))
		}
	case ":status":
		st := sh.engine.Status()
		stats := sh.engine.Stats()
		fmt.Fprintf(sh.out, "status:     %s (%s)\n", st.Status, st.Label)
		if st.Err != "" {
			fmt.Fprintf(sh.out, "error:      %s\n", st.Err)
		}
		fmt.Fprintf(sh.out, "rows:       %d\n", stats.Rows)
		fmt.Fprintf(sh.out, "indexed:    %v (kb v%d, index v%d)\n", stats.Indexed, stats.KBVersion, stats.IndexVersion)
		fmt.Fprintf(sh.out, "vocabulary: %d\n", stats.VocabularySize)
		fmt.Fprintf(sh.out, "top-k:      %d\n", sh.topK)
		fmt.Fprintf(sh.out, "threshold:  %.2f\n", sh.threshold)
	case ":k":
		if len(args) != 1 {
			fmt.Fprintln(sh.out, "usage: :k <n>")
			return false
		}
		n, err := strconv.Atoi(args[0])
		if err == nil {
			err = usecase.ValidateParams(n, sh.threshold)
		}
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
			return false
		}
		sh.topK = n
	case ":t":
		if len(args) != 1 {
			fmt.Fprintln(sh.out, "usage: :t <x>")
			return false
		}
		x, err := strconv.ParseFloat(args[0], 64)
		if err == nil {
			err = usecase.ValidateParams(sh.topK, x)
		}
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
			return false
		}
		sh.threshold = x
	default:
		fmt.Fprintf(sh.out, "unknown command %s\n", name)
	}
	return false
}
