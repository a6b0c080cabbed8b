package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"faq/config"
	"faq/internal/adapter/analyzer"
	"faq/internal/adapter/fs"
	"faq/internal/adapter/kbsource"
	"faq/internal/logging"
	"faq/internal/usecase"
)

func main() {
	configDir := flag.String("dir", ".", "Directory holding faq.yaml")
	kbPath := flag.String("kb", "", "Knowledge base file or directory (default: built-in rows)")
	casesPath := flag.String("cases", "", "Labelled CSV or YAML: question = query, answer = expected answer")
	tok := flag.String("tokenizer", "", "gse or bigram (default from config)")
	topK := flag.Int("k", 0, "Number of candidates (default from config)")
	threshold := flag.Float64("t", -1, "Answer threshold (default from config)")
	verbose := flag.Bool("v", false, "Print every case")
	flag.Parse()

	if *casesPath == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -cases labelled.csv [-kb faq.csv] [-k 2] [-t 0.3]")
		fmt.Println("\nReports:")
		fmt.Println("  1. hit@1     expected answer ranked first")
		fmt.Println("  2. hit@k     expected answer among the top-k candidates")
		fmt.Println("  3. MRR       mean reciprocal rank of the expected answer")
		fmt.Println("  4. coverage  queries answered above the threshold")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *tok != "" {
		cfg.Index.Tokenizer = *tok
	}
	if *topK > 0 {
		cfg.Retrieve.TopK = *topK
	}
	if *threshold >= 0 {
		cfg.Retrieve.Threshold = *threshold
	}

	tokenizer, err := analyzer.New(cfg.Index.Tokenizer, cfg.Index.Dictionary, cfg.Index.UserDict)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tokenizer error: %v\n", err)
		os.Exit(1)
	}
	engine := usecase.NewEngine(tokenizer,
		usecase.WithLogger(logging.Discard()),
		usecase.WithSeparator(cfg.Index.Separator),
	)

	walker := fs.NewWalker(cfg.KnowledgeBase.Includes, cfg.KnowledgeBase.Excludes)
	if *kbPath != "" {
		src, err := kbsource.Open([]string{*kbPath}, walker, cfg.DelimiterRune())
		if err == nil {
			_, err = engine.LoadFrom(src)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Knowledge base error: %v\n", err)
			os.Exit(1)
		}
	}

	casesSrc, err := kbsource.Open([]string{*casesPath}, walker, cfg.DelimiterRune())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cases error: %v\n", err)
		os.Exit(1)
	}
	rows, _, err := casesSrc.Rows()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cases error: %v\n", err)
		os.Exit(1)
	}
	cases := make([]usecase.EvalCase, len(rows))
	for i, r := range rows {
		cases[i] = usecase.EvalCase{Query: r.Question, Expected: r.Answer}
	}

	report, err := usecase.Evaluate(engine, cases, cfg.Retrieve.TopK, cfg.Retrieve.Threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Evaluation error: %v\n", err)
		os.Exit(1)
	}

	stats := engine.Stats()
	fmt.Println("FAQ RETRIEVAL BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Knowledge base rows: %d\n", stats.Rows)
	fmt.Printf("Vocabulary size:     %d\n", stats.VocabularySize)
	fmt.Printf("Tokenizer:           %s\n", stats.Tokenizer)
	fmt.Printf("Cases:               %d (top-k %d, threshold %.2f)\n", report.Cases, report.TopK, report.Threshold)
	fmt.Println()

	if *verbose {
		fmt.Println(strings.Repeat("-", 70))
		for i, o := range report.Outcomes {
			mark := "MISS"
			switch {
			case o.Err != "":
				mark = "ERR "
			case o.Rank == 1:
				mark = "HIT "
			case o.Rank > 1:
				mark = fmt.Sprintf("@%-3d", o.Rank)
			}
			fmt.Printf("%3d. [%s %.3f] %s\n", i+1, mark, o.TopScore, o.Case.Query)
			if o.Err != "" {
				fmt.Printf("     %s\n", o.Err)
			}
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("QUALITY METRICS:\n")
	fmt.Printf("  hit@1:    %.3f\n", report.HitAt1)
	fmt.Printf("  hit@%d:    %.3f\n", report.TopK, report.HitAtK)
	fmt.Printf("  MRR:      %.3f\n", report.MRR)
	fmt.Printf("  coverage: %.3f\n", report.Coverage)

	if report.HitAt1 > 0.8 {
		fmt.Println("  Status: GOOD - most questions answered with the right row")
	} else if report.HitAt1 > 0.5 {
		fmt.Println("  Status: OK - consider a user dictionary or more paraphrases")
	} else {
		fmt.Println("  Status: POOR - check the tokenizer and knowledge base wording")
	}
}
