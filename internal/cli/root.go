package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"faq/config"
	"faq/internal/logging"
	"faq/internal/usecase"
)

var (
	cfgFile   string
	cfg       *config.Config
	rootDir   string
	kbPaths   []string
	tokenizer string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "faq",
	Short: "FAQ retrieval - answer questions from a question/answer knowledge base",
	Long: `faq answers free-text questions by ranking the rows of a question/answer
knowledge base with TF-IDF cosine similarity. Chinese text is segmented into
words before weighting, so queries do not need to match a stored question
exactly.

Example usage:
  faq ask -q "營業時間"               # Answer from the built-in knowledge base
  faq ask -q "退貨" --kb faq.csv      # Answer from your own CSV
  faq shell --kb ./kb                # Interactive session
  faq serve --addr :8501             # HTTP API`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logging.Logger().Warn("faq: .env file not loaded", "error", err)
		}

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.ApplyEnv(); err != nil {
			return fmt.Errorf("invalid environment: %w", err)
		}
		if len(kbPaths) > 0 {
			cfg.KnowledgeBase.Sources = kbPaths
		}
		if tokenizer != "" {
			cfg.Index.Tokenizer = tokenizer
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logging.SetLevel(cfg.Logging.Level)
		return nil
	},
}

// Execute runs the root command. Input errors exit with status 2.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if usecase.IsUserError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./faq.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().StringSliceVar(&kbPaths, "kb", nil, "knowledge base files or directories (default is the built-in FAQ)")
	rootCmd.PersistentFlags().StringVar(&tokenizer, "tokenizer", "", "word segmentation: gse or bigram")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
