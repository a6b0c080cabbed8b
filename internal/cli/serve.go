package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"faq/internal/api"
	"faq/internal/logging"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the knowledge base over HTTP",
	Long: `Start an HTTP server for one session. The knowledge base can be replaced
by uploading a CSV, TSV or YAML document.

Endpoints:
  GET  /healthz
  GET  /api/status
  GET  /api/kb
  POST /api/kb      (raw body or multipart "file"; ?index=true to rebuild)
  POST /api/index
  POST /api/ask     {"question": "...", "top_k": 2, "threshold": 0.3}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	engine, report, err := newEngine(cfg)
	if err != nil {
		return err
	}
	if report != nil {
		logging.Logger().Info("faq: knowledge base loaded", "source", report.Source, "kept", report.Kept, "dropped", report.Dropped)
	}
	if err := engine.RebuildIndex(); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	srv := api.NewServer(engine, api.Config{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		TopK:           cfg.Retrieve.TopK,
		Threshold:      cfg.Retrieve.Threshold,
		Delimiter:      cfg.DelimiterRune(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
