package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/truthscope/internal/scrape"
)

var scraperAddr string

// scraperCmd represents the scraper command
var scraperCmd = &cobra.Command{
	Use:   "scraper",
	Short: "Run the built-in article extraction service",
	Long: `Scraper runs the extraction service the pipeline depends on:

  POST /scrape  {"url":"<article url>"}  ->  {"head":"...","body":"..."}

The service obeys robots.txt and strips scripts, navigation and other
non-article markup before extracting text.

Example:
  truthscope scraper
  truthscope scraper --addr 127.0.0.1:5000`,
	RunE: runScraper,
}

func init() {
	rootCmd.AddCommand(scraperCmd)

	scraperCmd.Flags().StringVar(&scraperAddr, "addr", "", "listen address (default: scraper.addr config)")
}

func runScraper(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig()
	if scraperAddr != "" {
		cfg.Scraper.Addr = scraperAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := scrape.NewServer(scrape.ServerConfig{
		FetchTimeout: cfg.HTTP.Timeout,
		UserAgent:    cfg.HTTP.UserAgent,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:              cfg.Scraper.Addr,
		Handler:           service.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("extraction service listening", zap.String("addr", cfg.Scraper.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("scraper error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
