package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/foxside/taggenie/internal/app"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tag API and web form",
	Long: "Starts the HTTP server (GET/POST /api/tags, /api/health, /metrics, /) and " +
		"hot-reloads the stop-word override file. Runs until interrupted.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config, or $TAGGENIE_LISTEN)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}

	if serverRunning(cfg.Listen) {
		fmt.Printf("⚡ already serving at http://%s\n", cfg.Listen)
		return nil
	}

	a, err := newApp(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := a.Start(); err != nil {
		a.Close()
		return err
	}

	fmt.Printf("⚡ taggenie serving at %s\n", a.WebServer.URL())
	if cfg.YouTubeAPIKey == "" {
		fmt.Printf("  %s[warning]%s no YouTube API key; video mining disabled (set %s)\n", colorYellow, colorReset, app.EnvAPIKey)
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\n⚡ shutting down...")
	return a.Stop()
}
