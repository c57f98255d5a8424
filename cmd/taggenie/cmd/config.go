package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the state directory, cache and stop-word paths, server status and the effective settings.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}
	configPath := flagConfig
	if configPath == "" {
		configPath = paths.Config
	}
	stopWordsPath := cfg.StopWordsFile
	if stopWordsPath == "" {
		stopWordsPath = paths.StopWords
	}

	status := fmt.Sprintf("%s✗ not running%s", colorYellow, colorReset)
	if serverRunning(cfg.Listen) {
		status = fmt.Sprintf("%s✓ running%s", colorGreen, colorReset)
	}

	fmt.Printf("%s⚡ taggenie config%s\n", colorBold, colorReset)
	fmt.Printf("  Home:       %s\n", paths.Root)
	fmt.Printf("  Config:     %s%s\n", configPath, missing(configPath))
	fmt.Printf("  Cache:      %s%s\n", paths.DB, missing(paths.DB))
	fmt.Printf("  Stop words: %s%s\n", stopWordsPath, missing(stopWordsPath))
	fmt.Printf("  Server:     %s (%s)\n", status, cfg.Listen)
	fmt.Println()

	out, err := cfg.Redacted().YAML()
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func missing(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Sprintf(" %s(not present)%s", colorGray, colorReset)
	}
	return ""
}
