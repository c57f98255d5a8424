package cmd

import (
	"github.com/foxside/taggenie/internal/app"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagHome    string
	flagVerbose bool
	flagNoCache bool
	flagColor   string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:           "taggenie",
	Short:         "taggenie — tag suggestions for video titles",
	Long:          "Ranks candidate tags for a video title from autocomplete suggestions and popular video metadata.",
	Version:       app.Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default $TAGGENIE_HOME/config.yaml)")
	pf.StringVar(&flagHome, "home", "", "State directory (default $TAGGENIE_HOME or ~/.taggenie)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	pf.BoolVar(&flagNoCache, "no-cache", false, "Bypass the response cache")
	pf.StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable color output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(stopwordsCmd)
	rootCmd.AddCommand(wipeCmd)
}

// loadConfig resolves the home directory and config file from the
// persistent flags and returns the merged configuration.
func loadConfig() (app.Config, *app.Paths, error) {
	paths := app.NewPaths(flagHome)
	path := flagConfig
	if path == "" {
		path = paths.Config
	}
	cfg, err := app.LoadConfig(path)
	if err != nil {
		return cfg, paths, err
	}
	cfg.Home = paths.Root
	if flagVerbose {
		cfg.LogLevel = "debug"
	}
	if flagNoCache {
		cfg.NoCache = true
	}
	return cfg, paths, nil
}

// newApp builds the App, translating a cache lock timeout into guidance.
func newApp(cfg app.Config) (*app.App, error) {
	a, err := app.New(cfg)
	if err != nil {
		if isDBLockError(err) {
			return nil, lockError{diagnosis: diagnoseDBLock(cfg)}
		}
		return nil, err
	}
	return a, nil
}
