package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/foxside/taggenie/internal/app"
	"github.com/spf13/cobra"
)

var stopwordsCmd = &cobra.Command{
	Use:   "stopwords [set]",
	Short: "List stop-word sets, or the words of one set",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStopwords,
}

func runStopwords(cmd *cobra.Command, args []string) error {
	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.StopWordsFile
	if path == "" {
		path = paths.StopWords
	}

	store, err := app.NewStopWordStore(slog.New(slog.DiscardHandler))
	if err != nil {
		return err
	}
	if err := store.LoadOverrides(path); err != nil {
		return err
	}
	sw := store.Current()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprint(out, formatStopWordSets(sw, store.Base()))
		return nil
	}

	set, ok := sw.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown stop-word set %q (have: %s)", args[0], strings.Join(sw.Names(), ", "))
	}
	for _, w := range set.Words() {
		fmt.Fprintln(out, w)
	}
	return nil
}
