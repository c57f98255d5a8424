package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/foxside/taggenie/internal/ports"
	"github.com/spf13/cobra"
)

var (
	genCount   int
	genHL      string
	genGL      string
	genCSV     bool
	genScores  bool
	genOffline bool
	genJSON    bool
)

var generateCmd = &cobra.Command{
	Use:     "generate <title>",
	Aliases: []string{"gen", "tags"},
	Short:   "Generate tags for a video title",
	Long: "Looks up autocomplete suggestions for the title and its leading bigrams, mines " +
		"popular videos when an API key is configured, and prints the ranked tags. " +
		"With no arguments the title is read from stdin.",
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntVarP(&genCount, "count", "n", 0, "Number of tags (5–40, default from config)")
	f.StringVar(&genHL, "hl", "", "Interface language (default from config)")
	f.StringVar(&genGL, "gl", "", "Region code (default from config)")
	f.BoolVar(&genCSV, "csv", false, "Print only the comma-separated tag line")
	f.BoolVar(&genScores, "scores", false, "Show candidate scores")
	f.BoolVar(&genOffline, "offline", false, "Use the title alone; no network lookups")
	f.BoolVar(&genJSON, "json", false, "Print the result as JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	if title == "" && isStdinPipe() {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read title: %w", err)
		}
		title = line
	}
	if strings.TrimSpace(title) == "" {
		return errors.New("a title is required: taggenie generate \"My video title\"")
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Offline = genOffline

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	res, err := a.Generator.Generate(ctx, ports.TagRequest{
		Title:    title,
		Count:    genCount,
		Language: genHL,
		Region:   genGL,
		Scores:   genScores,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case genJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case genCSV:
		fmt.Fprint(out, formatCSV(res))
	default:
		fmt.Fprint(out, formatTags(res, newPalette(resolveColor(flagColor, flagNoColor))))
	}
	return nil
}
