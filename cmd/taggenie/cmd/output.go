package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/foxside/taggenie/internal/domain/text"
	"github.com/foxside/taggenie/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// palette holds the escape codes in use; the zero value prints plain text.
type palette struct {
	reset, bold, cyan, green, yellow, gray string
}

func newPalette(color bool) palette {
	if !color {
		return palette{}
	}
	return palette{colorReset, colorBold, colorCyan, colorGreen, colorYellow, colorGray}
}

// formatTags renders a generation result for the terminal.
//
//	⚡ 18 tags │ 3 suggestions │ 4 expansions (9) │ 25 videos │ 412ms
//	   1. iphone 16 pro review            6.00
//	   2. iphone 16
//	  csv: iphone 16 pro review, iphone 16, ...
//
// Scores are shown only when the result carries candidates.
func formatTags(res *ports.TagResult, p palette) string {
	var sb strings.Builder
	s := res.Sources
	fmt.Fprintf(&sb, "%s⚡ %d tags%s │ %d suggestions │ %d expansions (%d) │ %d videos │ %s\n",
		p.bold, len(res.Tags), p.reset, s.Suggestions, s.ExpansionQueries, s.ExpansionSuggestions, s.Videos, res.Elapsed)

	if len(res.Tags) == 0 {
		fmt.Fprintf(&sb, "  %sno tags%s\n", p.yellow, p.reset)
		return sb.String()
	}

	width := 0
	for _, t := range res.Tags {
		if n := len([]rune(t)); n > width {
			width = n
		}
	}
	for i, t := range res.Tags {
		fmt.Fprintf(&sb, "  %s%2d.%s %s%s%s", p.gray, i+1, p.reset, p.cyan, t, p.reset)
		if i < len(res.Candidates) {
			pad := width - len([]rune(t))
			fmt.Fprintf(&sb, "%s  %s%6.2f%s", strings.Repeat(" ", pad), p.green, res.Candidates[i].Score, p.reset)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %scsv:%s %s\n", p.gray, p.reset, res.CSV)
	return sb.String()
}

// formatCSV is the --csv output: the comma-separated line only.
func formatCSV(res *ports.TagResult) string {
	return res.CSV + "\n"
}

// formatStopWordSets lists each set with its version and size, marking sets
// that differ from the embedded defaults.
func formatStopWordSets(cur, base text.StopWords) string {
	var sb strings.Builder
	for _, name := range cur.Names() {
		set := cur.Set(name)
		fmt.Fprintf(&sb, "%-8s v%d  %3d words", name, set.Version(), set.Len())
		if b, ok := base.Get(name); !ok || !slices.Equal(b.Words(), set.Words()) {
			sb.WriteString("  (override)")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
