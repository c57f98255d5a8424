package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/foxside/taggenie/internal/adapters/youtube"
	"github.com/foxside/taggenie/internal/domain/scoring"
	"github.com/foxside/taggenie/internal/ports"
	"golang.org/x/sync/errgroup"
)

// GeneratorOptions configures a Generator. Zero values take defaults.
type GeneratorOptions struct {
	Count      int
	Language   string
	Region     string
	MinedLimit int // 0 = scoring.DefaultMinedLimit, negative = no cap
	Metrics    ports.MetricsRecorder
	Log        *slog.Logger
}

// Generator implements ports.TagService. It fans out the completion and
// video lookups concurrently, then hands the batches to the scoring core.
// A nil source contributes nothing; a nil stop-word store means the embedded sets.
type Generator struct {
	suggest ports.SuggestionSource
	videos  ports.VideoSource
	stop    *StopWordStore
	opts    GeneratorOptions
	now     func() time.Time
}

// NewGenerator wires a Generator.
func NewGenerator(suggest ports.SuggestionSource, videos ports.VideoSource, stop *StopWordStore, opts GeneratorOptions) *Generator {
	if opts.Count == 0 {
		opts.Count = scoring.DefaultLimit
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.Region == "" {
		opts.Region = "US"
	}
	if opts.MinedLimit == 0 {
		opts.MinedLimit = scoring.DefaultMinedLimit
	}
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	if stop == nil {
		stop = mustEmbeddedStopWords(opts.Log)
	}
	return &Generator{suggest: suggest, videos: videos, stop: stop, opts: opts, now: time.Now}
}

// Generate produces ranked tags for req.Title.
func (g *Generator) Generate(ctx context.Context, req ports.TagRequest) (*ports.TagResult, error) {
	start := g.now()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ports.ErrEmptyTitle
	}
	count := req.Count
	if count == 0 {
		count = g.opts.Count
	}
	base := ports.Query{
		Text:     title,
		Language: firstNonEmpty(req.Language, g.opts.Language),
		Region:   firstNonEmpty(req.Region, g.opts.Region),
	}

	opts := scoring.DefaultOptions(g.stop.Current())
	if g.opts.MinedLimit > 0 {
		opts.MinedLimit = g.opts.MinedLimit
	} else {
		opts.MinedLimit = 0
	}
	expansions := scoring.ExpansionQueries(title, opts.TitleStopWords)

	var (
		main    []string
		batches = make([][]string, len(expansions))
		videos  []ports.VideoRecord
		eg      errgroup.Group
	)
	eg.Go(func() error {
		main = g.fetchSuggestions(ctx, "suggest", base)
		return nil
	})
	for i, bq := range expansions {
		eg.Go(func() error {
			q := base
			q.Text = bq
			batches[i] = g.fetchSuggestions(ctx, "expansion", q)
			return nil
		})
	}
	eg.Go(func() error {
		videos = g.fetchVideos(ctx, base)
		return nil
	})
	_ = eg.Wait()

	var expanded []string
	for _, b := range batches {
		expanded = append(expanded, b...)
	}

	cands := scoring.GenerateCandidates(scoring.Input{
		Title:                title,
		Count:                count,
		Suggestions:          main,
		ExpansionSuggestions: expanded,
		Videos:               videos,
	}, opts)

	res := &ports.TagResult{
		Tags: make([]string, len(cands)),
		Sources: ports.SourceStats{
			Suggestions:          len(main),
			ExpansionQueries:     len(expansions),
			ExpansionSuggestions: len(expanded),
			Videos:               len(videos),
		},
	}
	for i, c := range cands {
		res.Tags[i] = c.Term
	}
	res.CSV = strings.Join(res.Tags, ", ")
	if req.Scores {
		res.Candidates = make([]ports.ScoredTag, len(cands))
		for i, c := range cands {
			res.Candidates[i] = ports.ScoredTag{Term: c.Term, Score: c.Score}
		}
	}

	elapsed := g.now().Sub(start)
	res.Elapsed = elapsed.Round(time.Millisecond).String()
	g.opts.Metrics.ObserveGenerate(elapsed, len(res.Tags))
	g.opts.Log.Debug("generated tags", "title", title, "tags", len(res.Tags),
		"suggestions", len(main), "expansion", len(expanded), "videos", len(videos), "elapsed", elapsed)
	return res, nil
}

func (g *Generator) fetchSuggestions(ctx context.Context, label string, q ports.Query) []string {
	if g.suggest == nil {
		return nil
	}
	start := time.Now()
	out, err := g.suggest.Suggest(ctx, q)
	g.opts.Metrics.ObserveFetch(label, time.Since(start), err)
	if err != nil {
		g.opts.Log.Warn("suggestion lookup failed", "source", label, "query", q.Text, "err", err)
		return nil
	}
	return out
}

func (g *Generator) fetchVideos(ctx context.Context, q ports.Query) []ports.VideoRecord {
	if g.videos == nil {
		return nil
	}
	start := time.Now()
	out, err := g.videos.Videos(ctx, q)
	if errors.Is(err, youtube.ErrNoAPIKey) {
		g.opts.Log.Debug("video mining skipped: no API key")
		return nil
	}
	g.opts.Metrics.ObserveFetch(SourceVideos, time.Since(start), err)
	if err != nil {
		g.opts.Log.Warn("video lookup failed", "source", SourceVideos, "query", q.Text, "err", err)
		return nil
	}
	return out
}

func firstNonEmpty(v ...string) string {
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// mustEmbeddedStopWords loads the compiled-in sets, which only fails on a broken build.
func mustEmbeddedStopWords(log *slog.Logger) *StopWordStore {
	s, err := NewStopWordStore(log)
	if err != nil {
		panic(err)
	}
	return s
}
