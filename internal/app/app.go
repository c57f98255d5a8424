// Package app wires the adapters to the scoring core: configuration, the
// cached lookup sources, the concurrent generator, the stop-word hot reload
// and the web server lifecycle.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/foxside/taggenie/internal/adapters/bbolt"
	fsw "github.com/foxside/taggenie/internal/adapters/fsnotify"
	"github.com/foxside/taggenie/internal/adapters/metrics"
	"github.com/foxside/taggenie/internal/adapters/suggest"
	"github.com/foxside/taggenie/internal/adapters/web"
	"github.com/foxside/taggenie/internal/adapters/youtube"
	"github.com/foxside/taggenie/internal/ports"
)

// Version is stamped by the build.
var Version = "dev"

// App is the wired application. One-shot commands use Generator and Close;
// `serve` uses Start and Stop.
type App struct {
	Config    Config
	Paths     *Paths
	Log       *slog.Logger
	Store     *bbolt.Store // nil when caching is disabled
	Metrics   *metrics.Recorder
	StopWords *StopWordStore
	Generator *Generator
	WebServer *web.Server
	Watcher   ports.Watcher // set by Start when the stop-word file can be watched

	stopWordsPath string

	mu      sync.Mutex
	started bool
	closed  bool
}

// New creates an App. Nothing listens and nothing is watched until Start.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	paths := NewPaths(cfg.Home)
	log := cfg.Logger
	if log == nil {
		log = NewLogger(os.Stderr, cfg.LogLevel)
	}

	a := &App{
		Config:        cfg,
		Paths:         paths,
		Log:           log,
		Metrics:       metrics.NewRecorder(),
		stopWordsPath: cfg.StopWordsFile,
	}
	if a.stopWordsPath == "" {
		a.stopWordsPath = paths.StopWords
	}

	sw, err := NewStopWordStore(log)
	if err != nil {
		return nil, err
	}
	if err := sw.LoadOverrides(a.stopWordsPath); err != nil {
		log.Warn("ignoring stop word overrides", "err", err)
	}
	a.StopWords = sw

	var (
		suggestSrc ports.SuggestionSource
		videoSrc   ports.VideoSource
	)
	if !cfg.Offline {
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		suggestSrc = suggest.NewClient(suggest.WithBaseURL(cfg.SuggestURL), suggest.WithHTTPClient(httpClient))
		if cfg.YouTubeAPIKey != "" {
			videoSrc = youtube.NewClient(cfg.YouTubeAPIKey, youtube.WithBaseURL(cfg.YouTubeURL), youtube.WithHTTPClient(httpClient))
		}

		if !cfg.NoCache {
			if err := paths.EnsureDirs(); err != nil {
				return nil, fmt.Errorf("create home: %w", err)
			}
			store, err := bbolt.NewStore(paths.DB, bbolt.WithTTL(cfg.CacheTTL))
			if err != nil {
				return nil, fmt.Errorf("open cache: %w", err)
			}
			a.Store = store
			suggestSrc = &cachedSuggestions{next: suggestSrc, cache: store, metrics: a.Metrics, log: log}
			if videoSrc != nil {
				videoSrc = &cachedVideos{next: videoSrc, cache: store, metrics: a.Metrics, log: log}
			}
		}
	}

	a.Generator = NewGenerator(suggestSrc, videoSrc, sw, GeneratorOptions{
		Count:      cfg.Count,
		Language:   cfg.Language,
		Region:     cfg.Region,
		MinedLimit: cfg.MinedLimit,
		Metrics:    a.Metrics,
		Log:        log,
	})
	a.WebServer = web.NewServer(a.Generator, web.Options{
		Metrics:       a.Metrics.Handler(),
		Log:           log,
		VideosEnabled: videoSrc != nil,
		Version:       Version,
	})
	return a, nil
}

// Start serves the web API on Config.Listen and watches the stop-word file.
// A watcher failure is logged, not fatal.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return errors.New("already started")
	}
	if a.closed {
		return errors.New("app is closed")
	}

	if err := a.WebServer.Start(a.Config.Listen); err != nil {
		return fmt.Errorf("web server: %w", err)
	}
	a.started = true

	if a.Store != nil {
		if n, err := a.Store.Prune(); err != nil {
			a.Log.Warn("cache prune failed", "err", err)
		} else if n > 0 {
			a.Log.Info("pruned expired cache entries", "entries", n)
		}
	}

	w, err := fsw.NewWatcher()
	if err != nil {
		a.Log.Warn("stop word watcher unavailable", "err", err)
		return nil
	}
	if err := w.Watch(a.stopWordsPath, a.StopWords.Reload); err != nil {
		_ = w.Stop()
		a.Log.Warn("not watching stop words", "path", a.stopWordsPath, "err", err)
		return nil
	}
	a.Watcher = w
	a.Log.Info("watching stop words", "path", a.stopWordsPath)
	return nil
}

// Stop shuts down the web server and watcher, then closes the cache.
func (a *App) Stop() error {
	a.mu.Lock()
	if a.started {
		a.WebServer.Stop()
		if a.Watcher != nil {
			_ = a.Watcher.Stop()
		}
		a.started = false
	}
	a.mu.Unlock()
	return a.Close()
}

// Close releases the cache database. Safe to call multiple times.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
