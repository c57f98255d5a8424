package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/foxside/taggenie/internal/domain/text"
	"github.com/foxside/taggenie/stopwords"
)

// StopWordStore holds the live stop-word registry: the embedded sets with an
// optional override file layered on top. Reads are lock-free; Reload swaps
// the whole registry at once so a generation never sees a half-applied file.
type StopWordStore struct {
	base    text.StopWords
	current atomic.Pointer[text.StopWords]
	log     *slog.Logger
}

// NewStopWordStore loads the embedded sets.
func NewStopWordStore(log *slog.Logger) (*StopWordStore, error) {
	base, err := text.LoadStopWords(stopwords.FS, "v1")
	if err != nil {
		return nil, fmt.Errorf("embedded stop words: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &StopWordStore{base: base, log: log}
	s.current.Store(&base)
	return s, nil
}

// Current returns the registry in effect.
func (s *StopWordStore) Current() text.StopWords {
	return *s.current.Load()
}

// Base returns the embedded registry without overrides.
func (s *StopWordStore) Base() text.StopWords {
	return s.base
}

// LoadOverrides applies the sets in path over the embedded ones. A missing
// file resets to the embedded sets. On a parse error the current registry
// is kept and the error returned.
func (s *StopWordStore) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		base := s.base
		s.current.Store(&base)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read stop words: %w", err)
	}
	sets, err := text.ParseStopWords(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	next := s.base.With(sets...)
	s.current.Store(&next)
	return nil
}

// Reload is the watcher callback: it reapplies path and logs the outcome.
func (s *StopWordStore) Reload(path string) {
	if err := s.LoadOverrides(path); err != nil {
		s.log.Warn("stop words reload failed; keeping previous sets", "path", path, "err", err)
		return
	}
	cur := s.Current()
	s.log.Info("stop words reloaded", "path", path,
		"title", cur.Set(text.SetTitle).Len(), "mining", cur.Set(text.SetMining).Len())
}
