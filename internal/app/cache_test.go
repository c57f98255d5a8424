package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/foxside/taggenie/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is an in-memory ports.Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(source, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	d, ok := c.data[source+"/"+key]
	return d, ok, nil
}

func (c *memCache) Put(source, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[source+"/"+key] = data
	return nil
}

func (c *memCache) Wipe() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.data)
	c.data = make(map[string][]byte)
	return n, nil
}

// spyMetrics records cache and fetch observations.
type spyMetrics struct {
	mu        sync.Mutex
	hits      map[string]int
	misses    map[string]int
	fetches   map[string]int
	failures  map[string]int
	generated int
}

func newSpyMetrics() *spyMetrics {
	return &spyMetrics{hits: map[string]int{}, misses: map[string]int{}, fetches: map[string]int{}, failures: map[string]int{}}
}

func (m *spyMetrics) ObserveFetch(source string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches[source]++
	if err != nil {
		m.failures[source]++
	}
}

func (m *spyMetrics) ObserveCache(source string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits[source]++
	} else {
		m.misses[source]++
	}
}

func (m *spyMetrics) ObserveGenerate(time.Duration, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generated++
}

// fakeSuggest answers from a fixed table and counts calls.
type fakeSuggest struct {
	mu      sync.Mutex
	answers map[string][]string
	err     map[string]error
	calls   []ports.Query
}

func (f *fakeSuggest) Suggest(_ context.Context, q ports.Query) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	if err := f.err[q.Text]; err != nil {
		return nil, err
	}
	return f.answers[q.Text], nil
}

func (f *fakeSuggest) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeVideos struct {
	records []ports.VideoRecord
	err     error
	calls   int
}

func (f *fakeVideos) Videos(context.Context, ports.Query) ([]ports.VideoRecord, error) {
	f.calls++
	return f.records, f.err
}

var discard = slog.New(slog.DiscardHandler)

func TestCachedSuggestions_ReadThrough(t *testing.T) {
	src := &fakeSuggest{answers: map[string][]string{"go tips": {"go tips 2026"}}}
	cache := newMemCache()
	spy := newSpyMetrics()
	c := &cachedSuggestions{next: src, cache: cache, metrics: spy, log: discard}

	q := ports.Query{Text: "go tips", Language: "en", Region: "us"}
	got, err := c.Suggest(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"go tips 2026"}, got)

	q.Text = "  Go   TIPS "
	got, err = c.Suggest(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"go tips 2026"}, got)

	assert.Equal(t, 1, src.callCount(), "normalized query served from cache")
	assert.Equal(t, 1, spy.hits[SourceSuggest])
	assert.Equal(t, 1, spy.misses[SourceSuggest])
	assert.Contains(t, cache.data, "suggest/en|US|go tips")
}

func TestCachedSuggestions_LocaleIsPartOfKey(t *testing.T) {
	src := &fakeSuggest{answers: map[string][]string{"go": {"go"}}}
	c := &cachedSuggestions{next: src, cache: newMemCache(), metrics: nopMetrics{}, log: discard}

	_, _ = c.Suggest(context.Background(), ports.Query{Text: "go", Language: "en", Region: "US"})
	_, _ = c.Suggest(context.Background(), ports.Query{Text: "go", Language: "de", Region: "DE"})
	assert.Equal(t, 2, src.callCount())
}

func TestCachedSuggestions_ErrorsNotCached(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSuggest{err: map[string]error{"x": boom}}
	cache := newMemCache()
	c := &cachedSuggestions{next: src, cache: cache, metrics: nopMetrics{}, log: discard}

	_, err := c.Suggest(context.Background(), ports.Query{Text: "x"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, cache.data)
}

func TestCachedSuggestions_BrokenCacheFallsThrough(t *testing.T) {
	src := &fakeSuggest{answers: map[string][]string{"x": {"x y"}}}
	cache := newMemCache()
	cache.err = errors.New("disk gone")
	c := &cachedSuggestions{next: src, cache: cache, metrics: nopMetrics{}, log: discard}

	got, err := c.Suggest(context.Background(), ports.Query{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x y"}, got)
}

func TestCachedVideos_RoundTrip(t *testing.T) {
	rec := ports.VideoRecord{Title: "Go", Description: "d", Tags: []string{"go"}, ViewCount: 991}
	src := &fakeVideos{records: []ports.VideoRecord{rec}}
	c := &cachedVideos{next: src, cache: newMemCache(), metrics: nopMetrics{}, log: discard}

	for i := 0; i < 3; i++ {
		got, err := c.Videos(context.Background(), ports.Query{Text: "go"})
		require.NoError(t, err)
		assert.Equal(t, []ports.VideoRecord{rec}, got)
	}
	assert.Equal(t, 1, src.calls)
}
