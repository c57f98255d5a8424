package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/foxside/taggenie/internal/domain/text"
	"github.com/foxside/taggenie/internal/ports"
)

// Cache source names, also used as metric labels.
const (
	SourceSuggest = "suggest"
	SourceVideos  = "videos"
)

// cachedSuggestions serves completions from the cache before asking next.
type cachedSuggestions struct {
	next    ports.SuggestionSource
	cache   ports.Cache
	metrics ports.MetricsRecorder
	log     *slog.Logger
}

func (c *cachedSuggestions) Suggest(ctx context.Context, q ports.Query) ([]string, error) {
	return cachedFetch(ctx, c.cache, c.metrics, c.log, SourceSuggest, q, c.next.Suggest)
}

// cachedVideos serves video records from the cache before asking next.
type cachedVideos struct {
	next    ports.VideoSource
	cache   ports.Cache
	metrics ports.MetricsRecorder
	log     *slog.Logger
}

func (c *cachedVideos) Videos(ctx context.Context, q ports.Query) ([]ports.VideoRecord, error) {
	return cachedFetch(ctx, c.cache, c.metrics, c.log, SourceVideos, q, c.next.Videos)
}

// cachedFetch is read-through: hit returns the stored value, miss calls fetch
// and stores a successful result. Failures are never cached. Cache errors
// degrade to a miss.
func cachedFetch[T any](ctx context.Context, cache ports.Cache, metrics ports.MetricsRecorder, log *slog.Logger,
	source string, q ports.Query, fetch func(context.Context, ports.Query) (T, error)) (T, error) {
	key := cacheKey(q)

	data, ok, err := cache.Get(source, key)
	if err != nil {
		log.Debug("cache read failed", "source", source, "err", err)
	}
	if ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			metrics.ObserveCache(source, true)
			return v, nil
		}
	}
	metrics.ObserveCache(source, false)

	v, err := fetch(ctx, q)
	if err != nil {
		return v, err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := cache.Put(source, key, data); err != nil {
			log.Debug("cache write failed", "source", source, "err", err)
		}
	}
	return v, nil
}

// cacheKey is "lang|region|normalized query".
func cacheKey(q ports.Query) string {
	return strings.ToLower(strings.TrimSpace(q.Language)) + "|" +
		strings.ToUpper(strings.TrimSpace(q.Region)) + "|" +
		text.Normalize(q.Text)
}
