package ports

import "time"

// MetricsRecorder receives operational measurements. Implementations must be
// safe for concurrent use; a nil-safe no-op is provided by the app package.
type MetricsRecorder interface {
	// ObserveFetch records one external lookup. err is nil on success.
	ObserveFetch(source string, elapsed time.Duration, err error)

	// ObserveCache records a cache lookup for source.
	ObserveCache(source string, hit bool)

	// ObserveGenerate records one tag generation and how many tags it produced.
	ObserveGenerate(elapsed time.Duration, tags int)
}
