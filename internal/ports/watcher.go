package ports

// Watcher monitors a single file for changes (e.g. a stop-word override file).
// The adapter debounces bursts of events from editors that write a file in
// several steps. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring path. The file does not need to exist yet;
	// its directory must. onChange is called with path after each write,
	// create, remove or rename, possibly from another goroutine.
	Watch(path string, onChange func(path string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
