package cmd

import (
	"errors"
	"net/http"
	"time"

	"github.com/foxside/taggenie/internal/app"
	bolt "go.etcd.io/bbolt"
)

// lockError carries a human-readable diagnosis for a locked cache.
type lockError struct {
	diagnosis string
}

func (e lockError) Error() string { return e.diagnosis }

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt gives up with ErrTimeout when it cannot acquire the file lock within
// the configured deadline.
func isDBLockError(err error) bool {
	return err != nil && errors.Is(err, bolt.ErrTimeout)
}

// diagnoseDBLock returns actionable guidance when the cache database is
// locked. It distinguishes a running `taggenie serve` from an unknown holder.
func diagnoseDBLock(cfg app.Config) string {
	if serverRunning(cfg.Listen) {
		return "cache is locked by the running server (" + cfg.Listen + ")\n" +
			"  → query it instead:  curl 'http://" + cfg.Listen + "/api/tags?title=...'\n" +
			"  → or skip the cache: taggenie --no-cache generate ...\n" +
			"  → or stop the server and retry"
	}
	return "cache is locked by another process\n" +
		"  → find the process:  ps aux | grep 'taggenie'\n" +
		"  → kill it:           kill <PID>\n" +
		"  → or skip the cache: taggenie --no-cache generate ..."
}

// serverRunning pings /api/health on addr.
func serverRunning(addr string) bool {
	client := &http.Client{Timeout: 500 * time.Millisecond}
	resp, err := client.Get("http://" + addr + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
