package app

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the state directory.
const HomeEnv = "TAGGENIE_HOME"

// Paths holds all resolved filesystem paths under the taggenie home directory.
// All fields are pre-computed strings.
type Paths struct {
	Root      string // ~/.taggenie/
	Config    string // ~/.taggenie/config.yaml
	DB        string // ~/.taggenie/cache.db
	StopWords string // ~/.taggenie/stopwords.yaml (optional overrides)
}

// NewPaths constructs all resolved paths from a home directory.
// An empty home resolves to DefaultHome().
func NewPaths(home string) *Paths {
	if home == "" {
		home = DefaultHome()
	}
	return &Paths{
		Root:      home,
		Config:    filepath.Join(home, "config.yaml"),
		DB:        filepath.Join(home, "cache.db"),
		StopWords: filepath.Join(home, "stopwords.yaml"),
	}
}

// DefaultHome returns $TAGGENIE_HOME, else ~/.taggenie, else ./.taggenie.
func DefaultHome() string {
	if h := os.Getenv(HomeEnv); h != "" {
		return h
	}
	if u, err := os.UserHomeDir(); err == nil {
		return filepath.Join(u, ".taggenie")
	}
	return ".taggenie"
}

// EnsureDirs creates the home directory if missing.
func (p *Paths) EnsureDirs() error {
	return os.MkdirAll(p.Root, 0o755)
}
