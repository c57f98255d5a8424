package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/foxside/taggenie/internal/domain/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopWordStore_Embedded(t *testing.T) {
	s, err := NewStopWordStore(nil)
	require.NoError(t, err)

	cur := s.Current()
	assert.True(t, cur.Set(text.SetTitle).Contains("the"))
	assert.False(t, cur.Set(text.SetTitle).Contains("official"))
	assert.True(t, cur.Set(text.SetMining).Contains("official"))
}

func TestStopWordStore_OverridesAndReset(t *testing.T) {
	s, err := NewStopWordStore(nil)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "stopwords.yaml")

	require.NoError(t, os.WriteFile(path, []byte("name: title\nversion: 2\nwords: [review]\n"), 0o644))
	require.NoError(t, s.LoadOverrides(path))

	title := s.Current().Set(text.SetTitle)
	assert.Equal(t, 2, title.Version())
	assert.True(t, title.Contains("review"))
	assert.False(t, title.Contains("the"), "override replaces the whole set")
	assert.True(t, s.Current().Set(text.SetMining).Contains("official"), "other sets untouched")

	require.NoError(t, os.Remove(path))
	require.NoError(t, s.LoadOverrides(path))
	assert.True(t, s.Current().Set(text.SetTitle).Contains("the"))
}

func TestStopWordStore_BadFileKeepsPrevious(t *testing.T) {
	s, err := NewStopWordStore(nil)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "stopwords.yaml")

	require.NoError(t, os.WriteFile(path, []byte("name: title\nwords: [review]\n"), 0o644))
	require.NoError(t, s.LoadOverrides(path))

	require.NoError(t, os.WriteFile(path, []byte("words: [x]\n"), 0o644))
	s.Reload(path) // logs, keeps previous

	assert.True(t, s.Current().Set(text.SetTitle).Contains("review"))
	assert.Error(t, s.LoadOverrides(path))
}
