// Package stopwords embeds the versioned stop-word sets for compile-time inclusion.
// Each YAML file under v1/ defines one named set. The "title" set filters title
// tokens before scoring and bigram expansion; the "mining" set filters words mined
// from video titles and descriptions and carries a few extra marketing words.
//
// Usage:
//
//	text.LoadStopWords(stopwords.FS, "v1")
package stopwords

import "embed"

//go:embed v1/*.yaml
var FS embed.FS
