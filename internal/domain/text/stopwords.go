package text

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Names of the stop-word sets shipped in the stopwords package.
// They differ on purpose: mining also drops marketing filler ("official",
// "video", "new") that clutters mined titles but may be meaningful in a
// user's own title.
const (
	SetTitle  = "title"
	SetMining = "mining"
)

// stopWordDef is the YAML form of one stop-word set.
type stopWordDef struct {
	Name    string   `yaml:"name"`
	Version int      `yaml:"version"`
	Words   []string `yaml:"words"`
}

// StopWordSet is an immutable, named set of words excluded from
// token-level candidates. The zero value is an empty set that contains nothing.
type StopWordSet struct {
	name    string
	version int
	words   map[string]struct{}
}

// NewStopWordSet builds a set from words. Words are normalized; blanks are dropped.
func NewStopWordSet(name string, version int, words []string) StopWordSet {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = Normalize(w); w != "" {
			m[w] = struct{}{}
		}
	}
	return StopWordSet{name: name, version: version, words: m}
}

// Name returns the set's name, e.g. "title".
func (s StopWordSet) Name() string { return s.name }

// Version returns the set's version as declared in its file.
func (s StopWordSet) Version() int { return s.version }

// Len returns the number of words in the set.
func (s StopWordSet) Len() int { return len(s.words) }

// Contains reports whether token is a stop word.
func (s StopWordSet) Contains(token string) bool {
	_, ok := s.words[token]
	return ok
}

// Filter returns tokens with stop words removed. The input is not modified.
func (s StopWordSet) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Words returns the set's words in sorted order.
func (s StopWordSet) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// StopWords is a registry of named stop-word sets.
type StopWords struct {
	sets map[string]StopWordSet
}

// NewStopWords builds a registry. A later set replaces an earlier one of the same name.
func NewStopWords(sets ...StopWordSet) StopWords {
	m := make(map[string]StopWordSet, len(sets))
	for _, s := range sets {
		m[s.name] = s
	}
	return StopWords{sets: m}
}

// Get returns the named set. Missing sets come back empty with ok=false.
func (r StopWords) Get(name string) (StopWordSet, bool) {
	s, ok := r.sets[name]
	return s, ok
}

// Set returns the named set, or an empty set if it is not registered.
func (r StopWords) Set(name string) StopWordSet {
	s, _ := r.Get(name)
	return s
}

// Names returns the registered set names in sorted order.
func (r StopWords) Names() []string {
	out := make([]string, 0, len(r.sets))
	for n := range r.sets {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// With returns a copy of r where every set in overrides replaces the
// registered set of the same name. r itself is left unchanged.
func (r StopWords) With(overrides ...StopWordSet) StopWords {
	all := make([]StopWordSet, 0, len(r.sets)+len(overrides))
	for _, n := range r.Names() {
		all = append(all, r.sets[n])
	}
	return NewStopWords(append(all, overrides...)...)
}

// ParseStopWords decodes a YAML document holding either a single set
// (a mapping with name, version, words) or a sequence of them.
func ParseStopWords(data []byte) ([]StopWordSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse stop words: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	var defs []stopWordDef
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&defs); err != nil {
			return nil, fmt.Errorf("decode stop word sets: %w", err)
		}
	case yaml.MappingNode:
		var d stopWordDef
		if err := root.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode stop word set: %w", err)
		}
		defs = append(defs, d)
	default:
		return nil, fmt.Errorf("stop words: expected mapping or sequence at line %d", root.Line)
	}

	sets := make([]StopWordSet, 0, len(defs))
	for i, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("stop word set %d: missing name", i)
		}
		sets = append(sets, NewStopWordSet(name, d.Version, d.Words))
	}
	return sets, nil
}

// LoadStopWords reads every YAML file in dir of fsys into a registry.
// Files are loaded in sorted order; duplicate set names are an error.
func LoadStopWords(fsys fs.FS, dir string) (StopWords, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return StopWords{}, fmt.Errorf("read stop words dir %q: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var all []StopWordSet
	seen := make(map[string]string) // set name -> source file
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return StopWords{}, fmt.Errorf("read %s: %w", path, err)
		}
		sets, err := ParseStopWords(data)
		if err != nil {
			return StopWords{}, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		for _, s := range sets {
			if prev, ok := seen[s.name]; ok {
				return StopWords{}, fmt.Errorf("duplicate stop word set %q (first in %s, again in %s)", s.name, prev, entry.Name())
			}
			seen[s.name] = entry.Name()
			all = append(all, s)
		}
	}

	if len(all) == 0 {
		return StopWords{}, fmt.Errorf("no stop word sets in %q", dir)
	}
	return NewStopWords(all...), nil
}
