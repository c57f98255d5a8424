package text

import "strings"

// NGrams returns every window of n consecutive tokens joined by a single
// space, in order. Fewer than n tokens (or n < 1) yields nil.
func NGrams(tokens []string, n int) []string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

// Bigrams returns tokens[i] + " " + tokens[i+1] for every consecutive pair.
//
//	["iphone", "16", "pro"] -> ["iphone 16", "16 pro"]
func Bigrams(tokens []string) []string {
	return NGrams(tokens, 2)
}

// Trigrams is Bigrams with a window of three.
func Trigrams(tokens []string) []string {
	return NGrams(tokens, 3)
}
