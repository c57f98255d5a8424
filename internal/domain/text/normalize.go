// Package text turns raw titles, suggestions and video metadata into terms:
// lowercase, whitespace-collapsed phrases of one to three words.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxTermWords is the longest phrase, in words, that may become a term.
const MaxTermWords = 3

// Normalize lowercases s, trims it and collapses every whitespace run to a
// single space. Input is NFC-composed first so precomposed and decomposed
// spellings of the same word produce the same term.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(lower(s)), " ")
}

// Tokenize splits s into lowercase words. Every Unicode punctuation or symbol
// character is treated as a separator. Order and duplicates are preserved.
// Stop words are not removed here; callers filter with a StopWordSet.
func Tokenize(s string) []string {
	return fieldsReplacing(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// MiningTokens splits video titles and descriptions into lowercase words.
// It is stricter than Tokenize: anything that is not a letter, digit or
// whitespace (marks, control characters, emoji) separates words.
func MiningTokens(s string) []string {
	return fieldsReplacing(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r)
	})
}

// WordCount returns the number of space-separated words in term.
func WordCount(term string) int {
	return len(strings.Fields(term))
}

// ValidTerm reports whether a normalized term may be scored: non-empty and at
// most MaxTermWords words.
func ValidTerm(term string) bool {
	n := WordCount(term)
	return n > 0 && n <= MaxTermWords
}

func lower(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// fieldsReplacing lowercases s, maps every rune matched by sep to a space,
// then splits on whitespace. Never returns empty tokens.
func fieldsReplacing(s string, sep func(rune) bool) []string {
	if s == "" {
		return nil
	}
	cleaned := strings.Map(func(r rune) rune {
		if sep(r) {
			return ' '
		}
		return r
	}, lower(s))

	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
