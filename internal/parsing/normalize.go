// Package parsing turns raw resume and job text into the normalized token stream used for lexical scoring.
package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

// minTokenLength is the shortest token kept after normalization
const minTokenLength = 3

// maxStemPasses bounds the stem fixpoint loop
const maxStemPasses = 8

// noiseRe matches anything that is not an ASCII letter, digit, whitespace or retained punctuation
var noiseRe = regexp.MustCompile(`[^a-z0-9\s.,!?\-_]`)

// edgePunct is trimmed from both ends of each token
const edgePunct = ".,!?-_"

// Normalize lowercases text, strips noise, tokenizes, drops stopwords and short tokens,
// and reduces each word to its stem. Tokens are joined by single spaces.
// Normalize(Normalize(x)) == Normalize(x) for every x.
func Normalize(text string) string {
	return strings.Join(Tokens(text), " ")
}

// Tokens returns the normalized tokens of text in order
func Tokens(text string) []string {
	if text == "" {
		return nil
	}

	cleaned := noiseRe.ReplaceAllString(strings.ToLower(text), " ")

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		tok := strings.Trim(field, edgePunct)
		if !keep(tok) {
			continue
		}
		tok = stem(tok)
		// stemming can produce a stopword or a short token
		if !keep(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func keep(tok string) bool {
	return utf8.RuneCountInString(tok) >= minTokenLength && !IsStopword(tok)
}

// stem reduces purely alphabetic tokens to a stable stem. Tokens with digits
// or inner punctuation (node.js, ci-cd, python3) are left alone.
func stem(tok string) string {
	if !isAlpha(tok) {
		return tok
	}
	for i := 0; i < maxStemPasses; i++ {
		next := english.Stem(tok, true)
		if next == tok || next == "" {
			break
		}
		tok = next
	}
	return tok
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return s != ""
}
