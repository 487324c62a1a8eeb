package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextStats are surface measurements of a document
type TextStats struct {
	WordCount         int     `json:"word_count"`
	CharCount         int     `json:"char_count"`
	SentenceCount     int     `json:"sentence_count"`
	AvgWordLength     float64 `json:"avg_word_length"`
	FleschReadingEase float64 `json:"flesch_reading_ease"`
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// Stats computes word, character and sentence counts plus the Flesch reading ease score
func Stats(text string) TextStats {
	fields := strings.Fields(text)
	stats := TextStats{
		WordCount:     len(fields),
		CharCount:     utf8.RuneCountInString(text),
		SentenceCount: countSentences(text),
	}

	if len(fields) > 0 {
		total := 0
		for _, f := range fields {
			total += utf8.RuneCountInString(f)
		}
		stats.AvgWordLength = float64(total) / float64(len(fields))
	}

	stats.FleschReadingEase = fleschReadingEase(fields, stats.SentenceCount)
	return stats
}

func countSentences(text string) int {
	n := 0
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// fleschReadingEase = 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words)
func fleschReadingEase(fields []string, sentences int) float64 {
	words := 0
	syllables := 0
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if w == "" {
			continue
		}
		words++
		syllables += CountSyllables(w)
	}
	if sentences == 0 || words == 0 {
		return 0
	}
	return 206.835 - 1.015*(float64(words)/float64(sentences)) - 84.6*(float64(syllables)/float64(words))
}

// CountSyllables approximates syllables by counting vowel groups, discounting a trailing e.
// Every word has at least one syllable.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	onVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !onVowel {
			count++
		}
		onVowel = isVowel
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count <= 0 {
		count = 1
	}
	return count
}
