// ABOUTME: Word normalization shared by the corpus preparer and the syllable oracle
// ABOUTME: Lowercases, splits hyphens, strips punctuation and possessives
package syllable

import (
	"strings"
	"unicode"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Format turns a word or phrase into lowercase words with hyphens split,
// surrounding punctuation removed and trailing possessives ('s, ’s) dropped.
// Words that are pure punctuation disappear.
func Format(text string) []string {
	text = strings.ReplaceAll(text, "-", " ")
	fields := strings.Fields(strings.ToLower(text))

	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.TrimFunc(field, isPunctuation)
		if strings.HasSuffix(word, "'s") {
			word = strings.TrimSuffix(word, "'s")
		} else if strings.HasSuffix(word, "’s") {
			word = strings.TrimSuffix(word, "’s")
		}
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

func isPunctuation(r rune) bool {
	return strings.ContainsRune(asciiPunctuation, r) || unicode.IsPunct(r)
}

// English normalizes corpus lines with Format.
type English struct{}

// Normalize implements corpus.Normalizer.
func (English) Normalize(line string) []string {
	return Format(line)
}
