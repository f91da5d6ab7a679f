// ABOUTME: Japanese corpus support backed by the kagome morphological analyzer
// ABOUTME: Splits lines into morphemes and counts morae (on) from katakana readings
package syllable

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// posSymbol is the IPA dictionary's part of speech for punctuation and symbols.
const posSymbol = "記号"

// Japanese normalizes lines into morphemes and counts morae. It implements
// both Counter and corpus.Normalizer.
type Japanese struct {
	tok *tokenizer.Tokenizer

	mu    sync.Mutex
	cache map[string]int
}

// NewJapanese loads the IPA dictionary and builds the analyzer.
func NewJapanese() (*Japanese, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("initializing kagome tokenizer: %w", err)
	}
	return &Japanese{tok: t, cache: make(map[string]int)}, nil
}

// Normalize returns the surface forms of the line's morphemes, dropping
// symbols, punctuation and whitespace.
func (j *Japanese) Normalize(line string) []string {
	var words []string
	for _, t := range j.tok.Tokenize(line) {
		surface := strings.TrimSpace(t.Surface)
		if surface == "" {
			continue
		}
		if pos := t.POS(); len(pos) > 0 && pos[0] == posSymbol {
			continue
		}
		words = append(words, surface)
	}
	return words
}

// Syllables returns the mora count of word.
func (j *Japanese) Syllables(word string) (int, error) {
	j.mu.Lock()
	if n, ok := j.cache[word]; ok {
		j.mu.Unlock()
		return n, nil
	}
	j.mu.Unlock()

	toks := j.tok.Tokenize(word)
	if len(toks) == 0 {
		return 0, &LookupError{Word: word}
	}
	total := 0
	for _, t := range toks {
		reading, ok := t.Reading()
		if !ok || reading == "" || reading == "*" {
			if !isKana(t.Surface) {
				return 0, &LookupError{Word: word}
			}
			reading = t.Surface
		}
		total += CountMorae(reading)
	}
	if total == 0 {
		return 0, &LookupError{Word: word}
	}

	j.mu.Lock()
	j.cache[word] = total
	j.mu.Unlock()
	return total, nil
}

// Count implements Counter.
func (j *Japanese) Count(words []string) (int, error) {
	total := 0
	for _, word := range words {
		n, err := j.Syllables(word)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// smallKana combine with the preceding kana and add no mora of their own.
// Small tsu (ッ/っ) is a full mora and is deliberately absent.
const smallKana = "ァィゥェォャュョヮぁぃぅぇぉゃゅょゎ"

// CountMorae counts morae in a kana string. Long-vowel marks, moraic nasals
// and small tsu count; small vowel and glide kana do not; non-kana runes are
// ignored.
func CountMorae(kana string) int {
	n := 0
	for _, r := range kana {
		if r == 'ー' {
			n++
			continue
		}
		if !unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			continue
		}
		if strings.ContainsRune(smallKana, r) {
			continue
		}
		n++
	}
	return n
}

func isKana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != 'ー' && !unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			return false
		}
	}
	return true
}
