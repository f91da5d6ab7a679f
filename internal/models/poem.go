// ABOUTME: Poem is one generated haiku as it is kept in the journal
// ABOUTME: Carries the seed and corpus so a run can be reproduced later
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LineCount is the number of lines in every poem.
const LineCount = 3

// Poem represents a saved haiku
type Poem struct {
	ID        string    `json:"id" yaml:"id"`
	Seed      uint64    `json:"seed" yaml:"seed"`
	Corpus    string    `json:"corpus" yaml:"corpus"`
	Lang      string    `json:"lang" yaml:"lang"`
	Lines     []string  `json:"lines" yaml:"lines"`
	Syllables []int     `json:"syllables" yaml:"syllables"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewPoem creates a new Poem with validation
func NewPoem(seed uint64, corpus, lang string, lines []string, syllables []int) (*Poem, error) {
	if len(lines) != LineCount {
		return nil, fmt.Errorf("poem must have %d lines, got %d", LineCount, len(lines))
	}
	if len(syllables) != LineCount {
		return nil, fmt.Errorf("poem must have %d syllable counts, got %d", LineCount, len(syllables))
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			return nil, fmt.Errorf("line %d cannot be empty", i+1)
		}
	}
	if strings.TrimSpace(lang) == "" {
		return nil, errors.New("lang cannot be empty")
	}

	return &Poem{
		ID:        uuid.New().String(),
		Seed:      seed,
		Corpus:    corpus,
		Lang:      lang,
		Lines:     append([]string(nil), lines...),
		Syllables: append([]int(nil), syllables...),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Text returns the poem as three newline-separated lines
func (p *Poem) Text() string {
	return strings.Join(p.Lines, "\n")
}

// Pattern returns the syllable pattern, e.g. "5-7-5"
func (p *Poem) Pattern() string {
	parts := make([]string, len(p.Syllables))
	for i, n := range p.Syllables {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, "-")
}
