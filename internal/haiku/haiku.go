// ABOUTME: Three-line 5-7-5 assembly on top of the line walk
// ABOUTME: Threads the last two words of each line into the next lookup
package haiku

import (
	"context"
	"fmt"
	"strings"
)

// Targets are the syllable counts of the three lines.
var Targets = [3]int{5, 7, 5}

// SeedMaxSyllables bounds the opening seed so the first line can still grow.
const SeedMaxSyllables = 4

// Haiku is three completed lines.
type Haiku struct {
	Seed  string  `json:"seed"`
	Lines [3]Line `json:"lines"`
}

// Strings returns the three lines as text.
func (h Haiku) Strings() []string {
	out := make([]string, len(h.Lines))
	for i, l := range h.Lines {
		out[i] = l.String()
	}
	return out
}

// String renders the haiku one line per row.
func (h Haiku) String() string {
	return strings.Join(h.Strings(), "\n")
}

// Stats sums walk events across the three lines.
func (h Haiku) Stats() Stats {
	var s Stats
	for _, l := range h.Lines {
		s.add(l.Stats)
	}
	return s
}

// Generate writes a 5-7-5 haiku. Line one starts from a random seed of at
// most SeedMaxSyllables; each later line is looked up from the last two words
// of the line before it.
func (g *Generator) Generate() (Haiku, error) {
	return g.GenerateContext(context.Background())
}

// GenerateContext is Generate with cancellation.
func (g *Generator) GenerateContext(ctx context.Context) (Haiku, error) {
	word, _, err := g.pickSeed(ctx, SeedMaxSyllables)
	if err != nil {
		return Haiku{}, fmt.Errorf("picking seed: %w", err)
	}

	h := Haiku{Seed: word}
	seed := []string{word}
	for i, target := range Targets {
		line, err := g.GenerateLineContext(ctx, seed, target, i == 0)
		if err != nil {
			return Haiku{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		h.Lines[i] = line
		seed = tail(line.Words)
	}

	s := h.Stats()
	g.logger.Info("haiku generated", "seed", word, "steps", s.Steps,
		"recoveries", s.Recoveries, "backtracks", s.Backtracks)
	return h, nil
}
