// ABOUTME: Backtracking line walk as an explicit extend/recover state machine
// ABOUTME: Records steps, recoveries, backtracks and chain-breaking boundaries
package haiku

import (
	"context"
	"fmt"
	"strings"
)

// Line is one completed haiku line.
type Line struct {
	Words     []string `json:"words"`
	Syllables int      `json:"syllables"`
	// Boundaries holds indices i where Words[i] was not reached by a chain
	// transition from Words[i-1] because a stuck recovery happened between them.
	Boundaries []int `json:"boundaries,omitempty"`
	Stats      Stats `json:"stats"`
}

// String joins the words with single spaces.
func (l Line) String() string {
	return strings.Join(l.Words, " ")
}

// Stats counts walk events.
type Stats struct {
	Steps      int `json:"steps"`
	Recoveries int `json:"recoveries"`
	Backtracks int `json:"backtracks"`
}

func (s *Stats) add(o Stats) {
	s.Steps += o.Steps
	s.Recoveries += o.Recoveries
	s.Backtracks += o.Backtracks
}

type walkState int

const (
	extending walkState = iota
	recovering
)

// walk is the mutable record of one line under construction.
type walk struct {
	words      []string
	prefix     []string
	boundaries []int
	// pendingBoundary marks the next appended word as following a
	// lookup-only recovery prefix rather than the previous line word.
	pendingBoundary bool
	stats           Stats
}

func (w *walk) push(word string) {
	w.words = append(w.words, word)
	if w.pendingBoundary {
		w.markBoundary()
		w.pendingBoundary = false
	}
	w.prefix = tail(w.words)
}

func (w *walk) markBoundary() {
	if i := len(w.words) - 1; i > 0 {
		w.boundaries = append(w.boundaries, i)
	}
}

// pop drops the last word and any boundary recorded at or past it. It
// reports false on an empty line.
func (w *walk) pop() bool {
	if len(w.words) == 0 {
		return false
	}
	w.words = w.words[:len(w.words)-1]
	for len(w.boundaries) > 0 && w.boundaries[len(w.boundaries)-1] >= len(w.words) {
		w.boundaries = w.boundaries[:len(w.boundaries)-1]
	}
	w.prefix = tail(w.words)
	return true
}

// GenerateLine grows a line until its syllable count equals target.
//
// For the first line the seed words start the line. Otherwise the line starts
// empty and seed (normally the previous line's last two words) is used only
// to look up the first successor.
func (g *Generator) GenerateLine(seed []string, target int, firstLine bool) (Line, error) {
	return g.GenerateLineContext(context.Background(), seed, target, firstLine)
}

// GenerateLineContext is GenerateLine with cancellation checked between steps.
func (g *Generator) GenerateLineContext(ctx context.Context, seed []string, target int, firstLine bool) (Line, error) {
	if target < 1 {
		return Line{}, ErrInvalidTarget
	}

	w := &walk{}
	if firstLine {
		w.words = append([]string(nil), seed...)
		w.prefix = tail(w.words)
		n, err := g.count(ctx, w.words)
		if err != nil {
			return Line{}, fmt.Errorf("counting seed %q: %w", seed, err)
		}
		if n > target {
			return Line{}, fmt.Errorf("%w: %q has %d syllables, target %d", ErrSeedOverBudget, seed, n, target)
		}
	} else {
		w.prefix = tail(seed)
	}

	state := extending
	var count int
	for {
		if err := ctx.Err(); err != nil {
			return Line{}, err
		}

		var err error
		count, err = g.count(ctx, w.words)
		if err != nil {
			return Line{}, fmt.Errorf("counting line: %w", err)
		}
		// a line that lands on target with the last allowed step is complete
		if state == extending && count == target {
			break
		}
		if w.stats.Steps >= g.maxSteps {
			return Line{}, fmt.Errorf("%w: line of %d syllables not reached in %d steps (stuck at %q)",
				ErrExhausted, target, g.maxSteps, strings.Join(w.words, " "))
		}
		w.stats.Steps++

		switch state {
		case extending:
			state = g.extend(ctx, w, count, target)
		case recovering:
			g.reseed(ctx, w, count, target)
			state = extending
		}
	}

	g.logger.Debug("line complete", "target", target, "line", strings.Join(w.words, " "),
		"steps", w.stats.Steps, "recoveries", w.stats.Recoveries, "backtracks", w.stats.Backtracks)

	return Line{
		Words:      w.words,
		Syllables:  count,
		Boundaries: w.boundaries,
		Stats:      w.stats,
	}, nil
}

// extend performs one Extending step below target and returns the next state.
func (g *Generator) extend(ctx context.Context, w *walk, count, target int) walkState {
	successors := g.chain.Model(len(w.prefix)).Successors(w.prefix)
	if len(successors) == 0 {
		g.logger.Debug("no successors", "prefix", strings.Join(w.prefix, " "))
		return recovering
	}

	choices := g.fitting(ctx, successors, count, target)
	if len(choices) == 0 {
		g.logger.Debug("all successors overshoot", "prefix", strings.Join(w.prefix, " "),
			"syllables", count, "target", target)
		// A lookup-only anchor is not part of the line; draw another.
		if !w.pendingBoundary && w.pop() {
			w.stats.Backtracks++
		}
		return recovering
	}

	w.push(choices[g.rng.IntN(len(choices))])
	return extending
}

// reseed draws a fresh random anchor. An anchor that resolves and fits is
// appended to the line; otherwise it serves only as the next lookup prefix.
func (g *Generator) reseed(ctx context.Context, w *walk, count, target int) {
	w.stats.Recoveries++
	anchor := g.randomAnchor()

	n, err := g.count(ctx, []string{anchor})
	if err == nil && count+n <= target {
		w.words = append(w.words, anchor)
		w.markBoundary()
		w.pendingBoundary = false
		w.prefix = tail(w.words)
		g.logger.Debug("recovery anchor appended", "anchor", anchor)
		return
	}

	w.prefix = []string{anchor}
	w.pendingBoundary = true
	g.logger.Debug("recovery prefix", "anchor", anchor)
}
