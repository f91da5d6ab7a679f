// ABOUTME: Generator construction, seed selection and successor filtering
// ABOUTME: All randomness comes from one source so runs repeat for a given seed
package haiku

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/harper/markov-haiku/internal/corpus"
	"github.com/harper/markov-haiku/internal/markov"
	"github.com/harper/markov-haiku/internal/syllable"
)

// Generator produces haiku lines from a Markov chain. It is not safe for
// concurrent use; build one per goroutine.
type Generator struct {
	chain   *markov.Chain
	tokens  []string
	counter syllable.Counter
	rng     *rand.Rand
	logger  *log.Logger

	// anchors are the order-1 prefixes, filled on first recovery
	anchors []string

	maxSteps     int
	maxSeedDraws int
}

// New returns a Generator over chain's tokens, counting syllables with counter.
// It fails with corpus.ErrEmptyCorpus when the chain has no tokens.
func New(chain *markov.Chain, counter syllable.Counter, opts ...Option) (*Generator, error) {
	if chain == nil || len(chain.Tokens()) == 0 {
		return nil, corpus.ErrEmptyCorpus
	}
	if counter == nil {
		return nil, fmt.Errorf("haiku: nil syllable counter")
	}
	g := &Generator{
		chain:        chain,
		tokens:       chain.Tokens(),
		counter:      counter,
		logger:       log.New(io.Discard),
		maxSteps:     DefaultMaxSteps,
		maxSeedDraws: DefaultMaxSeedDraws,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g, nil
}

// PickSeed draws uniformly random corpus words until one resolves to at most
// maxSyllables. Words the counter cannot resolve are skipped. It returns the
// word and its count, or ErrExhausted after the configured number of draws.
func (g *Generator) PickSeed(maxSyllables int) (string, int, error) {
	return g.pickSeed(context.Background(), maxSyllables)
}

func (g *Generator) pickSeed(ctx context.Context, maxSyllables int) (string, int, error) {
	if maxSyllables < 1 {
		return "", 0, ErrInvalidTarget
	}
	for draw := 1; draw <= g.maxSeedDraws; draw++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		word := g.randomToken()
		n, err := g.count(ctx, []string{word})
		if err != nil {
			g.logger.Debug("seed candidate unusable", "word", word, "err", err)
			continue
		}
		if n <= maxSyllables {
			g.logger.Debug("seed picked", "word", word, "syllables", n, "draws", draw)
			return word, n, nil
		}
	}
	return "", 0, fmt.Errorf("%w: no seed within %d syllables after %d draws",
		ErrExhausted, maxSyllables, g.maxSeedDraws)
}

// NextWords returns the successors of prefix in model that keep a line of
// lineSyllables within target, one entry per recorded occurrence. Successors
// the counter cannot resolve are left out. An unknown prefix yields nil.
func (g *Generator) NextWords(model markov.Model, prefix []string, lineSyllables, target int) []string {
	return g.fitting(context.Background(), model.Successors(prefix), lineSyllables, target)
}

func (g *Generator) fitting(ctx context.Context, successors []string, lineSyllables, target int) []string {
	if len(successors) == 0 {
		return nil
	}
	counts := make(map[string]int, len(successors))
	var out []string
	for _, word := range successors {
		n, seen := counts[word]
		if !seen {
			c, err := g.count(ctx, []string{word})
			if err != nil {
				g.logger.Debug("successor unusable", "word", word, "err", err)
				c = -1
			}
			counts[word] = c
			n = c
		}
		if n >= 0 && lineSyllables+n <= target {
			out = append(out, word)
		}
	}
	return out
}

func (g *Generator) count(ctx context.Context, words []string) (int, error) {
	return syllable.CountContext(ctx, g.counter, words)
}

func (g *Generator) randomToken() string {
	return g.tokens[g.rng.IntN(len(g.tokens))]
}

// randomAnchor draws a recovery word from the order-1 model's prefixes, so
// the anchor always has at least one successor. A one-token corpus has no
// prefixes and falls back to the token itself.
func (g *Generator) randomAnchor() string {
	if g.anchors == nil {
		g.anchors = g.chain.Model(1).Prefixes()
	}
	if len(g.anchors) == 0 {
		return g.randomToken()
	}
	return g.anchors[g.rng.IntN(len(g.anchors))]
}

// tail returns a copy of the last one or two words.
func tail(words []string) []string {
	start := len(words) - 2
	if start < 0 {
		start = 0
	}
	return append([]string(nil), words[start:]...)
}
