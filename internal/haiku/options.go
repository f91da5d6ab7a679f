// ABOUTME: Functional options for Generator: seed, random source, logger and caps
// ABOUTME: Defaults bound every loop at ten thousand iterations
package haiku

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

const (
	// DefaultMaxSteps bounds the iterations of a single line walk.
	DefaultMaxSteps = 10000
	// DefaultMaxSeedDraws bounds rejection sampling in PickSeed.
	DefaultMaxSeedDraws = 10000
)

// Option customizes a Generator. Constructors panic on meaningless input;
// generation itself never panics.
type Option func(*Generator)

// WithSeed seeds the generator's random source. Two generators with the same
// seed, corpus and counter produce the same verses.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand shares an explicit random source.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("haiku: WithRand(nil)")
	}
	return func(g *Generator) { g.rng = r }
}

// WithLogger injects the logger used for walk diagnostics.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic("haiku: WithLogger(nil)")
	}
	return func(g *Generator) { g.logger = l }
}

// WithMaxSteps caps the iterations of each line walk.
func WithMaxSteps(n int) Option {
	if n < 1 {
		panic("haiku: WithMaxSteps requires n >= 1")
	}
	return func(g *Generator) { g.maxSteps = n }
}

// WithMaxSeedDraws caps the random draws PickSeed makes.
func WithMaxSeedDraws(n int) Option {
	if n < 1 {
		panic("haiku: WithMaxSeedDraws requires n >= 1")
	}
	return func(g *Generator) { g.maxSeedDraws = n }
}
