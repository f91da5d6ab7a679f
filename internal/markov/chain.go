// ABOUTME: Chain hands out Markov models of a token sequence by order
// ABOUTME: Rebuilds on every request unless model caching is enabled
package markov

import "sync"

// Chain owns an immutable token sequence and serves models built from it.
// Without caching every Model call rebuilds the table from scratch, which
// costs O(len(tokens)) per call.
type Chain struct {
	tokens []string
	cache  bool

	mu     sync.Mutex
	models map[int]Model
	builds int
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithCache memoizes one model per order.
func WithCache() ChainOption {
	return func(c *Chain) { c.cache = true }
}

// NewChain wraps tokens. The slice must not be modified afterwards.
func NewChain(tokens []string, opts ...ChainOption) *Chain {
	c := &Chain{tokens: tokens, models: make(map[int]Model)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens returns the underlying token sequence.
func (c *Chain) Tokens() []string {
	return c.tokens
}

// Model returns the model of the given order.
func (c *Chain) Model(order int) Model {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache {
		if m, ok := c.models[order]; ok {
			return m
		}
	}
	m := Build(c.tokens, order)
	c.builds++
	if c.cache {
		c.models[order] = m
	}
	return m
}

// Builds reports how many tables have been constructed so far.
func (c *Chain) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}
