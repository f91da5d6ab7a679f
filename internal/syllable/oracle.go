// ABOUTME: English syllable oracle chaining override table, pronouncing dictionary and remote resolver
// ABOUTME: Exposes Counter, the one function the haiku generator consumes
package syllable

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Counter sums syllables across words. Implementations fail with an error
// wrapping ErrLookupFailure for a word they cannot resolve.
type Counter interface {
	Count(words []string) (int, error)
}

// ContextCounter is a Counter whose lookups can be cancelled.
type ContextCounter interface {
	Counter
	CountContext(ctx context.Context, words []string) (int, error)
}

// CountContext counts words with c, passing ctx on when c can use it.
func CountContext(ctx context.Context, c Counter, words []string) (int, error) {
	if cc, ok := c.(ContextCounter); ok {
		return cc.CountContext(ctx, words)
	}
	return c.Count(words)
}

// Resolver is a last-resort source for words missing from every table,
// typically a remote model. Implementations should return ErrLookupFailure
// (or a wrapping error) for words they cannot answer either.
type Resolver interface {
	Syllables(ctx context.Context, word string) (int, error)
}

// Oracle resolves a word through, in order: the override table, the
// pronouncing dictionary, then the optional Resolver. Resolver answers are
// cached, including misses.
type Oracle struct {
	overrides  Table
	dictionary Table
	resolver   Resolver
	logger     *log.Logger

	mu       sync.Mutex
	resolved map[string]int
	missing  map[string]struct{}
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithOverrides sets the curated table consulted before the dictionary.
func WithOverrides(t Table) Option {
	return func(o *Oracle) { o.overrides = t }
}

// WithDictionary sets the pronouncing dictionary.
func WithDictionary(t Table) Option {
	return func(o *Oracle) { o.dictionary = t }
}

// WithResolver sets the fallback consulted after both tables miss.
func WithResolver(r Resolver) Option {
	return func(o *Oracle) { o.resolver = r }
}

// WithLogger sets the logger used for resolver diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *Oracle) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewOracle builds an oracle. Without WithDictionary it uses the embedded
// basic lexicon; without WithOverrides the embedded override table.
func NewOracle(opts ...Option) *Oracle {
	o := &Oracle{
		logger:   log.New(io.Discard),
		resolved: make(map[string]int),
		missing:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.overrides == nil {
		o.overrides = Overrides()
	}
	if o.dictionary == nil {
		o.dictionary = Lexicon()
	}
	return o
}

// Syllables resolves a single normalized word.
func (o *Oracle) Syllables(word string) (int, error) {
	return o.SyllablesContext(context.Background(), word)
}

// SyllablesContext is Syllables with ctx passed to the resolver.
func (o *Oracle) SyllablesContext(ctx context.Context, word string) (int, error) {
	if n, ok := o.overrides[word]; ok {
		return n, nil
	}
	if n, ok := o.dictionary[word]; ok {
		return n, nil
	}
	if o.resolver == nil {
		return 0, &LookupError{Word: word}
	}
	return o.resolve(ctx, word)
}

func (o *Oracle) resolve(ctx context.Context, word string) (int, error) {
	o.mu.Lock()
	if n, ok := o.resolved[word]; ok {
		o.mu.Unlock()
		return n, nil
	}
	if _, ok := o.missing[word]; ok {
		o.mu.Unlock()
		return 0, &LookupError{Word: word}
	}
	o.mu.Unlock()

	n, err := o.resolver.Syllables(ctx, word)
	if ctxErr := ctx.Err(); ctxErr != nil {
		// an interrupted lookup says nothing about the word
		return 0, ctxErr
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil || n < 1 {
		if err != nil && !errors.Is(err, ErrLookupFailure) {
			o.logger.Warn("syllable resolver failed", "word", word, "err", err)
		}
		o.missing[word] = struct{}{}
		return 0, &LookupError{Word: word}
	}
	o.resolved[word] = n
	return n, nil
}

// Count implements Counter.
func (o *Oracle) Count(words []string) (int, error) {
	return o.CountContext(context.Background(), words)
}

// CountContext implements ContextCounter.
func (o *Oracle) CountContext(ctx context.Context, words []string) (int, error) {
	total := 0
	for _, word := range words {
		n, err := o.SyllablesContext(ctx, word)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Known reports whether word resolves without error.
func (o *Oracle) Known(word string) bool {
	_, err := o.Syllables(word)
	return err == nil
}
