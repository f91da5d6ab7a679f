// ABOUTME: Engine assembles corpus, syllable counter and Markov chain from config
// ABOUTME: Shared entry point for the CLI, the MCP server and the benchmark runner
package core

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/corpus"
	"github.com/harper/markov-haiku/internal/haiku"
	"github.com/harper/markov-haiku/internal/markov"
	"github.com/harper/markov-haiku/internal/models"
	"github.com/harper/markov-haiku/internal/syllable"
)

// sampleDrawsPerWord bounds SampleWords when most corpus words are unresolvable
const sampleDrawsPerWord = 100

// Engine holds everything needed to generate haiku from one corpus.
// It is safe for concurrent use; each generation gets its own Generator.
type Engine struct {
	cfg        *config.Config
	logger     *log.Logger
	normalizer corpus.Normalizer
	counter    syllable.Counter
	tokens     []string
	chain      *markov.Chain
}

// WordCount pairs a word with its syllable count
type WordCount struct {
	Word      string `json:"word"`
	Syllables int    `json:"syllables"`
}

// NewEngine loads the corpus and syllable sources named in cfg. The resolver
// is optional and only consulted for English corpora.
func NewEngine(cfg *config.Config, logger *log.Logger, resolver syllable.Resolver) (*Engine, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	e := &Engine{cfg: cfg, logger: logger}

	switch cfg.Language {
	case "ja":
		jp, err := syllable.NewJapanese()
		if err != nil {
			return nil, err
		}
		e.normalizer = jp
		e.counter = jp
	default:
		oracle, err := newOracle(cfg, logger, resolver)
		if err != nil {
			return nil, err
		}
		e.normalizer = syllable.English{}
		e.counter = oracle
	}

	tokens, err := corpus.Prepare(cfg.CorpusPath, e.normalizer, logger)
	if err != nil {
		return nil, err
	}
	e.tokens = tokens

	var opts []markov.ChainOption
	if cfg.CacheModels {
		opts = append(opts, markov.WithCache())
	}
	e.chain = markov.NewChain(tokens, opts...)

	return e, nil
}

func newOracle(cfg *config.Config, logger *log.Logger, resolver syllable.Resolver) (*syllable.Oracle, error) {
	opts := []syllable.Option{syllable.WithLogger(logger)}

	if cfg.DictPath != "" {
		dict, err := syllable.LoadCMUDict(cfg.DictPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("pronouncing dictionary loaded", "path", cfg.DictPath, "words", len(dict))
		opts = append(opts, syllable.WithDictionary(dict))
	}

	if cfg.OverridesPath != "" {
		extra, err := syllable.LoadTable(cfg.OverridesPath)
		if err != nil {
			return nil, err
		}
		merged := syllable.Overrides()
		for w, n := range extra {
			merged[w] = n
		}
		opts = append(opts, syllable.WithOverrides(merged))
	}

	if resolver != nil {
		opts = append(opts, syllable.WithResolver(resolver))
	}

	return syllable.NewOracle(opts...), nil
}

// Config returns the configuration the engine was built from
func (e *Engine) Config() *config.Config { return e.cfg }

// Tokens returns the prepared corpus
func (e *Engine) Tokens() []string { return e.tokens }

// Chain returns the Markov chain over the corpus
func (e *Engine) Chain() *markov.Chain { return e.chain }

// Counter returns the syllable counter for the corpus language
func (e *Engine) Counter() syllable.Counter { return e.counter }

// CorpusName returns the corpus path, or the sample corpus name
func (e *Engine) CorpusName() string {
	if e.cfg.CorpusPath == "" {
		return corpus.SampleName
	}
	return e.cfg.CorpusPath
}

// NewGenerator returns a generator seeded with seed
func (e *Engine) NewGenerator(seed uint64) (*haiku.Generator, error) {
	return haiku.New(e.chain, e.counter,
		haiku.WithSeed(seed),
		haiku.WithLogger(e.logger),
		haiku.WithMaxSteps(e.cfg.MaxSteps),
		haiku.WithMaxSeedDraws(e.cfg.MaxSeedDraws),
	)
}

// Generate produces one haiku for seed
func (e *Engine) Generate(ctx context.Context, seed uint64) (haiku.Haiku, error) {
	g, err := e.NewGenerator(seed)
	if err != nil {
		return haiku.Haiku{}, err
	}
	return g.GenerateContext(ctx)
}

// Poem converts a generated haiku into a journal entry
func (e *Engine) Poem(h haiku.Haiku, seed uint64) (*models.Poem, error) {
	counts := make([]int, len(h.Lines))
	for i, line := range h.Lines {
		counts[i] = line.Syllables
	}
	return models.NewPoem(seed, e.CorpusName(), e.cfg.Language, h.Strings(), counts)
}

// Normalize splits text into words the way the corpus was split
func (e *Engine) Normalize(text string) []string {
	return e.normalizer.Normalize(text)
}

// CountText normalizes text the way the corpus is normalized and counts it.
// Words the counter cannot resolve are reported through the error.
func (e *Engine) CountText(ctx context.Context, text string) ([]string, int, error) {
	words := e.normalizer.Normalize(text)
	n, err := syllable.CountContext(ctx, e.counter, words)
	return words, n, err
}

// SampleWords draws up to n random corpus words with their syllable counts,
// skipping words the counter cannot resolve.
func (e *Engine) SampleWords(n int, seed uint64) []WordCount {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	out := make([]WordCount, 0, n)
	for draws := 0; len(out) < n && draws < n*sampleDrawsPerWord; draws++ {
		word := e.tokens[rng.IntN(len(e.tokens))]
		count, err := e.counter.Count([]string{word})
		if err != nil {
			e.logger.Debug("skipping unresolvable word", "word", word)
			continue
		}
		out = append(out, WordCount{Word: word, Syllables: count})
	}
	return out
}

// NextSeed returns the configured seed, or a random one when none was set
func NextSeed(cfg *config.Config) uint64 {
	if cfg.SeedSet {
		return cfg.Seed
	}
	return rand.Uint64()
}
