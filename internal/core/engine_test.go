// ABOUTME: Tests for the generation engine assembled from configuration
// ABOUTME: Covers English and Japanese setup, journal conversion and word sampling
package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/corpus"
	"github.com/harper/markov-haiku/internal/haiku"
	"github.com/harper/markov-haiku/internal/logging"
	"github.com/harper/markov-haiku/internal/syllable"
)

func testConfig() *config.Config {
	return &config.Config{
		Language:     "en",
		MaxSteps:     haiku.DefaultMaxSteps,
		MaxSeedDraws: haiku.DefaultMaxSeedDraws,
		CacheModels:  true,
	}
}

func TestNewEngine_SampleCorpus(t *testing.T) {
	e, err := NewEngine(testConfig(), logging.Discard(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, e.Tokens())
	assert.Equal(t, corpus.SampleName, e.CorpusName())

	h, err := e.Generate(context.Background(), 7)
	require.NoError(t, err)
	for i, line := range h.Lines {
		assert.Equal(t, haiku.Targets[i], line.Syllables)
	}

	again, err := e.Generate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, h.Strings(), again.Strings())

	// both orders are memoized across generations
	assert.Equal(t, 2, e.Chain().Builds())
}

func TestNewEngine_RequiresLogger(t *testing.T) {
	_, err := NewEngine(testConfig(), nil, nil)
	assert.Error(t, err)
}

func TestNewEngine_MissingCorpus(t *testing.T) {
	cfg := testConfig()
	cfg.CorpusPath = filepath.Join(t.TempDir(), "missing.txt")

	_, err := NewEngine(cfg, logging.Discard(), nil)
	assert.Error(t, err)
}

func TestNewEngine_EmptyCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  \n"), 0o644))

	cfg := testConfig()
	cfg.CorpusPath = path

	_, err := NewEngine(cfg, logging.Discard(), nil)
	assert.True(t, errors.Is(err, corpus.ErrEmptyCorpus))
}

func TestNewEngine_DictionaryAndOverrides(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "corpus.txt")
	dictPath := filepath.Join(dir, "cmudict.txt")
	overridesPath := filepath.Join(dir, "overrides.yaml")

	require.NoError(t, os.WriteFile(corpusPath, []byte("the glorp sat\n"), 0o644))
	require.NoError(t, os.WriteFile(dictPath, []byte("THE  DH AH0\nSAT  S AE1 T\n"), 0o644))
	require.NoError(t, os.WriteFile(overridesPath, []byte("glorp: 2\n"), 0o644))

	cfg := testConfig()
	cfg.CorpusPath = corpusPath
	cfg.DictPath = dictPath
	cfg.OverridesPath = overridesPath

	e, err := NewEngine(cfg, logging.Discard(), nil)
	require.NoError(t, err)

	words, n, err := e.CountText(context.Background(), "The glorp sat.")
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "glorp", "sat"}, words)
	assert.Equal(t, 4, n)

	// embedded overrides survive the merge
	_, n, err = e.CountText(context.Background(), "haiku")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// the user dictionary replaces the embedded lexicon
	_, _, err = e.CountText(context.Background(), "coding")
	assert.True(t, errors.Is(err, syllable.ErrLookupFailure))
}

type stubResolver map[string]int

func (s stubResolver) Syllables(_ context.Context, word string) (int, error) {
	if n, ok := s[word]; ok {
		return n, nil
	}
	return 0, &syllable.LookupError{Word: word}
}

func TestNewEngine_Resolver(t *testing.T) {
	e, err := NewEngine(testConfig(), logging.Discard(), stubResolver{"zyzzyva": 3})
	require.NoError(t, err)

	_, n, err := e.CountText(context.Background(), "zyzzyva")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEngine_Poem(t *testing.T) {
	e, err := NewEngine(testConfig(), logging.Discard(), nil)
	require.NoError(t, err)

	h, err := e.Generate(context.Background(), 11)
	require.NoError(t, err)

	poem, err := e.Poem(h, 11)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), poem.Seed)
	assert.Equal(t, "sample", poem.Corpus)
	assert.Equal(t, "en", poem.Lang)
	assert.Equal(t, h.Strings(), poem.Lines)
	assert.Equal(t, []int{5, 7, 5}, poem.Syllables)
}

func TestEngine_SampleWords(t *testing.T) {
	e, err := NewEngine(testConfig(), logging.Discard(), nil)
	require.NoError(t, err)

	words := e.SampleWords(5, 3)
	require.Len(t, words, 5)
	for _, w := range words {
		_, n, err := e.CountText(context.Background(), w.Word)
		require.NoError(t, err)
		assert.Equal(t, n, w.Syllables)
	}

	assert.Equal(t, words, e.SampleWords(5, 3))
	assert.Empty(t, e.SampleWords(0, 3))
}

func TestEngine_JapaneseCorpus(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the IPA dictionary")
	}

	path := filepath.Join(t.TempDir(), "ja.txt")
	require.NoError(t, os.WriteFile(path, []byte("古池や蛙飛び込む水の音\n"), 0o644))

	cfg := testConfig()
	cfg.Language = "ja"
	cfg.CorpusPath = path

	e, err := NewEngine(cfg, logging.Discard(), nil)
	require.NoError(t, err)
	assert.Contains(t, e.Tokens(), "水")

	_, n, err := e.CountText(context.Background(), "水")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNextSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Seed, cfg.SeedSet = 99, true
	assert.Equal(t, uint64(99), NextSeed(cfg))
}
