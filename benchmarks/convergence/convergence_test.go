// ABOUTME: Tests for the convergence benchmark runner and metrics
// ABOUTME: Runs small batches against the built-in sample corpus
package convergence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/core"
	"github.com/harper/markov-haiku/internal/haiku"
	"github.com/harper/markov-haiku/internal/logging"
)

func newEngine(t *testing.T, maxSteps int) *core.Engine {
	t.Helper()
	cfg := &config.Config{
		Language:     "en",
		MaxSteps:     maxSteps,
		MaxSeedDraws: haiku.DefaultMaxSeedDraws,
		CacheModels:  true,
	}
	e, err := core.NewEngine(cfg, logging.Discard(), nil)
	require.NoError(t, err)
	return e
}

func TestRun_SampleCorpusConverges(t *testing.T) {
	runner := NewRunner(newEngine(t, haiku.DefaultMaxSteps), logging.Discard())
	runner.KeepTrials = true

	report, err := runner.Run(context.Background(), 100, 25)
	require.NoError(t, err)

	assert.Equal(t, 25, report.Runs)
	assert.Equal(t, 25, report.Passed)
	assert.Equal(t, 1.0, report.SuccessRate)
	assert.Equal(t, uint64(100), report.StartSeed)
	assert.Equal(t, "en", report.Lang)
	require.Len(t, report.Trials, 25)

	for i, trial := range report.Trials {
		assert.Equal(t, uint64(100+i), trial.Seed)
		assert.Len(t, trial.Lines, 3)
		// three lines take at least one step each
		assert.GreaterOrEqual(t, trial.Stats.Steps, 3)
	}
	assert.GreaterOrEqual(t, report.Steps.Mean, 3.0)
	assert.GreaterOrEqual(t, report.Steps.Max, report.Trials[0].Stats.Steps)
}

func TestRun_Deterministic(t *testing.T) {
	runner := NewRunner(newEngine(t, haiku.DefaultMaxSteps), logging.Discard())

	a, err := runner.Run(context.Background(), 1, 10)
	require.NoError(t, err)
	b, err := runner.Run(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, a.Steps, b.Steps)
	assert.Equal(t, a.Recoveries, b.Recoveries)
	assert.Equal(t, a.Backtracks, b.Backtracks)
	assert.Nil(t, a.Trials)
}

func TestRun_StepCapExhausts(t *testing.T) {
	// the second line starts empty and no sample word has seven syllables
	runner := NewRunner(newEngine(t, 1), logging.Discard())

	report, err := runner.Run(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Exhausted)
	assert.Equal(t, 0, report.Passed)
	assert.Equal(t, 0.0, report.SuccessRate)
	assert.Equal(t, Metric{}, report.Steps)
}

func TestRun_InvalidCount(t *testing.T) {
	runner := NewRunner(newEngine(t, haiku.DefaultMaxSteps), logging.Discard())
	_, err := runner.Run(context.Background(), 1, 0)
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	runner := NewRunner(newEngine(t, haiku.DefaultMaxSteps), logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, 1, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	trials := []Trial{
		{Status: StatusPass, Stats: haiku.Stats{Steps: 10, Recoveries: 1, Backtracks: 0}},
		{Status: StatusPass, Stats: haiku.Stats{Steps: 20, Recoveries: 3, Backtracks: 2}},
		{Status: StatusExhausted},
		{Status: StatusMiscount},
		{Status: StatusError},
	}

	var r Report
	Summarize(&r, trials)

	assert.Equal(t, 5, r.Runs)
	assert.Equal(t, 2, r.Passed)
	assert.Equal(t, 1, r.Exhausted)
	assert.Equal(t, 1, r.Miscounted)
	assert.Equal(t, 1, r.Errored)
	assert.InDelta(t, 0.4, r.SuccessRate, 1e-9)
	assert.Equal(t, Metric{Total: 30, Mean: 15, Max: 20}, r.Steps)
	assert.Equal(t, Metric{Total: 4, Mean: 2, Max: 3}, r.Recoveries)
	assert.Equal(t, Metric{Total: 2, Mean: 1, Max: 2}, r.Backtracks)
}

func TestSummarize_Empty(t *testing.T) {
	var r Report
	Summarize(&r, nil)
	assert.Equal(t, 0, r.Runs)
	assert.Equal(t, 0.0, r.SuccessRate)
}

func TestExportResults(t *testing.T) {
	runner := NewRunner(newEngine(t, haiku.DefaultMaxSteps), logging.Discard())
	report, err := runner.Run(context.Background(), 42, 3)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, ExportResults(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(3), decoded["runs"])
	assert.Equal(t, float64(42), decoded["start_seed"])
	assert.Contains(t, decoded, "steps")
}
