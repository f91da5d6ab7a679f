// ABOUTME: Benchmark runner that generates haiku over consecutive seeds
// ABOUTME: Classifies each trial and exports the aggregate report as JSON
package convergence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harper/markov-haiku/internal/core"
	"github.com/harper/markov-haiku/internal/haiku"
)

// Runner executes convergence benchmarks against one engine
type Runner struct {
	engine *core.Engine
	logger *log.Logger

	// KeepTrials includes every trial in the report, not just the aggregate
	KeepTrials bool
}

// NewRunner creates a runner for engine
func NewRunner(engine *core.Engine, logger *log.Logger) *Runner {
	return &Runner{engine: engine, logger: logger}
}

// Run generates n haiku from seeds start, start+1, ... and reports how
// many met the 5-7-5 targets. Cancelling ctx stops the run early with an error.
func (r *Runner) Run(ctx context.Context, start uint64, n int) (*Report, error) {
	if n < 1 {
		return nil, fmt.Errorf("runs must be positive, got %d", n)
	}

	cfg := r.engine.Config()
	report := &Report{
		Timestamp: time.Now().Format(time.RFC3339),
		Corpus:    r.engine.CorpusName(),
		Lang:      cfg.Language,
		StartSeed: start,
	}

	began := time.Now()
	trials := make([]Trial, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("benchmark cancelled after %d runs: %w", i, err)
		}
		trial := r.RunTrial(ctx, start+uint64(i))
		r.logger.Debug("trial finished", "seed", trial.Seed, "status", trial.Status,
			"steps", trial.Stats.Steps, "recoveries", trial.Stats.Recoveries)
		trials = append(trials, trial)
	}
	report.Duration = time.Since(began)

	Summarize(report, trials)
	if r.KeepTrials {
		report.Trials = trials
	}
	return report, nil
}

// RunTrial generates one haiku and classifies the outcome
func (r *Runner) RunTrial(ctx context.Context, seed uint64) Trial {
	trial := Trial{Seed: seed}

	began := time.Now()
	h, err := r.engine.Generate(ctx, seed)
	trial.Duration = time.Since(began)

	switch {
	case errors.Is(err, haiku.ErrExhausted):
		trial.Status = StatusExhausted
		trial.Error = err.Error()
		return trial
	case err != nil:
		trial.Status = StatusError
		trial.Error = err.Error()
		return trial
	}

	trial.Lines = h.Strings()
	trial.Stats = h.Stats()
	trial.Status = StatusPass
	for i, line := range h.Lines {
		if line.Syllables != haiku.Targets[i] {
			trial.Status = StatusMiscount
			trial.Error = fmt.Sprintf("line %d has %d syllables, want %d",
				i+1, line.Syllables, haiku.Targets[i])
			break
		}
	}
	return trial
}

// ExportResults writes the report as indented JSON
func ExportResults(report *Report, outputPath string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}
