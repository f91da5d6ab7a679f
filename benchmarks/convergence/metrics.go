// ABOUTME: Convergence metrics over a batch of haiku generations
// ABOUTME: Aggregates success rate and walk event counts from individual trials
package convergence

import (
	"time"

	"github.com/harper/markov-haiku/internal/haiku"
)

// Status values for a single trial
const (
	StatusPass      = "PASS"
	StatusExhausted = "EXHAUSTED"
	StatusMiscount  = "MISCOUNT"
	StatusError     = "ERROR"
)

// Trial is the outcome of generating one haiku from one seed
type Trial struct {
	Seed     uint64        `json:"seed"`
	Status   string        `json:"status"`
	Lines    []string      `json:"lines,omitempty"`
	Stats    haiku.Stats   `json:"stats"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Metric summarizes one walk event counter across passing trials
type Metric struct {
	Total int     `json:"total"`
	Mean  float64 `json:"mean"`
	Max   int     `json:"max"`
}

// Report is the aggregate of a benchmark run
type Report struct {
	Timestamp   string        `json:"timestamp"`
	Corpus      string        `json:"corpus"`
	Lang        string        `json:"lang"`
	StartSeed   uint64        `json:"start_seed"`
	Runs        int           `json:"runs"`
	Passed      int           `json:"passed"`
	Exhausted   int           `json:"exhausted"`
	Miscounted  int           `json:"miscounted"`
	Errored     int           `json:"errored"`
	SuccessRate float64       `json:"success_rate"`
	Steps       Metric        `json:"steps"`
	Recoveries  Metric        `json:"recoveries"`
	Backtracks  Metric        `json:"backtracks"`
	Duration    time.Duration `json:"duration_ns"`
	Trials      []Trial       `json:"trials,omitempty"`
}

// Summarize fills the aggregate counters of r from trials. Event metrics
// only cover passing trials; an exhausted walk has no meaningful totals.
func Summarize(r *Report, trials []Trial) {
	r.Runs = len(trials)
	r.Passed, r.Exhausted, r.Miscounted, r.Errored = 0, 0, 0, 0

	var steps, recoveries, backtracks []int
	for _, t := range trials {
		switch t.Status {
		case StatusPass:
			r.Passed++
			steps = append(steps, t.Stats.Steps)
			recoveries = append(recoveries, t.Stats.Recoveries)
			backtracks = append(backtracks, t.Stats.Backtracks)
		case StatusExhausted:
			r.Exhausted++
		case StatusMiscount:
			r.Miscounted++
		default:
			r.Errored++
		}
	}

	r.SuccessRate = 0
	if r.Runs > 0 {
		r.SuccessRate = float64(r.Passed) / float64(r.Runs)
	}
	r.Steps = summarize(steps)
	r.Recoveries = summarize(recoveries)
	r.Backtracks = summarize(backtracks)
}

func summarize(values []int) Metric {
	var m Metric
	for _, v := range values {
		m.Total += v
		if v > m.Max {
			m.Max = v
		}
	}
	if len(values) > 0 {
		m.Mean = float64(m.Total) / float64(len(values))
	}
	return m
}
