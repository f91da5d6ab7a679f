// ABOUTME: CLI command to generate haiku from a corpus
// ABOUTME: Prints text or JSON and optionally saves each poem to the journal
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/core"
	"github.com/harper/markov-haiku/internal/haiku"
	"github.com/harper/markov-haiku/internal/storage/sqlite"
)

type generateOptions struct {
	sources sourceFlags
	seed    uint64
	count   int
	save    bool
	stats   bool
}

// generatedPoem is the JSON shape of one generated haiku
type generatedPoem struct {
	ID         string   `json:"id,omitempty"`
	Seed       uint64   `json:"seed"`
	Lines      []string `json:"lines"`
	Syllables  []int    `json:"syllables"`
	Steps      int      `json:"steps,omitempty"`
	Recoveries int      `json:"recoveries,omitempty"`
	Backtracks int      `json:"backtracks,omitempty"`
}

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate haiku",
		Long: `Generate 5-7-5 haiku from a training corpus.

Without --corpus the built-in sample corpus is used. A run is fully
determined by the corpus and --seed; consecutive haiku in one run use
consecutive seeds.`,
		Example: `  haiku generate
  haiku generate --corpus moby-dick.txt --dict cmudict.dict --seed 42
  haiku generate --count 5 --save --stats
  haiku generate --lang ja --corpus basho.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	opts.sources.register(cmd)
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed (default: random)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "Number of haiku to generate")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Save generated haiku to the journal")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Show search statistics for each haiku")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	if err := validatePositiveInt(opts.count, "count"); err != nil {
		return err
	}

	cfg, err := loadConfig(func(cfg *config.Config) {
		opts.sources.apply(cmd, cfg)
		if cmd.Flags().Changed("seed") {
			cfg.Seed, cfg.SeedSet = opts.seed, true
		}
	})
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg)
	engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	var journal *sqlite.Storage
	if opts.save {
		journal, err = openJournal(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = journal.Close() }()
	}

	seed := core.NextSeed(cfg)
	results := make([]generatedPoem, 0, opts.count)

	for i := 0; i < opts.count; i++ {
		runSeed := seed + uint64(i)
		h, err := engine.Generate(cmd.Context(), runSeed)
		if err != nil {
			return fmt.Errorf("generating haiku (seed %d): %w", runSeed, err)
		}

		result := newGeneratedPoem(h, runSeed, opts.stats)
		if journal != nil {
			poem, err := engine.Poem(h, runSeed)
			if err != nil {
				return err
			}
			if err := journal.SavePoem(poem); err != nil {
				return err
			}
			result.ID = poem.ID
		}
		results = append(results, result)
	}

	if jsonOutput() {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		printPoem(cmd.OutOrStdout(), r, opts.stats)
	}
	if journal != nil && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d haiku to %s\n", len(results), journal.Path())
	}
	return nil
}

func newGeneratedPoem(h haiku.Haiku, seed uint64, withStats bool) generatedPoem {
	r := generatedPoem{Seed: seed, Lines: h.Strings()}
	for _, line := range h.Lines {
		r.Syllables = append(r.Syllables, line.Syllables)
	}
	if withStats {
		s := h.Stats()
		r.Steps, r.Recoveries, r.Backtracks = s.Steps, s.Recoveries, s.Backtracks
	}
	return r
}

func printPoem(w io.Writer, r generatedPoem, withStats bool) {
	for _, line := range r.Lines {
		fmt.Fprintln(w, line)
	}
	if withStats {
		fmt.Fprintf(w, "-- seed=%d steps=%d recoveries=%d backtracks=%d\n",
			r.Seed, r.Steps, r.Recoveries, r.Backtracks)
	}
}
