// ABOUTME: CLI command to count syllables with the generator's own counter
// ABOUTME: Counts given words, or samples random corpus words with --sample
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/core"
)

type syllablesOptions struct {
	sources sourceFlags
	sample  int
	seed    uint64
}

// NewSyllablesCmd creates the syllables command
func NewSyllablesCmd() *cobra.Command {
	opts := &syllablesOptions{}

	cmd := &cobra.Command{
		Use:   "syllables [words...]",
		Short: "Count syllables in words",
		Long: `Count syllables (or morae for --lang ja) using the same counter
the generator uses: the override table, then the pronouncing dictionary,
then the OpenAI resolver when OPENAI_API_KEY is set.

With --sample N, N random words are drawn from the corpus instead;
words no source can resolve are skipped.`,
		Example: `  haiku syllables old silent pond
  haiku syllables --dict cmudict.dict "the moon is bright"
  haiku syllables --sample 10 --corpus moby-dick.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSyllables(cmd, opts, args)
		},
	}

	opts.sources.register(cmd)
	cmd.Flags().IntVar(&opts.sample, "sample", 0, "Count N random corpus words instead of arguments")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed for --sample (default: random)")

	return cmd
}

func runSyllables(cmd *cobra.Command, opts *syllablesOptions, args []string) error {
	if opts.sample == 0 && len(args) == 0 {
		return errors.New("give words to count or use --sample N")
	}
	if opts.sample < 0 {
		return fmt.Errorf("sample must be positive, got %d", opts.sample)
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
	engine, err := newEngine(cfg, newLogger(cmd, cfg))
	if err != nil {
		return err
	}

	var rows []core.WordCount
	if opts.sample > 0 {
		rows = engine.SampleWords(opts.sample, core.NextSeed(cfg))
	} else {
		rows = countWords(cmd.Context(), engine, strings.Join(args, " "))
	}

	return printCounts(cmd, rows)
}

// countWords counts each word on its own; Syllables is -1 for unknown words
func countWords(ctx context.Context, engine *core.Engine, text string) []core.WordCount {
	words := engine.Normalize(text)
	rows := make([]core.WordCount, 0, len(words))
	for _, w := range words {
		_, n, err := engine.CountText(ctx, w)
		if err != nil {
			n = -1
		}
		rows = append(rows, core.WordCount{Word: w, Syllables: n})
	}
	return rows
}

func printCounts(cmd *cobra.Command, rows []core.WordCount) error {
	if jsonOutput() {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	total, unknown := 0, 0
	for _, r := range rows {
		if r.Syllables < 0 {
			unknown++
			fmt.Fprintf(w, "%s\t?\n", r.Word)
			continue
		}
		total += r.Syllables
		fmt.Fprintf(w, "%s\t%d\n", r.Word, r.Syllables)
	}
	_ = w.Flush()

	if !quiet {
		if unknown > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d syllable(s), %d unknown word(s)\n", total, unknown)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d syllable(s)\n", total)
		}
	}
	return nil
}
