// ABOUTME: CLI command to inspect the Markov chain built from a corpus
// ABOUTME: Prints the whole order-1 or order-2 table, or one prefix's successors
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/markov"
)

type modelOptions struct {
	sources sourceFlags
	order   int
	prefix  string
}

// NewModelCmd creates the model command
func NewModelCmd() *cobra.Command {
	opts := &modelOptions{}

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Show the Markov chain built from a corpus",
		Long: `Show the Markov chain built from a corpus.

Each prefix (one word for order 1, two words for order 2) is listed with
every word that followed it in the corpus. Repeated successors are kept,
so their frequency is visible.`,
		Example: `  haiku model --order 2
  haiku model --prefix "time"
  haiku model --order 2 --prefix "an illusion" --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModel(cmd, opts)
		},
	}

	opts.sources.register(cmd)
	cmd.Flags().IntVar(&opts.order, "order", 1, "Chain order: 1 or 2")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Only show successors of this prefix")

	return cmd
}

func runModel(cmd *cobra.Command, opts *modelOptions) error {
	if opts.order != 1 && opts.order != 2 {
		return fmt.Errorf("order must be 1 or 2, got %d", opts.order)
	}

	cfg, err := loadConfig(func(cfg *config.Config) { opts.sources.apply(cmd, cfg) })
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg, newLogger(cmd, cfg))
	if err != nil {
		return err
	}

	model := engine.Chain().Model(opts.order)

	if opts.prefix != "" {
		words := engine.Normalize(opts.prefix)
		if len(words) != opts.order {
			return fmt.Errorf("prefix %q has %d words, order %d needs %d", opts.prefix, len(words), opts.order, opts.order)
		}
		return printSuccessors(cmd, markov.Key(words), model.Successors(words))
	}

	if jsonOutput() {
		data, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	for _, key := range model.Prefixes() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", key, strings.Join(model[key], ", "))
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%d prefixes from %d tokens\n", len(model), len(engine.Tokens()))
	}
	return nil
}

func printSuccessors(cmd *cobra.Command, key string, successors []string) error {
	if jsonOutput() {
		data, err := json.MarshalIndent(map[string][]string{key: successors}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if len(successors) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No successors for %q\n", key)
		}
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", key, strings.Join(successors, ", "))
	return nil
}
