// ABOUTME: Root command and global flags for the haiku CLI
// ABOUTME: Registers every subcommand and enforces --verbose/--quiet exclusivity
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
█ █ ▄▀█ █ █▄▀ █ █
█▀█ █▀█ █ █ █ █▄█
`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "haiku",
		Short: "Markov-chain haiku generator",
		Long: banner + `
Generate 5-7-5 haiku from any text with a Markov chain.

Each line is walked word by word through order-1 and order-2 chains
built from the training corpus, backtracking and re-seeding whenever
the chain cannot land on the exact syllable count.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only show errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json, text")

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewModelCmd())
	cmd.AddCommand(NewSyllablesCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
