// ABOUTME: CLI command to browse the haiku journal
// ABOUTME: Lists saved haiku newest first, or shows one by ID
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/markov-haiku/internal/models"
)

var historyLimit int

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List saved haiku",
		Long: `List haiku saved with 'haiku generate --save', newest first.

Give an ID to print one haiku in full. The journal lives in the XDG data
directory unless HAIKU_DATA_DIR is set.`,
		Example: `  haiku history
  haiku history --limit 5 --format json
  haiku history 3f0c2a7e-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum number of haiku to list")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(historyLimit, "limit"); err != nil {
		return err
	}

	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	journal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = journal.Close() }()

	if len(args) == 1 {
		poem, err := journal.GetPoem(args[0])
		if err != nil {
			return err
		}
		if poem == nil {
			return fmt.Errorf("no haiku with id %s", args[0])
		}
		return printJournalPoem(cmd, poem)
	}

	poems, err := journal.ListPoems(historyLimit)
	if err != nil {
		return err
	}

	if jsonOutput() {
		if poems == nil {
			poems = []models.Poem{}
		}
		data, err := json.MarshalIndent(poems, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if len(poems) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No haiku saved yet")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CREATED\tPATTERN\tSEED\tFIRST LINE\tID\n")
	fmt.Fprintf(w, "-------\t-------\t----\t----------\t--\n")
	for _, p := range poems {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			formatTime(p.CreatedAt), p.Pattern(), p.Seed, truncate(p.Lines[0], 30), p.ID)
	}
	_ = w.Flush()

	if !quiet {
		total, err := journal.CountPoems()
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d haiku\n", len(poems), total)
		}
	}
	return nil
}

func printJournalPoem(cmd *cobra.Command, poem *models.Poem) error {
	if jsonOutput() {
		data, err := json.MarshalIndent(poem, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), poem.Text())
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s  seed %d  %s (%s)  %s\n",
			poem.Pattern(), poem.Seed, poem.Corpus, poem.Lang, poem.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
