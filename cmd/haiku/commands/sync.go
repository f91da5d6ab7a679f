// ABOUTME: Sync commands for Charm cloud synchronization of the journal
// ABOUTME: Provides status, now, push and pull
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/markov-haiku/internal/charm"
	"github.com/harper/markov-haiku/internal/config"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the haiku journal with Charm cloud",
		Long: `Sync the haiku journal with Charm cloud.

The journal itself is a local SQLite database. Push copies every saved
haiku to your Charm KV store; pull copies haiku saved on your other
devices back into the local journal. Authentication uses the SSH key
charm manages for you.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncNowCmd())
	cmd.AddCommand(newSyncPushCmd())
	cmd.AddCommand(newSyncPullCmd())

	return cmd
}

func openCharm() (*charm.Remote, *config.Config, error) {
	cfg, err := loadConfig(nil)
	if err != nil {
		return nil, nil, err
	}
	remote, err := charm.Open(charm.SettingsFrom(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Charm: %w", err)
	}
	return remote, cfg, nil
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, cfg, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = remote.Close() }()

			out := cmd.OutOrStdout()
			id, err := remote.UserID()
			if err != nil {
				fmt.Fprintln(out, "Status: Not connected")
				fmt.Fprintf(out, "Reason: %v\n", err)
				return nil
			}

			ids, err := remote.PoemIDs()
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Status: Connected")
			fmt.Fprintf(out, "User ID: %s\n", id)
			fmt.Fprintf(out, "Host: %s\n", cfg.CharmHost)
			fmt.Fprintf(out, "Database: %s\n", cfg.CharmDBName)
			fmt.Fprintf(out, "Remote haiku: %d\n", len(ids))
			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, _, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = remote.Close() }()

			if err := remote.Flush(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			}
			return nil
		},
	}
}

func newSyncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload every local haiku to Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, cfg, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = remote.Close() }()

			journal, err := openJournal(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = journal.Close() }()

			n, err := charm.Push(journal, remote)
			if err != nil {
				return err
			}
			if err := remote.Flush(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d haiku\n", n)
			}
			return nil
		},
	}
}

func newSyncPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Import haiku from Charm cloud into the local journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, cfg, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = remote.Close() }()

			if err := remote.Flush(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			journal, err := openJournal(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = journal.Close() }()

			n, err := charm.Pull(journal, remote)
			if err != nil {
				return err
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d haiku\n", n)
			}
			return nil
		},
	}
}
