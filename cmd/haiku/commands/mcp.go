// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Lets LLM agents generate haiku and count syllables via stdio
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/markov-haiku/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the haiku generator as an MCP (Model Context Protocol) server over
stdio, exposing the generate_haiku, count_syllables and list_haiku
tools to LLM agents.

Corpus and dictionary come from the same environment variables the
CLI reads (HAIKU_CORPUS, HAIKU_DICT, HAIKU_LANG, ...).`,
		Example: `  # Start MCP server (typically called by an MCP client)
  haiku mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "haiku": {
  #       "command": "haiku",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}

	// logs go to stderr; stdout belongs to the protocol
	logger := newLogger(cmd, cfg)

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	journal, err := openJournal(cfg)
	if err != nil {
		logger.Warn("journal unavailable, saving disabled", "err", err)
	} else {
		defer func() { _ = journal.Close() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcp.Serve(ctx, mcp.NewServer(engine, journal, versionInfo.Version), logger)
}
