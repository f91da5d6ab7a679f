// ABOUTME: Standalone MCP server for the haiku generator over stdio
// ABOUTME: Loads config, corpus and journal, then serves until the client disconnects
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/core"
	"github.com/harper/markov-haiku/internal/llm"
	"github.com/harper/markov-haiku/internal/logging"
	"github.com/harper/markov-haiku/internal/mcp"
	"github.com/harper/markov-haiku/internal/storage/sqlite"
	"github.com/harper/markov-haiku/internal/syllable"
)

const version = "0.1.0"

func main() {
	// stdout belongs to the protocol
	logger := logging.New(os.Stderr, "info")

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	var resolver syllable.Resolver
	if cfg.OpenAIKey != "" && cfg.Language == "en" {
		client, err := llm.NewOpenAIClientWithConfig(llm.ConfigFrom(cfg))
		if err != nil {
			logger.Warn("OpenAI resolver disabled", "err", err)
		} else {
			resolver = client
		}
	} else {
		logger.Debug("OPENAI_API_KEY not set, unknown words will fail to count")
	}

	engine, err := core.NewEngine(cfg, logger, resolver)
	if err != nil {
		logger.Fatal("failed to build engine", "err", err)
	}

	path := sqlite.DefaultDBPath()
	if cfg.DataDir != "" {
		path = sqlite.DBPath(cfg.DataDir)
	}
	journal, err := sqlite.NewStorageWithPath(path)
	if err != nil {
		logger.Fatal("failed to open journal", "path", path, "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = mcp.Serve(ctx, mcp.NewServer(engine, journal, version), logger)
	stop()
	_ = journal.Close()
	if err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
