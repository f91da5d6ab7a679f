// ABOUTME: Stdio MCP server lifecycle shared by `haiku mcp` and cmd/server
// ABOUTME: Serves until the client disconnects or ctx is cancelled
package mcp

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/markov-haiku/internal/core"
	"github.com/harper/markov-haiku/internal/storage/sqlite"
)

// ServerName is announced to MCP clients
const ServerName = "Markov Haiku"

// NewServer builds an MCP server with every haiku tool registered
func NewServer(engine *core.Engine, journal *sqlite.Storage, version string) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer(ServerName, version)
	RegisterTools(server, engine, journal)
	return server
}

// Serve runs the server on stdio until it exits or ctx is done
func Serve(ctx context.Context, server *mcpserver.MCPServer, logger *log.Logger) error {
	logger.Info("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
