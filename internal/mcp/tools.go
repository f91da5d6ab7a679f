// ABOUTME: MCP tool definitions and registration for the haiku server
// ABOUTME: Defines JSON schemas for generate_haiku, count_syllables and list_haiku
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/markov-haiku/internal/core"
	"github.com/harper/markov-haiku/internal/storage/sqlite"
)

// MaxBatch caps how many haiku one generate_haiku call may request
const MaxBatch = 10

// RegisterTools registers all MCP tools with the server. The journal may be
// nil, in which case saving and listing report an error to the caller.
func RegisterTools(server *mcpserver.MCPServer, engine *core.Engine, journal *sqlite.Storage) *Handlers {
	handlers := NewHandlers(engine, journal)

	server.AddTool(mcp.Tool{
		Name:        "generate_haiku",
		Description: "Generate 5-7-5 haiku from the loaded corpus with a Markov chain. The same seed always yields the same haiku.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"seed": map[string]any{
					"type":        "number",
					"description": "Random seed; omit for a random one",
				},
				"count": map[string]any{
					"type":        "number",
					"description": "Number of haiku to generate (default: 1, max: 10)",
					"default":     1,
				},
				"save": map[string]any{
					"type":        "boolean",
					"description": "Save the generated haiku to the journal",
					"default":     false,
				},
			},
		},
	}, handlers.GenerateHaiku)

	server.AddTool(mcp.Tool{
		Name:        "count_syllables",
		Description: "Count the syllables (or morae for Japanese) in a piece of text using the generator's own counter.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Text to count",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.CountSyllables)

	server.AddTool(mcp.Tool{
		Name:        "list_haiku",
		Description: "List saved haiku from the journal, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"limit": map[string]any{
					"type":        "number",
					"description": "Maximum number of haiku to return (default: 10)",
					"default":     10,
				},
			},
		},
	}, handlers.ListHaiku)

	return handlers
}
