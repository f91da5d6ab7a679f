// ABOUTME: MCP tool handler implementations for the haiku server
// ABOUTME: Tool failures are returned as error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/markov-haiku/internal/core"
	"github.com/harper/markov-haiku/internal/storage/sqlite"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine  *core.Engine
	journal *sqlite.Storage
}

// NewHandlers creates handlers over an engine and an optional journal
func NewHandlers(engine *core.Engine, journal *sqlite.Storage) *Handlers {
	return &Handlers{engine: engine, journal: journal}
}

// GeneratedHaiku is one entry of a generate_haiku response
type GeneratedHaiku struct {
	ID         string   `json:"id,omitempty"`
	Seed       uint64   `json:"seed"`
	Lines      []string `json:"lines"`
	Syllables  []int    `json:"syllables"`
	Steps      int      `json:"steps"`
	Recoveries int      `json:"recoveries"`
	Backtracks int      `json:"backtracks"`
}

// GenerateHaiku handles the generate_haiku tool
func (h *Handlers) GenerateHaiku(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count := request.GetInt("count", 1)
	if count < 1 || count > MaxBatch {
		return mcp.NewToolResultError(fmt.Sprintf("count must be between 1 and %d", MaxBatch)), nil
	}

	save := request.GetBool("save", false)
	if save && h.journal == nil {
		return mcp.NewToolResultError("journal is not available"), nil
	}

	seed := core.NextSeed(h.engine.Config())
	if s := request.GetInt("seed", -1); s >= 0 {
		seed = uint64(s)
	}

	results := make([]GeneratedHaiku, 0, count)
	for i := 0; i < count; i++ {
		runSeed := seed + uint64(i)
		poem, err := h.engine.Generate(ctx, runSeed)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("generation failed for seed %d: %v", runSeed, err)), nil
		}

		stats := poem.Stats()
		entry := GeneratedHaiku{
			Seed:       runSeed,
			Lines:      poem.Strings(),
			Steps:      stats.Steps,
			Recoveries: stats.Recoveries,
			Backtracks: stats.Backtracks,
		}
		for _, line := range poem.Lines {
			entry.Syllables = append(entry.Syllables, line.Syllables)
		}

		if save {
			record, err := h.engine.Poem(poem, runSeed)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to build journal entry: %v", err)), nil
			}
			if err := h.journal.SavePoem(record); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to save haiku: %v", err)), nil
			}
			entry.ID = record.ID
		}

		results = append(results, entry)
	}

	return jsonResult(map[string]any{
		"corpus": h.engine.CorpusName(),
		"haiku":  results,
	})
}

// CountSyllables handles the count_syllables tool
func (h *Handlers) CountSyllables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	words, n, err := h.engine.CountText(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot count %q: %v", text, err)), nil
	}

	return jsonResult(map[string]any{
		"words":     words,
		"syllables": n,
	})
}

// ListHaiku handles the list_haiku tool
func (h *Handlers) ListHaiku(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.journal == nil {
		return mcp.NewToolResultError("journal is not available"), nil
	}

	limit := request.GetInt("limit", 10)

	poems, err := h.journal.ListPoems(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list haiku: %v", err)), nil
	}
	total, err := h.journal.CountPoems()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count haiku: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"poems": poems,
		"total": total,
	})
}

func jsonResult(response any) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
