// ABOUTME: Markov transition tables keyed by one- or two-word prefixes
// ABOUTME: Successor lists keep one entry per occurrence, so frequency is implicit
package markov

import (
	"sort"
	"strings"
)

// Model maps a prefix key to every word that followed it in the corpus.
type Model map[string][]string

// Key joins prefix words with a single space.
func Key(words []string) string {
	return strings.Join(words, " ")
}

// Build returns the order-n table for tokens: for every i with a full prefix
// tokens[i:i+order] and a following token, tokens[i+order] is appended under
// that prefix. An order below 1 or too few tokens yields an empty model.
func Build(tokens []string, order int) Model {
	model := make(Model)
	if order < 1 {
		return model
	}
	for i := 0; i+order < len(tokens); i++ {
		key := Key(tokens[i : i+order])
		model[key] = append(model[key], tokens[i+order])
	}
	return model
}

// Successors returns the recorded successors of prefix, or nil when the
// prefix never occurred with a follower.
func (m Model) Successors(prefix []string) []string {
	return m[Key(prefix)]
}

// Prefixes returns the model's keys in sorted order.
func (m Model) Prefixes() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasEdge reports whether to was recorded after the prefix from.
func (m Model) HasEdge(from []string, to string) bool {
	for _, s := range m.Successors(from) {
		if s == to {
			return true
		}
	}
	return false
}
