// ABOUTME: Moves journal entries between the local SQLite journal and charm KV
// ABOUTME: Push uploads every local poem, Pull imports every remote one
package charm

import (
	"fmt"

	"github.com/harper/markov-haiku/internal/models"
)

// Store is the remote side of a sync
type Store interface {
	PutPoem(p models.Poem) error
	Poem(id string) (*models.Poem, error)
	PoemIDs() ([]string, error)
}

// Journal is the local side of a sync
type Journal interface {
	ListPoems(limit int) ([]models.Poem, error)
	SavePoems(poems []models.Poem) error
}

// Push uploads every local poem and returns how many were written
func Push(journal Journal, store Store) (int, error) {
	poems, err := journal.ListPoems(0)
	if err != nil {
		return 0, fmt.Errorf("listing local poems: %w", err)
	}

	for i, p := range poems {
		if err := store.PutPoem(p); err != nil {
			return i, fmt.Errorf("pushing poem %s: %w", p.ID, err)
		}
	}
	return len(poems), nil
}

// Pull imports every remote poem into the local journal and returns how
// many were imported. Local entries with the same ID are overwritten;
// remote entries that are not three lines are skipped.
func Pull(journal Journal, store Store) (int, error) {
	ids, err := store.PoemIDs()
	if err != nil {
		return 0, err
	}

	poems := make([]models.Poem, 0, len(ids))
	for _, id := range ids {
		p, err := store.Poem(id)
		if err != nil {
			return 0, err
		}
		if len(p.Lines) != models.LineCount {
			continue
		}
		poems = append(poems, *p)
	}

	if err := journal.SavePoems(poems); err != nil {
		return 0, err
	}
	return len(poems), nil
}
