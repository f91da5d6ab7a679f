// ABOUTME: Journal storage layer that wraps the SQLite poem store
// ABOUTME: Entry point used by the CLI, the MCP server and cloud sync
package sqlite

import (
	"fmt"
	"sync"

	"github.com/harper/markov-haiku/internal/models"
)

// Storage manages the persistent haiku journal
type Storage struct {
	db    *DB
	poems *PoemStore
	mu    sync.RWMutex
}

// NewStorage opens the journal at the default XDG location
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath opens the journal at a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory journal (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:    db,
		poems: NewPoemStore(db),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// SavePoem stores a poem in the journal
func (s *Storage) SavePoem(poem *models.Poem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.poems.Save(poem); err != nil {
		return fmt.Errorf("failed to save poem: %w", err)
	}
	return nil
}

// SavePoems stores several poems, stopping at the first failure
func (s *Storage) SavePoems(poems []models.Poem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range poems {
		if err := s.poems.Save(&poems[i]); err != nil {
			return fmt.Errorf("failed to save poem %s: %w", poems[i].ID, err)
		}
	}
	return nil
}

// GetPoem returns a poem by ID, or nil when it does not exist
func (s *Storage) GetPoem(id string) (*models.Poem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.poems.GetByID(id)
}

// ListPoems returns up to limit poems, newest first
func (s *Storage) ListPoems(limit int) ([]models.Poem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.poems.List(limit)
}

// CountPoems returns the number of saved poems
func (s *Storage) CountPoems() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.poems.Count()
}

// DeletePoem removes a poem from the journal
func (s *Storage) DeletePoem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.poems.DeleteByID(id)
}
