// ABOUTME: Poem storage operations for SQLite
// ABOUTME: Implements save, lookup and listing of journal entries
package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harper/markov-haiku/internal/models"
)

// PoemStore handles poem persistence
type PoemStore struct {
	db *DB
}

// NewPoemStore creates a new PoemStore
func NewPoemStore(db *DB) *PoemStore {
	return &PoemStore{db: db}
}

const poemColumns = `id, seed, corpus, lang, line1, line2, line3, syllables, created_at`

// Save inserts a poem, replacing any existing row with the same ID
func (s *PoemStore) Save(poem *models.Poem) error {
	if len(poem.Lines) != models.LineCount {
		return fmt.Errorf("poem %s has %d lines, want %d", poem.ID, len(poem.Lines), models.LineCount)
	}

	createdAt := poem.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO poems (`+poemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			seed = excluded.seed,
			corpus = excluded.corpus,
			lang = excluded.lang,
			line1 = excluded.line1,
			line2 = excluded.line2,
			line3 = excluded.line3,
			syllables = excluded.syllables
	`, poem.ID, strconv.FormatUint(poem.Seed, 10), poem.Corpus, poem.Lang,
		poem.Lines[0], poem.Lines[1], poem.Lines[2],
		encodeSyllables(poem.Syllables), createdAt)

	return err
}

// GetByID retrieves a poem by its ID, or nil if there is none
func (s *PoemStore) GetByID(id string) (*models.Poem, error) {
	row := s.db.QueryRow(`SELECT `+poemColumns+` FROM poems WHERE id = ?`, id)

	poem, err := scanPoem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return poem, nil
}

// List returns up to limit poems, newest first. A limit <= 0 returns all.
func (s *PoemStore) List(limit int) ([]models.Poem, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT `+poemColumns+`
		FROM poems
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var poems []models.Poem
	for rows.Next() {
		poem, err := scanPoem(rows)
		if err != nil {
			return nil, err
		}
		poems = append(poems, *poem)
	}
	return poems, rows.Err()
}

// Count returns the number of saved poems
func (s *PoemStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM poems`).Scan(&n)
	return n, err
}

// DeleteByID deletes a poem by its ID
func (s *PoemStore) DeleteByID(id string) error {
	_, err := s.db.Exec("DELETE FROM poems WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoem(row rowScanner) (*models.Poem, error) {
	var (
		poem      models.Poem
		seed      string
		syllables string
		lines     [models.LineCount]string
	)

	err := row.Scan(&poem.ID, &seed, &poem.Corpus, &poem.Lang,
		&lines[0], &lines[1], &lines[2], &syllables, &poem.CreatedAt)
	if err != nil {
		return nil, err
	}

	poem.Seed, err = strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("poem %s: bad seed %q: %w", poem.ID, seed, err)
	}
	poem.Syllables, err = decodeSyllables(syllables)
	if err != nil {
		return nil, fmt.Errorf("poem %s: %w", poem.ID, err)
	}
	poem.Lines = lines[:]

	return &poem, nil
}

// encodeSyllables stores counts as "5,7,5"
func encodeSyllables(counts []int) string {
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func decodeSyllables(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	counts := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad syllable count %q: %w", p, err)
		}
		counts[i] = n
	}
	return counts, nil
}
