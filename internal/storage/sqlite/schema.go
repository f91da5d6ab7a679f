// ABOUTME: SQLite database schema for the haiku journal
// ABOUTME: One row per saved poem, lines kept in their own columns
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Saved poems
CREATE TABLE IF NOT EXISTS poems (
    id TEXT PRIMARY KEY,
    seed TEXT NOT NULL,
    corpus TEXT NOT NULL DEFAULT '',
    lang TEXT NOT NULL DEFAULT 'en',
    line1 TEXT NOT NULL,
    line2 TEXT NOT NULL,
    line3 TEXT NOT NULL,
    syllables TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poems_created ON poems(created_at);
CREATE INDEX IF NOT EXISTS idx_poems_corpus ON poems(corpus);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
