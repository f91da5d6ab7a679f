// ABOUTME: Remote haiku journal stored in a charm KV database
// ABOUTME: Entries are JSON poems keyed by ID; auth uses the SSH key charm manages
package charm

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"

	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/models"
)

const poemPrefix = "poem:"

// Settings select the charm server and KV database
type Settings struct {
	Host       string
	Database   string
	SyncOnOpen bool
}

// SettingsFrom reads charm settings from application config
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		Host:       cfg.CharmHost,
		Database:   cfg.CharmDBName,
		SyncOnOpen: cfg.AutoSync,
	}
}

// Remote is the cloud side of the journal. Writes stay local to the KV
// replica until Flush.
type Remote struct {
	mu       sync.Mutex
	db       *kv.KV
	settings Settings
}

// Open connects to the KV database named in s
func Open(s Settings) (*Remote, error) {
	// charm reads its server from the environment
	if err := os.Setenv("CHARM_HOST", s.Host); err != nil {
		return nil, fmt.Errorf("setting CHARM_HOST: %w", err)
	}

	db, err := kv.OpenWithDefaults(s.Database)
	if err != nil {
		return nil, fmt.Errorf("opening charm database %q: %w", s.Database, err)
	}

	if s.SyncOnOpen {
		if err := db.Sync(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initial sync: %w", err)
		}
	}
	return &Remote{db: db, settings: s}, nil
}

// Settings returns the settings the remote was opened with
func (r *Remote) Settings() Settings { return r.settings }

// UserID returns the charm account the local key belongs to
func (r *Remote) UserID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("charm client: %w", err)
	}
	return cc.ID()
}

// PutPoem stores p under its ID, replacing any previous copy
func (r *Remote) PutPoem(p models.Poem) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding poem %s: %w", p.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Set([]byte(poemKey(p.ID)), data)
}

// Poem fetches one poem by ID
func (r *Remote) Poem(id string) (*models.Poem, error) {
	r.mu.Lock()
	data, err := r.db.Get([]byte(poemKey(id)))
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("reading poem %s: %w", id, err)
	}

	var p models.Poem
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding poem %s: %w", id, err)
	}
	return &p, nil
}

// PoemIDs lists the IDs of every remote poem in sorted order
func (r *Remote) PoemIDs() ([]string, error) {
	r.mu.Lock()
	keys, err := r.db.Keys()
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}

	var ids []string
	for _, k := range keys {
		if id, ok := strings.CutPrefix(string(k), poemPrefix); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Flush exchanges pending changes with the charm server
func (r *Remote) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Sync()
}

// Close releases the local KV replica
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func poemKey(id string) string {
	return poemPrefix + id
}
