// ABOUTME: Tests for journal push and pull against an in-memory KV store
// ABOUTME: Uses an in-memory SQLite journal as the local side
package charm

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/harper/markov-haiku/internal/models"
	"github.com/harper/markov-haiku/internal/storage/sqlite"
)

type memoryStore struct {
	data    map[string][]byte
	failPut bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) PutPoem(p models.Poem) error {
	if m.failPut {
		return errors.New("offline")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	m.data[poemKey(p.ID)] = raw
	return nil
}

func (m *memoryStore) Poem(id string) (*models.Poem, error) {
	raw, ok := m.data[poemKey(id)]
	if !ok {
		return nil, errors.New("not found: " + id)
	}
	var p models.Poem
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *memoryStore) PoemIDs() ([]string, error) {
	var ids []string
	for k := range m.data {
		if id, ok := strings.CutPrefix(k, poemPrefix); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func newJournal(t *testing.T) *sqlite.Storage {
	t.Helper()
	store, err := sqlite.NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func savePoem(t *testing.T, journal *sqlite.Storage, seed uint64) *models.Poem {
	t.Helper()
	poem, err := models.NewPoem(seed, "sample", "en",
		[]string{"coding can be fun", "time an illusion lunch time", "doubly so my friend"},
		[]int{5, 7, 5})
	if err != nil {
		t.Fatalf("NewPoem() error = %v", err)
	}
	if err := journal.SavePoem(poem); err != nil {
		t.Fatalf("SavePoem() error = %v", err)
	}
	return poem
}

func TestPushThenPull(t *testing.T) {
	local := newJournal(t)
	first := savePoem(t, local, 1)
	second := savePoem(t, local, 2)

	kv := newMemoryStore()
	kv.data["other:key"] = []byte(`{}`)

	pushed, err := Push(local, kv)
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if pushed != 2 {
		t.Errorf("Push() = %d, want 2", pushed)
	}
	if _, ok := kv.data[poemKey(first.ID)]; !ok {
		t.Errorf("key %s missing after push", poemKey(first.ID))
	}

	other := newJournal(t)
	pulled, err := Pull(other, kv)
	if err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
	if pulled != 2 {
		t.Errorf("Pull() = %d, want 2", pulled)
	}

	got, err := other.GetPoem(second.ID)
	if err != nil || got == nil {
		t.Fatalf("GetPoem() = %v, %v", got, err)
	}
	if got.Seed != 2 || got.Lines[1] != "time an illusion lunch time" {
		t.Errorf("pulled poem = %+v", got)
	}
}

func TestPullSkipsMalformedEntries(t *testing.T) {
	kv := newMemoryStore()
	kv.data[poemKey("broken")] = []byte(`{"id":"broken","lines":["only one"]}`)

	local := newJournal(t)
	pulled, err := Pull(local, kv)
	if err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
	if pulled != 0 {
		t.Errorf("Pull() = %d, want 0", pulled)
	}
}

func TestPushReportsFailure(t *testing.T) {
	local := newJournal(t)
	savePoem(t, local, 1)

	kv := newMemoryStore()
	kv.failPut = true

	if _, err := Push(local, kv); err == nil {
		t.Error("Push() should fail when the store rejects writes")
	}
}

func TestPoemKey(t *testing.T) {
	if got := poemKey("abc"); got != "poem:abc" {
		t.Errorf("poemKey() = %q, want poem:abc", got)
	}
}
