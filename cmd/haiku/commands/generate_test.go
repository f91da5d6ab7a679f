// ABOUTME: Tests for the generate, history and export commands
// ABOUTME: Runs the CLI end to end against the built-in sample corpus

package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate_SameSeedSameOutput(t *testing.T) {
	first, _, err := runRoot(t, "generate", "--seed", "42")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	second, _, err := runRoot(t, "generate", "--seed", "42")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	if first != second {
		t.Errorf("same seed produced different output:\n%s\n---\n%s", first, second)
	}
	if lines := strings.Split(strings.TrimSpace(first), "\n"); len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d: %q", len(lines), first)
	}
}

func TestGenerate_JSON(t *testing.T) {
	out, _, err := runRoot(t, "generate", "--seed", "9", "--count", "3", "--stats", "--format", "json")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	var poems []generatedPoem
	if err := json.Unmarshal([]byte(out), &poems); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(poems) != 3 {
		t.Fatalf("got %d poems, want 3", len(poems))
	}
	for i, p := range poems {
		if p.Seed != uint64(9+i) {
			t.Errorf("poem %d seed = %d, want %d", i, p.Seed, 9+i)
		}
		if len(p.Syllables) != 3 || p.Syllables[0] != 5 || p.Syllables[1] != 7 || p.Syllables[2] != 5 {
			t.Errorf("poem %d syllables = %v, want [5 7 5]", i, p.Syllables)
		}
		if p.Steps == 0 {
			t.Errorf("poem %d should report steps with --stats", i)
		}
	}
}

func TestGenerate_Stats(t *testing.T) {
	out, _, err := runRoot(t, "generate", "--seed", "1", "--stats")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(out, "-- seed=1 steps=") {
		t.Errorf("stats line missing from %q", out)
	}
}

func TestGenerate_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "zero count", args: []string{"generate", "--count", "0"}},
		{name: "bad language", args: []string{"generate", "--lang", "fr"}},
		{name: "missing corpus", args: []string{"generate", "--corpus", "/nonexistent/corpus.txt"}},
		{name: "positional args", args: []string{"generate", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runRoot(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGenerate_CustomCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	corpus := "an old silent pond\na frog jumps into the pond\nsplash and silence again\n"
	if err := os.WriteFile(path, []byte(corpus), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runRoot(t, "generate", "--corpus", path, "--seed", "3")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	for _, word := range strings.Fields(out) {
		if !strings.Contains(corpus, word) {
			t.Errorf("word %q is not from the corpus", word)
		}
	}
}

func TestGenerate_SaveHistoryExport(t *testing.T) {
	dataDir := isolate(t)

	_, stderr, err := execute(t, "generate", "--seed", "5", "--count", "2", "--save")
	if err != nil {
		t.Fatalf("generate --save error = %v", err)
	}
	if !strings.Contains(stderr, dataDir) {
		t.Errorf("save note %q should name the journal under %s", stderr, dataDir)
	}

	out, _, err := execute(t, "history", "--format", "json")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}

	var poems []struct {
		ID    string   `json:"id"`
		Seed  uint64   `json:"seed"`
		Lines []string `json:"lines"`
	}
	if err := json.Unmarshal([]byte(out), &poems); err != nil {
		t.Fatalf("history output is not JSON: %v\n%s", err, out)
	}
	if len(poems) != 2 {
		t.Fatalf("history returned %d poems, want 2", len(poems))
	}

	out, _, err = execute(t, "history", poems[0].ID)
	if err != nil {
		t.Fatalf("history <id> error = %v", err)
	}
	if !strings.Contains(out, poems[0].Lines[0]) {
		t.Errorf("history <id> output %q missing first line %q", out, poems[0].Lines[0])
	}

	out, _, err = execute(t, "history")
	if err != nil {
		t.Fatalf("history table error = %v", err)
	}
	if !strings.Contains(out, "Showing 2 of 2 haiku") {
		t.Errorf("history table footer missing from %q", out)
	}

	for _, format := range []string{"yaml", "markdown", "html"} {
		output := filepath.Join(t.TempDir(), "journal."+format)
		if _, _, err := execute(t, "export", format, "--output", output); err != nil {
			t.Fatalf("export %s error = %v", format, err)
		}
		raw, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("export %s wrote nothing: %v", format, err)
		}
		if !strings.Contains(string(raw), poems[1].Lines[0]) {
			t.Errorf("export %s missing %q", format, poems[1].Lines[0])
		}
	}
}

func TestHistory_EmptyJournal(t *testing.T) {
	out, _, err := runRoot(t, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "No haiku saved yet") {
		t.Errorf("output = %q, want empty-journal note", out)
	}

	if _, _, err := runRoot(t, "history", "no-such-id"); err == nil {
		t.Error("history with unknown id should fail")
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	if _, _, err := runRoot(t, "export", "pdf"); err == nil {
		t.Error("export pdf should fail")
	}
}
