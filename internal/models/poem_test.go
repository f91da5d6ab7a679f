// ABOUTME: Tests for Poem model creation and validation
// ABOUTME: Verifies NewPoem constructor, error conditions and rendering
package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewPoem(t *testing.T) {
	lines := []string{"coding can be fun", "time an illusion lunch time", "doubly so"}
	counts := []int{5, 7, 5}

	tests := []struct {
		name      string
		lang      string
		lines     []string
		syllables []int
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "valid poem",
			lang:      "en",
			lines:     lines,
			syllables: counts,
			wantErr:   false,
		},
		{
			name:      "too few lines",
			lang:      "en",
			lines:     lines[:2],
			syllables: counts,
			wantErr:   true,
			errMsg:    "poem must have 3 lines",
		},
		{
			name:      "mismatched syllable counts",
			lang:      "en",
			lines:     lines,
			syllables: []int{5, 7},
			wantErr:   true,
			errMsg:    "poem must have 3 syllable counts",
		},
		{
			name:      "blank line",
			lang:      "en",
			lines:     []string{"coding can be fun", "   ", "doubly so"},
			syllables: counts,
			wantErr:   true,
			errMsg:    "line 2 cannot be empty",
		},
		{
			name:      "empty lang",
			lang:      "",
			lines:     lines,
			syllables: counts,
			wantErr:   true,
			errMsg:    "lang cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poem, err := NewPoem(42, "sample", tt.lang, tt.lines, tt.syllables)

			if tt.wantErr {
				if err == nil {
					t.Fatal("NewPoem() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("NewPoem() error = %v, want containing %q", err, tt.errMsg)
				}
				if poem != nil {
					t.Error("NewPoem() should return nil poem on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewPoem() unexpected error = %v", err)
			}
			if _, err := uuid.Parse(poem.ID); err != nil {
				t.Errorf("ID %q is not a UUID: %v", poem.ID, err)
			}
			if poem.Seed != 42 {
				t.Errorf("Seed = %d, want 42", poem.Seed)
			}
			if poem.Corpus != "sample" {
				t.Errorf("Corpus = %q, want sample", poem.Corpus)
			}
			if poem.CreatedAt.IsZero() {
				t.Error("CreatedAt should be set")
			}
		})
	}
}

func TestNewPoemCopiesInput(t *testing.T) {
	lines := []string{"one", "two", "three"}
	poem, err := NewPoem(1, "sample", "en", lines, []int{5, 7, 5})
	if err != nil {
		t.Fatalf("NewPoem() error = %v", err)
	}

	lines[0] = "changed"
	if poem.Lines[0] != "one" {
		t.Errorf("Lines[0] = %q, poem should not alias caller slice", poem.Lines[0])
	}
}

func TestPoemRendering(t *testing.T) {
	poem := &Poem{
		Lines:     []string{"an old silent pond", "a frog jumps into the pond", "splash silence again"},
		Syllables: []int{5, 7, 5},
	}

	if got := poem.Text(); got != "an old silent pond\na frog jumps into the pond\nsplash silence again" {
		t.Errorf("Text() = %q", got)
	}
	if got := poem.Pattern(); got != "5-7-5" {
		t.Errorf("Pattern() = %q, want 5-7-5", got)
	}
}
