// ABOUTME: Export functionality for the haiku journal
// ABOUTME: Supports YAML, Markdown and HTML (rendered with goldmark) formats
package sqlite

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// ExportData represents the complete exportable journal
type ExportData struct {
	Version    string       `yaml:"version" json:"version"`
	ExportedAt string       `yaml:"exported_at" json:"exported_at"`
	Tool       string       `yaml:"tool" json:"tool"`
	Poems      []ExportPoem `yaml:"poems" json:"poems"`
}

// ExportPoem represents a poem for export
type ExportPoem struct {
	ID        string   `yaml:"id" json:"id"`
	Seed      uint64   `yaml:"seed" json:"seed"`
	Corpus    string   `yaml:"corpus" json:"corpus"`
	Lang      string   `yaml:"lang" json:"lang"`
	Lines     []string `yaml:"lines" json:"lines"`
	Syllables []int    `yaml:"syllables" json:"syllables"`
	CreatedAt string   `yaml:"created_at" json:"created_at"`
}

// Export collects every poem in the journal, newest first
func (s *Storage) Export() (*ExportData, error) {
	poems, err := s.ListPoems(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list poems: %w", err)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "haiku",
		Poems:      make([]ExportPoem, 0, len(poems)),
	}
	for _, p := range poems {
		data.Poems = append(data.Poems, ExportPoem{
			ID:        p.ID,
			Seed:      p.Seed,
			Corpus:    p.Corpus,
			Lang:      p.Lang,
			Lines:     p.Lines,
			Syllables: p.Syllables,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}
	return data, nil
}

// ExportToYAML exports the journal to a YAML file
func (s *Storage) ExportToYAML(outputPath string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	return writeFile(outputPath, func(w io.Writer) error {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	})
}

// ExportToMarkdown exports the journal to a Markdown file
func (s *Storage) ExportToMarkdown(outputPath string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	return writeFile(outputPath, func(w io.Writer) error {
		_, err := io.WriteString(w, RenderMarkdown(data))
		return err
	})
}

// ExportToHTML renders the Markdown export to a standalone HTML page
func (s *Storage) ExportToHTML(outputPath string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	body, err := RenderHTML(data)
	if err != nil {
		return err
	}

	return writeFile(outputPath, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
			html.EscapeString(title(data)), body)
		return err
	})
}

// RenderMarkdown formats the export as Markdown, one section per poem
func RenderMarkdown(data *ExportData) string {
	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "# %s\n\n", title(data))
	_, _ = fmt.Fprintf(&b, "Generated: %s\n\n", data.ExportedAt)

	if len(data.Poems) == 0 {
		_, _ = fmt.Fprintln(&b, "*No poems saved yet.*")
		return b.String()
	}

	for i, p := range data.Poems {
		_, _ = fmt.Fprintf(&b, "## %d. %s\n\n", i+1, formatPattern(p.Syllables))
		for j, line := range p.Lines {
			// two trailing spaces force a hard line break
			if j < len(p.Lines)-1 {
				_, _ = fmt.Fprintf(&b, "%s  \n", escapeMarkdown(line))
			} else {
				_, _ = fmt.Fprintf(&b, "%s\n", escapeMarkdown(line))
			}
		}
		_, _ = fmt.Fprintln(&b)
		_, _ = fmt.Fprintf(&b, "*seed %d, corpus %s, lang %s, %s*\n\n", p.Seed, escapeMarkdown(p.Corpus), p.Lang, p.CreatedAt)
		_, _ = fmt.Fprintln(&b, "---")
		_, _ = fmt.Fprintln(&b)
	}

	return b.String()
}

// RenderHTML converts the Markdown rendering to HTML
func RenderHTML(data *ExportData) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(RenderMarkdown(data)), &buf); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.String(), nil
}

func title(data *ExportData) string {
	date := data.ExportedAt
	if t, err := time.Parse(time.RFC3339, data.ExportedAt); err == nil {
		date = t.Format("2006-01-02")
	}
	return "Haiku Journal - " + date
}

func formatPattern(counts []int) string {
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, "-")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func writeFile(outputPath string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return write(file)
}
