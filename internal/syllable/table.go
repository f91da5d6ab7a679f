// ABOUTME: Word-to-syllable tables: CMUdict parsing and YAML/JSON override files
// ABOUTME: Also embeds the default basic lexicon and curated override table
package syllable

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed data/lexicon.yaml
var lexiconYAML string

//go:embed data/overrides.yaml
var overridesYAML string

// Table maps a normalized word to its syllable count.
type Table map[string]int

// Count sums the counts of words, failing on the first word not in the table.
func (t Table) Count(words []string) (int, error) {
	total := 0
	for _, word := range words {
		n, ok := t[word]
		if !ok {
			return 0, &LookupError{Word: word}
		}
		total += n
	}
	return total, nil
}

// ParseCMUDict reads a pronouncing dictionary in CMUdict text format
// ("WORD  K AE1 T", one entry per line). Only the first pronunciation of a
// word counts; alternates such as "WORD(2)" are skipped. Syllables are the
// phonemes carrying a stress digit.
func ParseCMUDict(r io.Reader) (Table, error) {
	table := make(Table)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		word := strings.ToLower(fields[0])
		if strings.HasSuffix(word, ")") && strings.Contains(word, "(") {
			continue
		}
		if _, seen := table[word]; seen {
			continue
		}

		syllables := 0
		for _, phoneme := range fields[1:] {
			if last := phoneme[len(phoneme)-1]; unicode.IsDigit(rune(last)) {
				syllables++
			}
		}
		table[word] = syllables
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pronouncing dictionary: %w", err)
	}
	return table, nil
}

// LoadCMUDict parses the pronouncing dictionary at path.
func LoadCMUDict(path string) (Table, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("opening pronouncing dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseCMUDict(f)
}

// ParseTable reads a "word: count" mapping. YAML and JSON objects are both
// accepted; keys are lowercased.
func ParseTable(r io.Reader) (Table, error) {
	var raw map[string]int
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("decoding syllable table: %w", err)
	}

	table := make(Table, len(raw))
	for word, n := range raw {
		if n < 0 {
			return nil, fmt.Errorf("syllable table: negative count %d for %q", n, word)
		}
		table[strings.ToLower(strings.TrimSpace(word))] = n
	}
	return table, nil
}

// LoadTable parses the override table at path.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("opening syllable table: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseTable(f)
}

// Lexicon returns the embedded basic English lexicon.
func Lexicon() Table {
	t, err := ParseTable(strings.NewReader(lexiconYAML))
	if err != nil {
		panic(fmt.Sprintf("syllable: embedded lexicon: %v", err))
	}
	return t
}

// Overrides returns the embedded curated override table.
func Overrides() Table {
	t, err := ParseTable(strings.NewReader(overridesYAML))
	if err != nil {
		panic(fmt.Sprintf("syllable: embedded overrides: %v", err))
	}
	return t
}
