// ABOUTME: Corpus preparation: turns line-oriented training text into one flat token sequence
// ABOUTME: Normalization is delegated to a Normalizer so English and Japanese corpora share the reader
package corpus

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrEmptyCorpus is returned when the training source yields no tokens.
var ErrEmptyCorpus = errors.New("corpus: empty training corpus")

//go:embed data/sample.txt
var sample string

// SampleName identifies the embedded corpus in logs and the journal.
const SampleName = "sample"

// Normalizer splits one line of training text into normalized words.
type Normalizer interface {
	Normalize(line string) []string
}

// NormalizerFunc adapts a plain function to Normalizer.
type NormalizerFunc func(line string) []string

// Normalize implements Normalizer.
func (f NormalizerFunc) Normalize(line string) []string { return f(line) }

// Read tokenizes every line of r independently and concatenates the results,
// preserving order.
func Read(r io.Reader, n Normalizer) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		tokens = append(tokens, n.Normalize(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyCorpus
	}
	return tokens, nil
}

// Prepare reads the corpus at path. An empty path selects the embedded
// sample corpus.
func Prepare(path string, n Normalizer, logger *log.Logger) ([]string, error) {
	var (
		tokens []string
		err    error
	)
	if path == "" || path == SampleName {
		tokens, err = Read(strings.NewReader(sample), n)
	} else {
		f, openErr := os.Open(path) // #nosec G304
		if openErr != nil {
			return nil, fmt.Errorf("opening corpus: %w", openErr)
		}
		defer func() { _ = f.Close() }()
		tokens, err = Read(f, n)
	}
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("corpus prepared", "source", displayName(path), "tokens", len(tokens))
	}
	return tokens, nil
}

func displayName(path string) string {
	if path == "" {
		return SampleName
	}
	return path
}
