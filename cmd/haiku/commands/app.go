// ABOUTME: Shared setup for commands: config, logger, engine and journal
// ABOUTME: Flags given on the command line override environment configuration
package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/core"
	"github.com/harper/markov-haiku/internal/llm"
	"github.com/harper/markov-haiku/internal/logging"
	"github.com/harper/markov-haiku/internal/storage/sqlite"
	"github.com/harper/markov-haiku/internal/syllable"
)

// sourceFlags are the corpus and dictionary flags shared by several commands
type sourceFlags struct {
	corpus    string
	dict      string
	overrides string
	lang      string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.corpus, "corpus", "", "Training corpus file (default: built-in sample)")
	cmd.Flags().StringVar(&f.dict, "dict", "", "CMU pronouncing dictionary file")
	cmd.Flags().StringVar(&f.overrides, "overrides", "", "YAML table of syllable overrides")
	cmd.Flags().StringVar(&f.lang, "lang", "", "Corpus language: en or ja")
}

func (f *sourceFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("corpus") {
		cfg.CorpusPath = f.corpus
	}
	if cmd.Flags().Changed("dict") {
		cfg.DictPath = f.dict
	}
	if cmd.Flags().Changed("overrides") {
		cfg.OverridesPath = f.overrides
	}
	if cmd.Flags().Changed("lang") {
		cfg.Language = f.lang
	}
}

// loadConfig reads .env and the environment, then lets adjust apply flags
func loadConfig(adjust func(*config.Config)) (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if adjust != nil {
		adjust(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *log.Logger {
	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	return logging.New(cmd.ErrOrStderr(), level)
}

// newEngine builds the engine, adding the OpenAI resolver when a key is set
func newEngine(cfg *config.Config, logger *log.Logger) (*core.Engine, error) {
	var resolver syllable.Resolver
	if cfg.OpenAIKey != "" && cfg.Language == "en" {
		client, err := llm.NewOpenAIClientWithConfig(llm.ConfigFrom(cfg))
		if err != nil {
			logger.Warn("OpenAI resolver disabled", "err", err)
		} else {
			resolver = client
			logger.Debug("OpenAI syllable resolver enabled", "model", cfg.ChatModel)
		}
	}
	return core.NewEngine(cfg, logger, resolver)
}

func openJournal(cfg *config.Config) (*sqlite.Storage, error) {
	path := sqlite.DefaultDBPath()
	if cfg.DataDir != "" {
		path = sqlite.DBPath(cfg.DataDir)
	}
	store, err := sqlite.NewStorageWithPath(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return store, nil
}

func jsonOutput() bool {
	return outputFormat == "json"
}
