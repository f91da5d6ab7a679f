// ABOUTME: Command-line convergence benchmark for the haiku generator
// ABOUTME: Generates haiku over consecutive seeds and outputs JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/harper/markov-haiku/benchmarks/convergence"
	"github.com/harper/markov-haiku/internal/config"
	"github.com/harper/markov-haiku/internal/core"
	"github.com/harper/markov-haiku/internal/logging"
)

func main() {
	// Command-line flags
	runs := flag.Int("runs", 100, "Number of haiku to generate")
	start := flag.Uint64("seed", 1, "First seed; later runs use seed+1, seed+2, ...")
	corpusPath := flag.String("corpus", "", "Training corpus file (default: built-in sample)")
	lang := flag.String("lang", "", "Corpus language: en or ja")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	minRate := flag.Float64("min-rate", 1.0, "Fail when the success rate drops below this")
	trials := flag.Bool("trials", false, "Include every trial in the JSON output")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level)

	if *runs < 1 {
		logger.Fatal("-runs must be positive", "runs", *runs)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if *corpusPath != "" {
		cfg.CorpusPath = *corpusPath
	}
	if *lang != "" {
		cfg.Language = *lang
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "err", err)
	}

	// Benchmarks measure the offline oracle only
	engine, err := core.NewEngine(cfg, logger, nil)
	if err != nil {
		logger.Fatal("failed to build engine", "err", err)
	}

	// Print header
	fmt.Println("========================================")
	fmt.Println("Markov Haiku Convergence Benchmark")
	fmt.Println("========================================")
	fmt.Printf("Corpus: %s (%s)\n", engine.CorpusName(), cfg.Language)
	fmt.Printf("Seeds:  %d..%d\n\n", *start, *start+uint64(*runs)-1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := convergence.NewRunner(engine, logger)
	runner.KeepTrials = *trials

	report, err := runner.Run(ctx, *start, *runs)
	if err != nil {
		logger.Fatal("benchmark failed", "err", err)
	}

	// Print summary
	fmt.Println("========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")
	fmt.Printf("Runs:         %d\n", report.Runs)
	fmt.Printf("Passed:       %d\n", report.Passed)
	fmt.Printf("Exhausted:    %d\n", report.Exhausted)
	fmt.Printf("Miscounted:   %d\n", report.Miscounted)
	fmt.Printf("Errored:      %d\n", report.Errored)
	fmt.Printf("Success rate: %.2f\n", report.SuccessRate)
	fmt.Printf("Steps:        mean %.1f, max %d\n", report.Steps.Mean, report.Steps.Max)
	fmt.Printf("Recoveries:   mean %.2f, max %d\n", report.Recoveries.Mean, report.Recoveries.Max)
	fmt.Printf("Backtracks:   mean %.2f, max %d\n", report.Backtracks.Mean, report.Backtracks.Max)
	fmt.Printf("Duration:     %s\n", report.Duration)
	fmt.Println("========================================")

	// Export results
	if err := convergence.ExportResults(report, *outputPath); err != nil {
		logger.Fatal("failed to export results", "err", err)
	}
	fmt.Printf("✓ Results exported to: %s\n", *outputPath)

	// Exit with error code if convergence regressed
	if report.SuccessRate < *minRate {
		stop()
		os.Exit(1)
	}
}
