package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/azure/ad-insights-bot/internal/analysis"
	"github.com/azure/ad-insights-bot/internal/config"
	"github.com/azure/ad-insights-bot/internal/insights"
)

func main() {
	input := flag.String("input", "-", "batch JSON file, or - for stdin")
	profilePath := flag.String("profile", "", "company profile YAML")
	outputDir := flag.String("out", "", "directory to save the report JSON into")
	topN := flag.Int("top", analysis.DefaultTopN, "number of trending terms")
	threshold := flag.Float64("threshold", analysis.DefaultSignalThreshold, "minimum |score| for signal extraction")
	seed := flag.Int64("seed", 1, "seed for the featured ad idea")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logrus.SetLevel(logrus.WarnLevel)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := run(*input, *profilePath, *outputDir, *topN, *threshold, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(input, profilePath, outputDir string, topN int, threshold float64, seed int64) error {
	data, name, err := readInput(input)
	if err != nil {
		return err
	}

	items, err := insights.DecodeBatch(data)
	if err != nil {
		return err
	}

	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	cfg := &config.Config{
		TrendingTopN:         topN,
		SignalThreshold:      threshold,
		MaxPhrases:           analysis.DefaultMaxPhrases,
		ScoringWorkers:       analysis.DefaultWorkers,
		TemplateSeed:         seed,
		EnableCriticalAlerts: true,
	}

	notifier := &TerminalNotifier{out: os.Stdout, outputDir: outputDir}
	pipeline := analysis.NewPipeline(insights.PipelineOptions(cfg, profile)...)
	service := insights.NewService(cfg, nil, notifier, pipeline)

	fmt.Printf("🤖 Ad Insights - analyzing %d items from %s\n", len(items), name)

	if _, err := service.Process(name, items); err != nil {
		return err
	}
	return nil
}

func readInput(input string) ([]byte, string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, "stdin", nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read batch: %w", err)
	}
	return data, filepath.Base(input), nil
}
