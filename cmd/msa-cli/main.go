package main

import (
	"flag"
	"fmt"
	"os"

	msa "github.com/jamesainslie/go-msa"
	"github.com/jamesainslie/go-msa/internal/bench"
	"github.com/jamesainslie/go-msa/schema"
)

func main() {
	gtPath := flag.String("gt", "", "Path to ground-truth substructures JSON")
	predPath := flag.String("pred", "", "Path to predicted substructures JSON")
	mode := flag.String("mode", "summary", "Mode: summary or labels")

	flag.Parse()

	if *gtPath == "" || *predPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: msa-cli -gt GROUND_TRUTH.json -pred PREDICTION.json [-mode summary|labels]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	gt, err := loadPointSet(*gtPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pred, err := loadPointSet(*predPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	metrics := msa.AlignSample(gt, pred)

	switch *mode {
	case "summary":
		summary := msa.Summarize([]msa.SampleMetrics{metrics})
		bench.WriteReport(os.Stdout, "single", summary)

	case "labels":
		bench.WritePerLabel(os.Stdout, metrics)

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", *mode)
		os.Exit(1)
	}
}

func loadPointSet(path string) (msa.LabeledPointSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	set, err := schema.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return set, nil
}
