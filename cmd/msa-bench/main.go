package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"
	"strings"

	msa "github.com/jamesainslie/go-msa"
	"github.com/jamesainslie/go-msa/detect"
	"github.com/jamesainslie/go-msa/internal/bench"
)

func main() {
	var (
		dataDir   = flag.String("data", "", "Directory containing sft_<split>.json annotation files (required)")
		splits    = flag.String("splits", strings.Join(bench.DefaultSplits, ","), "Comma-separated splits to evaluate")
		modelPath = flag.String("model", "", "Path to ONNX landmark model")
		classes   = flag.String("classes", "", "Comma-separated substructure names, in model class-index order")
		preds     = flag.String("preds", "", "Predictions file pattern with %s for the split (skips the model)")
		threshold = flag.Float64("threshold", 0.25, "Detection score threshold")
		inputSize = flag.Int("input-size", 512, "Square model input resolution")
		workers   = flag.Int("workers", runtime.NumCPU(), "Concurrent sample alignments")
		sweep     = flag.Bool("sweep", false, "Run score threshold sweep")
		sweepMin  = flag.Float64("sweep-min", 0.05, "Sweep minimum threshold")
		sweepMax  = flag.Float64("sweep-max", 0.95, "Sweep maximum threshold")
		sweepStep = flag.Float64("sweep-step", 0.05, "Sweep step size")
	)
	flag.Parse()

	if *dataDir == "" {
		fmt.Fprintln(os.Stderr, "error: -data required")
		flag.Usage()
		os.Exit(1)
	}
	if *modelPath == "" && *preds == "" {
		fmt.Fprintln(os.Stderr, "error: -model or -preds required")
		flag.Usage()
		os.Exit(1)
	}
	if *modelPath != "" && *classes == "" {
		fmt.Fprintln(os.Stderr, "error: -classes required with -model")
		flag.Usage()
		os.Exit(1)
	}
	if *sweep && *modelPath == "" {
		fmt.Fprintln(os.Stderr, "error: -sweep needs a model for scored detections")
		os.Exit(1)
	}

	ctx := context.Background()

	var detector *detect.Detector
	if *modelPath != "" {
		var err error
		detector, err = detect.New(*modelPath, strings.Split(*classes, ","),
			detect.WithScoreThreshold(float32(*threshold)),
			detect.WithInputSize(*inputSize),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating detector: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = detector.Close() }()
	}

	for _, split := range strings.Split(*splits, ",") {
		records, err := bench.LoadSplit(*dataDir, split)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading split %q: %v\n", split, err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d records for split '%s'\n", len(records), split)

		if *sweep {
			runSweep(ctx, split, records, detector,
				float32(*sweepMin), float32(*sweepMax), float32(*sweepStep), *workers)
			continue
		}

		var predictions []msa.LabeledPointSet
		if detector != nil {
			predictions, err = detectAll(ctx, detector, records)
		} else {
			predictions, err = bench.LoadPredictions(fmt.Sprintf(*preds, split))
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error obtaining predictions for %q: %v\n", split, err)
			os.Exit(1)
		}

		samples, err := bench.Samples(records, predictions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error pairing split %q: %v\n", split, err)
			os.Exit(1)
		}

		_, summary := msa.Evaluate(samples, msa.WithWorkers(*workers))
		bench.WriteReport(os.Stdout, split, summary)
	}
}

func detectAll(ctx context.Context, detector *detect.Detector, records []bench.Record) ([]msa.LabeledPointSet, error) {
	predictions := make([]msa.LabeledPointSet, len(records))
	for i, record := range records {
		img, err := loadImage(record.Image)
		if err != nil {
			return nil, err
		}
		predictions[i], err = detector.Detect(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("detecting %s: %w", record.Image, err)
		}
	}
	return predictions, nil
}

func runSweep(ctx context.Context, split string, records []bench.Record, detector *detect.Detector, min, max, step float32, workers int) {
	scored := make([][]detect.Keypoint, len(records))
	for i, record := range records {
		img, err := loadImage(record.Image)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		scored[i], err = detector.DetectScored(ctx, img)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error detecting %s: %v\n", record.Image, err)
			os.Exit(1)
		}
	}

	thresholds := bench.SweepThresholds(min, max, step)
	results, err := bench.Sweep(records, scored, thresholds, msa.WithWorkers(workers))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nThreshold Sweep for Split: '%s'\n", split)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s\n", "Thresh", "Prec", "Rec", "F1", "AvgDist")
	for _, r := range results {
		fmt.Printf("%-8.2f %-8.2f %-8.2f %-8.2f %-8.2f\n",
			r.Threshold, r.Summary.Points.Precision, r.Summary.Points.Recall,
			r.Summary.Points.F1, r.Summary.Points.AvgDistance)
	}
	fmt.Println(strings.Repeat("-", 50))
	if len(results) > 0 {
		fmt.Printf("Best threshold: %.2f (point F1 %.2f)\n",
			results[0].Threshold, results[0].Summary.Points.F1)
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
