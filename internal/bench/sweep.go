package bench

import (
	"sort"

	msa "github.com/jamesainslie/go-msa"
	"github.com/jamesainslie/go-msa/detect"
)

// SweepResult holds the corpus summary for one score threshold.
type SweepResult struct {
	Threshold float32
	Summary   msa.Summary
}

// SweepThresholds generates threshold values from min to max with given step.
func SweepThresholds(min, max, step float32) []float32 {
	var thresholds []float32
	for t := min; t < max; t += step {
		thresholds = append(thresholds, t)
	}
	return thresholds
}

// Sweep evaluates the corpus at multiple detector score thresholds. scored
// holds each record's pre-threshold detections, so each threshold only
// re-filters them instead of re-running the model. Results are sorted by
// point-level F1 descending.
func Sweep(records []Record, scored [][]detect.Keypoint, thresholds []float32, opts ...msa.Option) ([]SweepResult, error) {
	var results []SweepResult

	for _, threshold := range thresholds {
		preds := make([]msa.LabeledPointSet, len(scored))
		for i, kps := range scored {
			preds[i] = detect.Filter(kps, threshold)
		}

		samples, err := Samples(records, preds)
		if err != nil {
			return nil, err
		}

		_, summary := msa.Evaluate(samples, opts...)
		results = append(results, SweepResult{
			Threshold: threshold,
			Summary:   summary,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Summary.Points.F1 > results[j].Summary.Points.F1
	})

	return results, nil
}
