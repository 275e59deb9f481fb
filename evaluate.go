package msa

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Evaluate aligns every sample in order and reduces the results into a corpus
// Summary. The returned slice is index-aligned with samples.
//
// Samples share no state, so WithWorkers may be used to align them in
// parallel; the reduction is pure summation and does not depend on completion
// order, so results are identical either way.
func Evaluate(samples []Sample, opts ...Option) ([]SampleMetrics, Summary) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	metrics := make([]SampleMetrics, len(samples))
	if cfg.workers > 1 && len(samples) > 1 {
		var g errgroup.Group
		g.SetLimit(cfg.workers)
		for i := range samples {
			g.Go(func() error {
				metrics[i] = AlignSample(samples[i].GroundTruth, samples[i].Predicted)
				return nil
			})
		}
		_ = g.Wait() // workers never fail
	} else {
		for i := range samples {
			metrics[i] = AlignSample(samples[i].GroundTruth, samples[i].Predicted)
		}
	}

	summary := Summarize(metrics)
	cfg.logger.Debug("evaluated corpus",
		"samples", len(samples),
		"workers", cfg.workers,
		"label_f1", summary.Labels.F1,
		"point_f1", summary.Points.F1)

	return metrics, summary
}

// Summarize reduces per-sample metrics into corpus-level label and point
// tallies and derives precision/recall/F1 from them.
//
// Every ratio defaults to 0 when its denominator is zero. The average
// distance instead becomes +Inf when no point was matched anywhere: "no
// matches" is a different signal than "perfect placement". Each matched point
// pair contributes equally to the average, so per-label averages are weighted
// by their match counts before dividing. All values are rounded to 2 decimal
// places.
func Summarize(metrics []SampleMetrics) Summary {
	var labels, points tally
	weightedDistance := 0.0

	for _, m := range metrics {
		labels.matched += m.MatchedLabels
		labels.fp += m.FalsePositiveLabels
		labels.fn += m.FalseNegativeLabels
		for _, pm := range m.PerLabel {
			points.matched += pm.NumMatched
			points.fp += pm.FalsePositives
			points.fn += pm.FalseNegatives
			weightedDistance += pm.AvgDistance * float64(pm.NumMatched)
		}
	}

	avgDistance := math.Inf(1)
	if points.matched > 0 {
		avgDistance = weightedDistance / float64(points.matched)
	}

	return Summary{
		Labels: labels.ratios(),
		Points: PointMetrics{
			RatioMetrics: points.ratios(),
			AvgDistance:  round2(avgDistance),
		},
	}
}

// tally is a confusion-style count of matched/false-positive/false-negative
// items, at either label or point granularity.
type tally struct {
	matched int
	fp      int
	fn      int
}

// ratios derives rounded precision/recall/F1. F1 is computed from the
// unrounded precision and recall.
func (t tally) ratios() RatioMetrics {
	var precision, recall, f1 float64
	if t.matched+t.fp > 0 {
		precision = float64(t.matched) / float64(t.matched+t.fp)
	}
	if t.matched+t.fn > 0 {
		recall = float64(t.matched) / float64(t.matched+t.fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return RatioMetrics{
		Precision: round2(precision),
		Recall:    round2(recall),
		F1:        round2(f1),
	}
}

func round2(v float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}
