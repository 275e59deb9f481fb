package msa

import (
	"sort"

	"github.com/samber/lo"
)

// AlignSample reconciles the label sets of one sample and matches the point
// lists of every label present on both sides.
//
// Labels are first partitioned by name into matched, false-negative (ground
// truth only) and false-positive (prediction only). A matched label with an
// empty point list on one side is then demoted: empty ground truth makes it a
// false-negative label, otherwise an empty prediction makes it a
// false-positive label. The empty-ground-truth check takes precedence, so a
// label that is empty on both sides counts only as a false negative.
//
// MatchedLabels always reports the raw name intersection, including labels
// later demoted for point-level purposes. See SampleMetrics.
func AlignSample(gt, pred LabeledPointSet) SampleMetrics {
	gtLabels := lo.Keys(gt)
	predLabels := lo.Keys(pred)
	sort.Strings(gtLabels)
	sort.Strings(predLabels)

	matched := lo.Intersect(gtLabels, predLabels)
	fnLabels := lo.Without(gtLabels, predLabels...)
	fpLabels := lo.Without(predLabels, gtLabels...)

	var withPoints []string
	for _, label := range matched {
		switch {
		case len(gt[label]) == 0:
			fnLabels = append(fnLabels, label)
		case len(pred[label]) == 0:
			fpLabels = append(fpLabels, label)
		default:
			withPoints = append(withPoints, label)
		}
	}

	metrics := SampleMetrics{
		MatchedLabels:       len(matched),
		FalsePositiveLabels: len(fpLabels),
		FalseNegativeLabels: len(fnLabels),
	}

	for _, label := range withPoints {
		m := MatchPoints(gt[label], pred[label])
		m.Label = label
		metrics.PerLabel = append(metrics.PerLabel, m)
	}
	for _, label := range fnLabels {
		metrics.PerLabel = append(metrics.PerLabel, PerLabelMatch{
			Label:          label,
			FalseNegatives: len(gt[label]),
		})
	}
	for _, label := range fpLabels {
		metrics.PerLabel = append(metrics.PerLabel, PerLabelMatch{
			Label:          label,
			FalsePositives: len(pred[label]),
		})
	}

	return metrics
}
