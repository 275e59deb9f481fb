package msa

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate in image space.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// LabeledPointSet maps a substructure name to its ordered point list.
// It represents one sample's ground truth or one sample's prediction.
type LabeledPointSet map[string][]Point

// Validate reports the first non-finite coordinate found, wrapping ErrNonFinite.
// The metric functions assume well-formed inputs; callers decoding external data
// should validate before evaluating so NaNs cannot leak into distance sums.
func (s LabeledPointSet) Validate() error {
	for label, points := range s {
		for i, p := range points {
			if !isFinite(p.X) || !isFinite(p.Y) {
				return fmt.Errorf("%w: label %q point %d (%v, %v)", ErrNonFinite, label, i, p.X, p.Y)
			}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sample pairs one input's ground truth with the prediction for it.
// Samples are independent; the engine keeps no cross-sample state.
type Sample struct {
	GroundTruth LabeledPointSet
	Predicted   LabeledPointSet
}

// PerLabelMatch is the outcome of matching one label's point sets.
//
// Invariants: NumMatched <= min(len(gt), len(pred)),
// FalsePositives = len(pred) - NumMatched, FalseNegatives = len(gt) - NumMatched.
type PerLabelMatch struct {
	Label          string
	AvgDistance    float64 // mean Euclidean distance over matched pairs
	NumMatched     int
	FalsePositives int
	FalseNegatives int
}

// SampleMetrics is the outcome of aligning one sample.
//
// MatchedLabels is the size of the raw name intersection between ground truth
// and prediction. Labels whose point list is empty on one side are afterwards
// counted under FalseNegativeLabels or FalsePositiveLabels without being
// removed from MatchedLabels; downstream consumers depend on that accounting.
type SampleMetrics struct {
	MatchedLabels       int
	FalsePositiveLabels int
	FalseNegativeLabels int
	PerLabel            []PerLabelMatch
}

// RatioMetrics holds a precision/recall/F1 triple. Each value is 0 when its
// denominator is zero.
type RatioMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
}

// PointMetrics extends RatioMetrics with the matched-weighted average distance.
// AvgDistance is +Inf when no point was matched anywhere in the corpus.
type PointMetrics struct {
	RatioMetrics
	AvgDistance float64
}

// Summary is the corpus-level report: label presence quality and point
// placement quality. All values are rounded to 2 decimal places.
type Summary struct {
	Labels RatioMetrics
	Points PointMetrics
}
