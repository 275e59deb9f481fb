package msa

import (
	"github.com/jamesainslie/go-msa/internal/assign"
)

// MatchPoints solves the optimal one-to-one correspondence between a label's
// ground-truth and predicted points under Euclidean cost.
//
// Every point on the smaller side is matched, no matter how far away its
// partner is; there is no distance cutoff. The assignment is globally optimal,
// not greedy nearest-neighbor: with unequal sizes or comparable distances a
// greedy pairing can select a worse total and a different FP/FN partition.
//
// The Label field of the result is left empty; AlignSample fills it in.
// AlignSample only calls this with two non-empty lists, but an empty side is
// handled by returning an all-zero record rather than panicking.
func MatchPoints(gt, pred []Point) PerLabelMatch {
	n, m := len(gt), len(pred)

	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, m)
		for j := range cost[i] {
			cost[i][j] = gt[i].Distance(pred[j])
		}
	}

	gtIdx, predIdx := assign.Solve(cost)
	matched := len(gtIdx)

	avg := 0.0
	if matched > 0 {
		sum := 0.0
		for k := range gtIdx {
			sum += cost[gtIdx[k]][predIdx[k]]
		}
		avg = sum / float64(matched)
	}

	return PerLabelMatch{
		AvgDistance:    avg,
		NumMatched:     matched,
		FalsePositives: m - matched,
		FalseNegatives: n - matched,
	}
}
