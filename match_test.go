package msa

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPoints(t *testing.T) {
	tests := []struct {
		name        string
		gt          []Point
		pred        []Point
		wantMatched int
		wantFP      int
		wantFN      int
		wantAvg     float64
	}{
		{
			name:        "exact single point",
			gt:          []Point{{0, 0}},
			pred:        []Point{{0, 0}},
			wantMatched: 1,
			wantFP:      0,
			wantFN:      0,
			wantAvg:     0,
		},
		{
			name: "surplus ground truth",
			// Only one prediction exists, so (10,10) stays unmatched no
			// matter how far the chosen pair is.
			gt:          []Point{{0, 0}, {10, 10}},
			pred:        []Point{{0, 1}},
			wantMatched: 1,
			wantFP:      0,
			wantFN:      1,
			wantAvg:     1,
		},
		{
			name:        "surplus predictions",
			gt:          []Point{{0, 0}},
			pred:        []Point{{0, 3}, {4, 0}, {100, 100}},
			wantMatched: 1,
			wantFP:      2,
			wantFN:      0,
			wantAvg:     3,
		},
		{
			name: "optimal beats greedy",
			// Greedy pairs gt[0] with its nearest pred[0] (distance 2) and
			// forces gt[1] onto pred[1] (distance 7): total 9. The optimal
			// crossed pairing totals 4+1=5.
			gt:          []Point{{0, 0}, {0, 3}},
			pred:        []Point{{0, 2}, {0, -4}},
			wantMatched: 2,
			wantFP:      0,
			wantFN:      0,
			wantAvg:     2.5,
		},
		{
			name:        "distant pair still matches",
			gt:          []Point{{0, 0}},
			pred:        []Point{{3000, 4000}},
			wantMatched: 1,
			wantFP:      0,
			wantFN:      0,
			wantAvg:     5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchPoints(tt.gt, tt.pred)

			assert.Equal(t, tt.wantMatched, got.NumMatched)
			assert.Equal(t, tt.wantFP, got.FalsePositives)
			assert.Equal(t, tt.wantFN, got.FalseNegatives)
			assert.InDelta(t, tt.wantAvg, got.AvgDistance, 1e-9)
			assert.Empty(t, got.Label)
		})
	}
}

func TestMatchPoints_OptimalBeatsGreedyFarPair(t *testing.T) {
	// gt[1] is equidistant-ish: greedy nearest-neighbor from gt[0] steals
	// pred[0] and leaves a worse total. The crossed pairing must win.
	gt := []Point{{0, 0}, {2, 0}}
	pred := []Point{{1, 0}, {-10, 0}}

	got := MatchPoints(gt, pred)

	require.Equal(t, 2, got.NumMatched)
	// Optimal: (0,0)-(-10,0)=10 and (2,0)-(1,0)=1 is 11;
	// the alternative (0,0)-(1,0)=1 and (2,0)-(-10,0)=12 is 13.
	assert.InDelta(t, 5.5, got.AvgDistance, 1e-9)
}

// Conservation: matched plus unmatched on each side always accounts for every
// input point, for any shapes.
func TestMatchPoints_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 100; trial++ {
		gt := randomPoints(rng, 1+rng.Intn(8))
		pred := randomPoints(rng, 1+rng.Intn(8))

		got := MatchPoints(gt, pred)

		wantMatched := len(gt)
		if len(pred) < wantMatched {
			wantMatched = len(pred)
		}
		assert.Equal(t, wantMatched, got.NumMatched)
		assert.Equal(t, len(pred), got.NumMatched+got.FalsePositives)
		assert.Equal(t, len(gt), got.NumMatched+got.FalseNegatives)
		assert.GreaterOrEqual(t, got.AvgDistance, 0.0)
	}
}

func randomPoints(rng *rand.Rand, n int) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
	}
	return points
}
