package bench

import (
	"fmt"
	"io"
	"strings"

	msa "github.com/jamesainslie/go-msa"
)

const reportWidth = 50

// WriteReport renders one split's summary as the standard two-section table:
// label-level rows, then point-level rows including the average distance.
func WriteReport(w io.Writer, split string, s msa.Summary) {
	banner := strings.Repeat("=", reportWidth)
	sep := strings.Repeat("-", reportWidth)

	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintf(w, "Metrics for Split: '%s'\n", split)
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "%-25s%10s\n", "Metric", "Value")
	fmt.Fprintln(w, sep)

	fmt.Fprintf(w, "%-25s%.2f\n", "Label-Level Precision", s.Labels.Precision)
	fmt.Fprintf(w, "%-25s%.2f\n", "Label-Level Recall", s.Labels.Recall)
	fmt.Fprintf(w, "%-25s%.2f\n", "Label-Level F1-Score", s.Labels.F1)

	fmt.Fprintln(w, sep)

	fmt.Fprintf(w, "%-25s%.2f\n", "Point-Level Precision", s.Points.Precision)
	fmt.Fprintf(w, "%-25s%.2f\n", "Point-Level Recall", s.Points.Recall)
	fmt.Fprintf(w, "%-25s%.2f\n", "Point-Level F1-Score", s.Points.F1)
	fmt.Fprintf(w, "%-25s%.2f\n", "Avg. Euclidean Distance", s.Points.AvgDistance)
	fmt.Fprintln(w, banner)
}

// WritePerLabel renders one sample's per-label breakdown.
func WritePerLabel(w io.Writer, metrics msa.SampleMetrics) {
	fmt.Fprintf(w, "%-20s %8s %8s %8s %10s\n", "Label", "Matched", "FP", "FN", "AvgDist")
	fmt.Fprintln(w, strings.Repeat("-", 58))
	for _, m := range metrics.PerLabel {
		fmt.Fprintf(w, "%-20s %8d %8d %8d %10.2f\n",
			m.Label, m.NumMatched, m.FalsePositives, m.FalseNegatives, m.AvgDistance)
	}
	fmt.Fprintf(w, "\nLabels: %d matched, %d false positive, %d false negative\n",
		metrics.MatchedLabels, metrics.FalsePositiveLabels, metrics.FalseNegativeLabels)
}
