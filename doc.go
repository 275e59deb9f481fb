// Package msa scores Multi-Set Alignment: how well a model's predicted
// substructures (named, ordered 2D point sets) reproduce ground-truth
// annotations.
//
// # Quick Start
//
//	samples := []msa.Sample{{
//	    GroundTruth: msa.LabeledPointSet{"apex": {{X: 10, Y: 20}}},
//	    Predicted:   msa.LabeledPointSet{"apex": {{X: 11, Y: 19}}},
//	}}
//	perSample, summary := msa.Evaluate(samples)
//	fmt.Printf("label F1 %.2f, point F1 %.2f, avg distance %.2f\n",
//	    summary.Labels.F1, summary.Points.F1, summary.Points.AvgDistance)
//
// # How scoring works
//
// Labels are matched by exact name. For each label present on both sides the
// point lists are paired by solving the rectangular linear assignment problem
// under Euclidean cost, so the pairing is globally optimal rather than greedy
// and has no distance cutoff. Per-sample counts roll up into corpus-level
// precision/recall/F1 at label and point granularity, plus the average
// distance of matched point pairs.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. Evaluate can fan out
// across samples itself via WithWorkers.
//
// Obtaining predictions and ground truth is out of scope here: see the detect
// package for the model-backed prediction source and the schema package for
// the wire format of annotations and predictions.
package msa
