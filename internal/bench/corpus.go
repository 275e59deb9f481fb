// Package bench provides corpus loading, threshold sweeping and report
// rendering for the evaluation commands.
package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	msa "github.com/jamesainslie/go-msa"
	"github.com/jamesainslie/go-msa/schema"
)

// DefaultSplits are the dataset splits evaluated when none are specified.
var DefaultSplits = []string{"train", "val", "test"}

// Record pairs one annotated image with its ground-truth substructures.
type Record struct {
	Image       string
	GroundTruth msa.LabeledPointSet
}

// rawRecord is the layout of sft_<split>.json: supervised fine-tuning
// conversation records whose second turn carries the substructures JSON.
type rawRecord struct {
	Images        []string `json:"images"`
	Conversations []struct {
		From  string `json:"from"`
		Value string `json:"value"`
	} `json:"conversations"`
}

// LoadSplit reads the annotations for one split from dir/sft_<split>.json.
func LoadSplit(dir, split string) ([]Record, error) {
	path := filepath.Join(dir, fmt.Sprintf("sft_%s.json", split))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading split: %w", err)
	}

	var raws []rawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	records := make([]Record, 0, len(raws))
	for i, raw := range raws {
		if len(raw.Images) == 0 {
			return nil, fmt.Errorf("record %d: no image", i)
		}
		if len(raw.Conversations) < 2 {
			return nil, fmt.Errorf("record %d: no annotation turn", i)
		}
		gt, err := schema.Parse([]byte(raw.Conversations[1].Value))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, Record{Image: raw.Images[0], GroundTruth: gt})
	}

	return records, nil
}

// LoadPredictions reads a predictions file: a JSON array of substructure
// documents, index-aligned with the split's records.
func LoadPredictions(path string) ([]msa.LabeledPointSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading predictions: %w", err)
	}

	var docs []schema.Substructures
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	sets := make([]msa.LabeledPointSet, len(docs))
	for i, doc := range docs {
		set, err := doc.ToLabeledPointSet()
		if err != nil {
			return nil, fmt.Errorf("prediction %d: %w", i, err)
		}
		sets[i] = set
	}

	return sets, nil
}

// Samples zips index-aligned records and predictions into evaluable samples.
// The lists must be the same length; a misalignment further down would be
// undetectable.
func Samples(records []Record, preds []msa.LabeledPointSet) ([]msa.Sample, error) {
	if len(records) != len(preds) {
		return nil, fmt.Errorf("got %d predictions for %d records", len(preds), len(records))
	}

	samples := make([]msa.Sample, len(records))
	for i := range records {
		samples[i] = msa.Sample{
			GroundTruth: records[i].GroundTruth,
			Predicted:   preds[i],
		}
	}
	return samples, nil
}
