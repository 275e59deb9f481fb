//go:build ignore

// Generate synthetic annotation splits plus jittered predictions, so
// msa-bench can be exercised without a model or real dataset.
// Usage: go run ./scripts/gen-fixtures.go [-out testdata] [-samples 20]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

var labels = []string{
	"left_ventricle",
	"right_ventricle",
	"septum",
	"apex",
	"mitral_valve",
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type substructure struct {
	Name   string  `json:"name"`
	Points []point `json:"points"`
}

type document struct {
	Substructures []substructure `json:"substructures"`
}

type turn struct {
	From  string `json:"from"`
	Value string `json:"value"`
}

type record struct {
	Images        []string `json:"images"`
	Conversations []turn   `json:"conversations"`
}

func main() {
	out := flag.String("out", "testdata", "Output directory")
	samples := flag.Int("samples", 20, "Samples per split")
	seed := flag.Int64("seed", 17, "RNG seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	if err := os.MkdirAll(*out, 0o755); err != nil {
		fatal(err)
	}

	for _, split := range []string{"train", "val", "test"} {
		var records []record
		var preds []document

		for i := 0; i < *samples; i++ {
			gt := randomDocument(rng)
			value, err := json.Marshal(gt)
			if err != nil {
				fatal(err)
			}
			records = append(records, record{
				Images: []string{fmt.Sprintf("images/%s_%03d.jpg", split, i)},
				Conversations: []turn{
					{From: "human", Value: "Identify the substructures."},
					{From: "gpt", Value: string(value)},
				},
			})
			preds = append(preds, jitter(rng, gt))
		}

		writeJSON(filepath.Join(*out, fmt.Sprintf("sft_%s.json", split)), records)
		writeJSON(filepath.Join(*out, fmt.Sprintf("preds_%s.json", split)), preds)
	}
}

func randomDocument(rng *rand.Rand) document {
	var doc document
	for _, name := range labels {
		if rng.Float64() < 0.2 {
			continue // label absent from this sample
		}
		n := 2 + rng.Intn(6)
		sub := substructure{Name: name}
		for j := 0; j < n; j++ {
			sub.Points = append(sub.Points, point{
				X: rng.Float64() * 512,
				Y: rng.Float64() * 512,
			})
		}
		doc.Substructures = append(doc.Substructures, sub)
	}
	return doc
}

// jitter perturbs a ground-truth document into a plausible prediction:
// small coordinate noise, occasional dropped or spurious points.
func jitter(rng *rand.Rand, gt document) document {
	var pred document
	for _, sub := range gt.Substructures {
		if rng.Float64() < 0.1 {
			continue // missed label
		}
		out := substructure{Name: sub.Name}
		for _, p := range sub.Points {
			if rng.Float64() < 0.1 {
				continue // missed point
			}
			out.Points = append(out.Points, point{
				X: p.X + rng.NormFloat64()*3,
				Y: p.Y + rng.NormFloat64()*3,
			})
		}
		if rng.Float64() < 0.15 {
			out.Points = append(out.Points, point{
				X: rng.Float64() * 512,
				Y: rng.Float64() * 512,
			})
		}
		pred.Substructures = append(pred.Substructures, out)
	}
	return pred
}

func writeJSON(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fatal(err)
	}
	fmt.Println("wrote", path)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
