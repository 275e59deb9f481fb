// Package schema defines the structured-output contract for substructure
// predictions and decodes raw model output into evaluable point sets.
//
// The wire format is the JSON document a constrained-decoding engine is asked
// to produce (see JSONSchema): a list of named substructures, each with an
// ordered list of {x, y} points.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	msa "github.com/jamesainslie/go-msa"
)

// Point is one predicted coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Substructure is one named, ordered point list.
type Substructure struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Substructures is the top-level prediction document.
type Substructures struct {
	Substructures []Substructure `json:"substructures"`
}

// JSONSchema is the JSON Schema for Substructures, suitable for
// guided/constrained decoding so the model can only emit well-formed output.
const JSONSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Substructures",
  "type": "object",
  "properties": {
    "substructures": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "points": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "x": {"type": "number"},
                "y": {"type": "number"}
              },
              "required": ["x", "y"]
            }
          }
        },
        "required": ["name", "points"]
      }
    }
  },
  "required": ["substructures"]
}`

// Parse decodes a raw prediction document into a LabeledPointSet and
// validates it. Duplicate substructure names and non-finite coordinates are
// rejected; label identity downstream is exact string equality, so a
// duplicate name would silently drop points.
func Parse(raw []byte) (msa.LabeledPointSet, error) {
	var doc Substructures
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding substructures: %w", err)
	}
	return doc.ToLabeledPointSet()
}

// ToLabeledPointSet converts the document into the metric engine's input
// shape, validating names and coordinates.
func (d Substructures) ToLabeledPointSet() (msa.LabeledPointSet, error) {
	set := make(msa.LabeledPointSet, len(d.Substructures))
	for _, sub := range d.Substructures {
		if sub.Name == "" {
			return nil, fmt.Errorf("substructure with empty name")
		}
		if _, ok := set[sub.Name]; ok {
			return nil, fmt.Errorf("duplicate substructure name %q", sub.Name)
		}
		points := make([]msa.Point, len(sub.Points))
		for i, p := range sub.Points {
			points[i] = msa.Point{X: p.X, Y: p.Y}
		}
		set[sub.Name] = points
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// FromLabeledPointSet converts an evaluable point set back into the wire
// document, with substructures sorted by name.
func FromLabeledPointSet(set msa.LabeledPointSet) Substructures {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := Substructures{Substructures: make([]Substructure, 0, len(set))}
	for _, name := range names {
		points := set[name]
		sub := Substructure{Name: name, Points: make([]Point, len(points))}
		for i, p := range points {
			sub.Points[i] = Point{X: p.X, Y: p.Y}
		}
		doc.Substructures = append(doc.Substructures, sub)
	}
	return doc
}
