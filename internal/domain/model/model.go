// Package model loads the pretrained gradient-boosted flood classifier and
// serves probabilistic predictions from it. The ensemble is immutable after
// load and safe for unsynchronized concurrent reads.
package model

import (
	"fmt"
	"math"
)

// Metadata describes the loaded model. FeatureNames carries the trained
// column order; the classifier only knows positions, so this ordering is
// the contract between request assembly and inference.
type Metadata struct {
	ModelName    string   `json:"model_name"`
	ModelType    string   `json:"model_type"`
	FeatureNames []string `json:"feature_names"`
	FeatureCount int      `json:"feature_count"`
	Version      string   `json:"version"`
}

// node is one split or leaf in a decision tree. A node is a leaf when both
// child indices are negative; Value then holds the leaf contribution.
type node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

func (n node) leaf() bool {
	return n.Left < 0 && n.Right < 0
}

type tree struct {
	Nodes []node `json:"nodes"`
}

// Ensemble is the loaded binary classifier: a sum of regression trees plus
// a base score, squashed through a sigmoid.
type Ensemble struct {
	meta      Metadata
	baseScore float64
	trees     []tree
	loaded    bool
}

// Loaded reports whether the ensemble is ready to serve predictions. A nil
// receiver reads as not loaded so callers can fail fast on a missing model.
func (e *Ensemble) Loaded() bool {
	return e != nil && e.loaded
}

// Metadata returns the model's immutable metadata.
func (e *Ensemble) Metadata() Metadata {
	if e == nil {
		return Metadata{}
	}
	return e.meta
}

// PredictProba evaluates the ensemble on one feature vector and returns the
// two-class distribution [pNoFlood, pFlood], summing to 1.
func (e *Ensemble) PredictProba(vector []float64) ([2]float64, error) {
	if !e.Loaded() {
		return [2]float64{}, ErrNotLoaded
	}
	if len(vector) != e.meta.FeatureCount {
		return [2]float64{}, fmt.Errorf("got %d features, model expects %d: %w",
			len(vector), e.meta.FeatureCount, ErrFeatureCount)
	}

	score := e.baseScore
	for _, t := range e.trees {
		score += t.evaluate(vector)
	}

	pFlood := sigmoid(score)
	return [2]float64{1 - pFlood, pFlood}, nil
}

// evaluate walks the tree from the root to a leaf. Structure is validated
// at load time, so the walk cannot loop or index out of range.
func (t tree) evaluate(vector []float64) float64 {
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.leaf() {
			return n.Value
		}
		if vector[n.Feature] < n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
