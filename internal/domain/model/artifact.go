package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// artifact is the on-disk shape of the serialized booster. The format is
// owned by the offline training pipeline, which exports the trained model
// as a JSON tree dump alongside a metadata file.
type artifact struct {
	BaseScore float64 `json:"base_score"`
	Trees     []tree  `json:"trees"`
}

// Load reads the model artifact and its metadata and returns a ready
// ensemble. The result is immutable; reloading requires a process restart.
func Load(modelPath, metaPath string) (*Ensemble, error) {
	meta, err := loadMetadata(metaPath)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", modelPath, err)
	}
	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %v: %w", modelPath, err, ErrArtifact)
	}
	if len(art.Trees) == 0 {
		return nil, fmt.Errorf("artifact has no trees: %w", ErrArtifact)
	}
	for i, t := range art.Trees {
		if err := validateTree(t, meta.FeatureCount); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}

	return &Ensemble{
		meta:      meta,
		baseScore: art.BaseScore,
		trees:     art.Trees,
		loaded:    true,
	}, nil
}

func loadMetadata(path string) (Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read model metadata %s: %w", path, err)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, fmt.Errorf("parse model metadata %s: %v: %w", path, err, ErrArtifact)
	}
	if len(meta.FeatureNames) == 0 {
		return Metadata{}, fmt.Errorf("metadata lists no feature names: %w", ErrArtifact)
	}
	if meta.FeatureCount == 0 {
		meta.FeatureCount = len(meta.FeatureNames)
	}
	if meta.FeatureCount != len(meta.FeatureNames) {
		return Metadata{}, fmt.Errorf("feature_count %d disagrees with %d feature names: %w",
			meta.FeatureCount, len(meta.FeatureNames), ErrArtifact)
	}
	return meta, nil
}

// validateTree checks that every reachable node has in-range child and
// feature indices and that the walk from the root always terminates. Doing
// this once at load keeps the inference path free of bounds checks.
func validateTree(t tree, featureCount int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes: %w", ErrArtifact)
	}

	seen := make([]bool, len(t.Nodes))
	stack := []int{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if idx < 0 || idx >= len(t.Nodes) {
			return fmt.Errorf("node index %d out of range: %w", idx, ErrArtifact)
		}
		if seen[idx] {
			return fmt.Errorf("node %d visited twice, tree is not acyclic: %w", idx, ErrArtifact)
		}
		seen[idx] = true

		n := t.Nodes[idx]
		if n.leaf() {
			continue
		}
		if n.Left < 0 || n.Right < 0 {
			return fmt.Errorf("node %d mixes leaf and split markers: %w", idx, ErrArtifact)
		}
		if n.Feature < 0 || n.Feature >= featureCount {
			return fmt.Errorf("node %d splits on feature %d, model has %d: %w",
				idx, n.Feature, featureCount, ErrArtifact)
		}
		stack = append(stack, n.Left, n.Right)
	}
	return nil
}
