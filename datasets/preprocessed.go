package datasets

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// Preprocessed is the persisted output of the preprocessing pipeline: the
// class-balanced review texts and their one-hot labels, plus the balancing
// parameters used to produce them. The JSON field names match the shape
// expected by the downstream training notebook (preprocessed_data.json).
type Preprocessed struct {
	Texts  []string    `json:"x"`
	Labels [][]float32 `json:"y"`
	Method string      `json:"method"`
	Seed   int64       `json:"seed"`
}

// Save writes the preprocessed dataset as indented JSON to path.
func (p *Preprocessed) Save(path string) error {
	if len(p.Texts) != len(p.Labels) {
		return fmt.Errorf("texts and labels lengths don't match: %d != %d", len(p.Texts), len(p.Labels))
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preprocessed data: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadPreprocessed reads a preprocessed dataset back from path.
func LoadPreprocessed(path string) (*Preprocessed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var p Preprocessed
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	if len(p.Texts) != len(p.Labels) {
		return nil, fmt.Errorf("corrupt preprocessed file %s: %d texts but %d labels",
			path, len(p.Texts), len(p.Labels))
	}
	return &p, nil
}

// LabelTensor returns all labels as a single [len][numClasses] gomlx tensor
// for the training pipeline.
func (p *Preprocessed) LabelTensor() (*tensors.Tensor, error) {
	flat, err := MakeLabelBatchFlat(p.Labels)
	if err != nil {
		return nil, err
	}
	return flat.ToGomlxTensor()
}
