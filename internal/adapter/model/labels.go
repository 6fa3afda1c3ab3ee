package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadLabels parses a label file containing a JSON array of class names.
// The order of the array must match the model's output vector for the
// corresponding head, element for element.
func LoadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label file: %w", err)
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("failed to parse label file %s: %w", path, err)
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("label file %s contains no classes", path)
	}

	return labels, nil
}
