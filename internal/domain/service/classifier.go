package service

import "context"

// Prediction is a single ranked label with its probability expressed as a
// percentage in [0, 100].
type Prediction struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// PredictionSet holds the ranked predictions of both classification heads
// for one input text, each sorted by probability descending.
type PredictionSet struct {
	Main []Prediction
	Sub  []Prediction
}

// Classifier defines the interface for two-headed feedback categorization.
type Classifier interface {
	// Predict classifies a single text and returns ranked predictions
	// for the main-category and subcategory heads.
	Predict(ctx context.Context, text string) (*PredictionSet, error)

	// MainLabels returns the ordered main-category label sequence.
	MainLabels() []string

	// SubLabels returns the ordered subcategory label sequence.
	SubLabels() []string
}
