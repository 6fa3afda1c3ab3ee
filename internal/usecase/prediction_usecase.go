package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/patrisiyarum/improved-ui/internal/domain/service"
)

// Error definitions for the prediction usecase
var (
	ErrModelNotLoaded   = errors.New("model not loaded")
	ErrClassesNotLoaded = errors.New("classes not loaded")
	ErrEmptyText        = errors.New("text input cannot be empty")
	ErrNoTexts          = errors.New("no texts provided")
)

// PredictInput represents a single-text prediction request
type PredictInput struct {
	Text string `json:"text"`
}

// BulkPredictInput represents a bulk prediction request
type BulkPredictInput struct {
	Texts []string `json:"texts"`
}

// PredictionResult is one ranked label with its probability in percent
type PredictionResult struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// PredictionOutput holds both ranked heads for one text
type PredictionOutput struct {
	MainPredictions []PredictionResult `json:"mainPredictions"`
	SubPredictions  []PredictionResult `json:"subPredictions"`
}

// BulkPredictionOutput holds one prediction per input text, in input order
type BulkPredictionOutput struct {
	Predictions []*PredictionOutput `json:"predictions"`
}

// CategoriesOutput lists both label sequences verbatim
type CategoriesOutput struct {
	MainCategories []string `json:"mainCategories"`
	SubCategories  []string `json:"subCategories"`
}

// HealthOutput reports the loaded state of the model and label sequences
type HealthOutput struct {
	Status           string `json:"status"`
	ModelLoaded      bool   `json:"model_loaded"`
	MainClassesCount int    `json:"main_classes_count"`
	SubClassesCount  int    `json:"sub_classes_count"`
}

// PredictionUsecase defines the interface for prediction business logic
type PredictionUsecase interface {
	Predict(ctx context.Context, input *PredictInput) (*PredictionOutput, error)
	PredictBulk(ctx context.Context, input *BulkPredictInput) (*BulkPredictionOutput, error)
	Categories(ctx context.Context) (*CategoriesOutput, error)
	Health(ctx context.Context) *HealthOutput
}

type predictionUsecase struct {
	classifier service.Classifier
}

// NewPredictionUsecase creates a new prediction usecase. A nil classifier
// is reported through Health; prediction and category requests then fail
// with the service-unavailable errors.
func NewPredictionUsecase(classifier service.Classifier) PredictionUsecase {
	return &predictionUsecase{classifier: classifier}
}

func (u *predictionUsecase) Predict(ctx context.Context, input *PredictInput) (*PredictionOutput, error) {
	if u.classifier == nil {
		return nil, ErrModelNotLoaded
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyText
	}

	set, err := u.classifier.Predict(ctx, input.Text)
	if err != nil {
		return nil, err
	}

	return toPredictionOutput(set), nil
}

func (u *predictionUsecase) PredictBulk(ctx context.Context, input *BulkPredictInput) (*BulkPredictionOutput, error) {
	if u.classifier == nil {
		return nil, ErrModelNotLoaded
	}
	if len(input.Texts) == 0 {
		return nil, ErrNoTexts
	}

	predictions := make([]*PredictionOutput, 0, len(input.Texts))
	for _, text := range input.Texts {
		output, err := u.Predict(ctx, &PredictInput{Text: text})
		if err != nil {
			// One bad item never fails the batch; the sentinel keeps
			// positional alignment with the input list.
			predictions = append(predictions, errorPrediction())
			continue
		}
		predictions = append(predictions, output)
	}

	return &BulkPredictionOutput{Predictions: predictions}, nil
}

func (u *predictionUsecase) Categories(ctx context.Context) (*CategoriesOutput, error) {
	if u.classifier == nil {
		return nil, ErrClassesNotLoaded
	}

	main := u.classifier.MainLabels()
	sub := u.classifier.SubLabels()
	if len(main) == 0 || len(sub) == 0 {
		return nil, ErrClassesNotLoaded
	}

	return &CategoriesOutput{
		MainCategories: main,
		SubCategories:  sub,
	}, nil
}

func (u *predictionUsecase) Health(ctx context.Context) *HealthOutput {
	output := &HealthOutput{Status: "healthy"}
	if u.classifier != nil {
		output.ModelLoaded = true
		output.MainClassesCount = len(u.classifier.MainLabels())
		output.SubClassesCount = len(u.classifier.SubLabels())
	}
	return output
}

func toPredictionOutput(set *service.PredictionSet) *PredictionOutput {
	output := &PredictionOutput{
		MainPredictions: make([]PredictionResult, len(set.Main)),
		SubPredictions:  make([]PredictionResult, len(set.Sub)),
	}
	for i, p := range set.Main {
		output.MainPredictions[i] = PredictionResult{Label: p.Label, Probability: p.Probability}
	}
	for i, p := range set.Sub {
		output.SubPredictions[i] = PredictionResult{Label: p.Label, Probability: p.Probability}
	}
	return output
}

// errorPrediction is the sentinel substituted for a failed batch item.
func errorPrediction() *PredictionOutput {
	return &PredictionOutput{
		MainPredictions: []PredictionResult{{Label: "Error", Probability: 0.0}},
		SubPredictions:  []PredictionResult{{Label: "Error", Probability: 0.0}},
	}
}
