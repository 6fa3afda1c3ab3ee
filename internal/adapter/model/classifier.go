package model

import (
	"context"
	"fmt"
	"sort"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"

	"github.com/patrisiyarum/improved-ui/internal/domain/service"
	"github.com/patrisiyarum/improved-ui/internal/infrastructure/config"
)

// Output head names of the exported categorization model.
const (
	mainOutputName = "main_category_output"
	subOutputName  = "subcategory_output"
)

// Classifier runs the two-headed feedback categorization model in-process
// through ONNX Runtime. It implements service.Classifier.
//
// The session is created once at startup with preallocated input and output
// tensors that are reused across calls, so Predict serializes inference.
type Classifier struct {
	session    *ort.AdvancedSession
	input      *ort.Tensor[float32]
	mainOut    *ort.Tensor[float32]
	subOut     *ort.Tensor[float32]
	featurizer *Featurizer
	mainLabels []string
	subLabels  []string

	mu sync.Mutex
}

// NewClassifier loads the model artifact and both label files. Any failure
// is fatal to the caller: no request can be served correctly without all
// three, so the process must not start serving on a partial load.
func NewClassifier(cfg *config.ModelConfig, log *zap.Logger) (*Classifier, error) {
	mainLabels, err := LoadLabels(cfg.MainClasses)
	if err != nil {
		return nil, fmt.Errorf("failed to load main category classes: %w", err)
	}

	subLabels, err := LoadLabels(cfg.SubClasses)
	if err != nil {
		return nil, fmt.Errorf("failed to load subcategory classes: %w", err)
	}

	if cfg.ONNXLibrary != "" {
		ort.SetSharedLibraryPath(cfg.ONNXLibrary)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect model %s: %w", cfg.Path, err)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("model %s declares %d inputs, expected 1", cfg.Path, len(inputs))
	}
	if len(outputs) != 2 {
		return nil, fmt.Errorf("model %s declares %d outputs, expected 2 heads", cfg.Path, len(outputs))
	}

	featureDim, err := featureDimension(inputs[0])
	if err != nil {
		return nil, err
	}

	mainInfo, subInfo := matchHeads(outputs)

	// The i-th label must correspond to the i-th output probability, so a
	// size mismatch means the label files and artifact are out of sync.
	if err := checkHead(mainInfo, len(mainLabels)); err != nil {
		return nil, err
	}
	if err := checkHead(subInfo, len(subLabels)); err != nil {
		return nil, err
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(featureDim)))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	mainOut, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(mainLabels))))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("failed to create main output tensor: %w", err)
	}

	subOut, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(subLabels))))
	if err != nil {
		input.Destroy()
		mainOut.Destroy()
		return nil, fmt.Errorf("failed to create sub output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfg.Path,
		[]string{inputs[0].Name}, []string{mainInfo.Name, subInfo.Name},
		[]ort.Value{input}, []ort.Value{mainOut, subOut},
		nil)
	if err != nil {
		input.Destroy()
		mainOut.Destroy()
		subOut.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	log.Info("Classes loaded",
		zap.Int("main_categories", len(mainLabels)),
		zap.Int("subcategories", len(subLabels)),
		zap.Int("feature_dim", featureDim),
	)

	return &Classifier{
		session:    session,
		input:      input,
		mainOut:    mainOut,
		subOut:     subOut,
		featurizer: NewFeaturizer(featureDim),
		mainLabels: mainLabels,
		subLabels:  subLabels,
	}, nil
}

// Predict classifies a single text and returns both heads ranked by
// probability descending, scaled to percentages.
func (c *Classifier) Predict(ctx context.Context, text string) (*service.PredictionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	features := c.featurizer.Vector(text)

	c.mu.Lock()
	copy(c.input.GetData(), features)
	if err := c.session.Run(); err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	mainProbs := append([]float32(nil), c.mainOut.GetData()...)
	subProbs := append([]float32(nil), c.subOut.GetData()...)
	c.mu.Unlock()

	return &service.PredictionSet{
		Main: rankPredictions(c.mainLabels, mainProbs),
		Sub:  rankPredictions(c.subLabels, subProbs),
	}, nil
}

// MainLabels returns the ordered main-category label sequence.
func (c *Classifier) MainLabels() []string {
	return c.mainLabels
}

// SubLabels returns the ordered subcategory label sequence.
func (c *Classifier) SubLabels() []string {
	return c.subLabels
}

// Close releases the session, tensors and the ONNX environment.
func (c *Classifier) Close() {
	if c.input != nil {
		c.input.Destroy()
	}
	if c.mainOut != nil {
		c.mainOut.Destroy()
	}
	if c.subOut != nil {
		c.subOut.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}

// rankPredictions pairs each raw probability with its label positionally,
// scales to a percentage and sorts descending. The model emits normalized
// probabilities in [0, 1]; ties keep label-file order.
func rankPredictions(labels []string, probs []float32) []service.Prediction {
	preds := make([]service.Prediction, len(labels))
	for i, label := range labels {
		preds[i] = service.Prediction{
			Label:       label,
			Probability: float64(probs[i]) * 100,
		}
	}

	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Probability > preds[j].Probability
	})

	return preds
}

// featureDimension extracts the static feature width from the model input.
// A dynamic batch dimension is fine (requests run as single-element
// batches); a dynamic feature dimension is not.
func featureDimension(input ort.InputOutputInfo) (int, error) {
	dims := input.Dimensions
	if len(dims) != 2 {
		return 0, fmt.Errorf("model input %s has rank %d, expected [batch, features]", input.Name, len(dims))
	}
	if dims[1] <= 0 {
		return 0, fmt.Errorf("model input %s has dynamic feature dimension", input.Name)
	}
	return int(dims[1]), nil
}

// matchHeads identifies the main and sub heads by output name, falling back
// to declaration order for artifacts exported with renamed outputs.
func matchHeads(outputs []ort.InputOutputInfo) (main, sub ort.InputOutputInfo) {
	main, sub = outputs[0], outputs[1]
	for _, out := range outputs {
		switch out.Name {
		case mainOutputName:
			main = out
		case subOutputName:
			sub = out
		}
	}
	return main, sub
}

func checkHead(out ort.InputOutputInfo, labelCount int) error {
	dims := out.Dimensions
	classes := int(dims[len(dims)-1])
	if classes != labelCount {
		return fmt.Errorf("output %s produces %d classes but %d labels were loaded",
			out.Name, classes, labelCount)
	}
	return nil
}
