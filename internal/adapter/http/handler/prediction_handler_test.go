package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/patrisiyarum/improved-ui/internal/usecase"
)

// MockPredictionUsecase is a mock implementation of PredictionUsecase
type MockPredictionUsecase struct {
	mock.Mock
}

func (m *MockPredictionUsecase) Predict(ctx context.Context, input *usecase.PredictInput) (*usecase.PredictionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictionOutput), args.Error(1)
}

func (m *MockPredictionUsecase) PredictBulk(ctx context.Context, input *usecase.BulkPredictInput) (*usecase.BulkPredictionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BulkPredictionOutput), args.Error(1)
}

func (m *MockPredictionUsecase) Categories(ctx context.Context) (*usecase.CategoriesOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CategoriesOutput), args.Error(1)
}

func (m *MockPredictionUsecase) Health(ctx context.Context) *usecase.HealthOutput {
	args := m.Called(ctx)
	return args.Get(0).(*usecase.HealthOutput)
}

func setupTestRouter(h *PredictionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/predict", h.Predict)
	r.POST("/predict/bulk", h.PredictBulk)
	r.GET("/categories", h.Categories)
	return r
}

func samplePredictionOutput() *usecase.PredictionOutput {
	return &usecase.PredictionOutput{
		MainPredictions: []usecase.PredictionResult{
			{Label: "Billing", Probability: 82.5},
			{Label: "Technical", Probability: 17.5},
		},
		SubPredictions: []usecase.PredictionResult{
			{Label: "Refund", Probability: 61.0},
			{Label: "Outage", Probability: 39.0},
		},
	}
}

func TestPredict_Success(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	mockUC.On("Predict", mock.Anything, mock.MatchedBy(func(input *usecase.PredictInput) bool {
		return input.Text == "the invoice was wrong"
	})).Return(samplePredictionOutput(), nil)

	body := `{"text": "the invoice was wrong"}`
	req, _ := http.NewRequest("POST", "/predict", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response usecase.PredictionOutput
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.MainPredictions, 2)
	assert.Equal(t, "Billing", response.MainPredictions[0].Label)
	assert.Contains(t, w.Body.String(), `"mainPredictions"`)
	assert.Contains(t, w.Body.String(), `"subPredictions"`)
	mockUC.AssertExpectations(t)
}

func TestPredict_EmptyText(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	mockUC.On("Predict", mock.Anything, mock.Anything).Return(nil, usecase.ErrEmptyText)

	for _, body := range []string{`{"text": ""}`, `{"text": "   "}`} {
		req, _ := http.NewRequest("POST", "/predict", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	}
}

func TestPredict_ModelNotLoaded(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	mockUC.On("Predict", mock.Anything, mock.Anything).Return(nil, usecase.ErrModelNotLoaded)

	req, _ := http.NewRequest("POST", "/predict", bytes.NewBufferString(`{"text": "hello"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "SERVICE_UNAVAILABLE")
}

func TestPredict_InternalError(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	mockUC.On("Predict", mock.Anything, mock.Anything).Return(nil, errors.New("inference failed"))

	req, _ := http.NewRequest("POST", "/predict", bytes.NewBufferString(`{"text": "hello"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "inference failed")
}

func TestPredict_MalformedJSON(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	req, _ := http.NewRequest("POST", "/predict", bytes.NewBufferString(`{"text": `))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictBulk_Success(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	bulkOutput := &usecase.BulkPredictionOutput{
		Predictions: []*usecase.PredictionOutput{
			samplePredictionOutput(),
			{
				MainPredictions: []usecase.PredictionResult{{Label: "Error", Probability: 0.0}},
				SubPredictions:  []usecase.PredictionResult{{Label: "Error", Probability: 0.0}},
			},
			samplePredictionOutput(),
		},
	}

	mockUC.On("PredictBulk", mock.Anything, mock.MatchedBy(func(input *usecase.BulkPredictInput) bool {
		return len(input.Texts) == 3
	})).Return(bulkOutput, nil)

	body := `{"texts": ["a", "b", "c"]}`
	req, _ := http.NewRequest("POST", "/predict/bulk", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response usecase.BulkPredictionOutput
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Predictions, 3)
	assert.Equal(t, "Error", response.Predictions[1].MainPredictions[0].Label)
	mockUC.AssertExpectations(t)
}

func TestPredictBulk_EmptyList(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	mockUC.On("PredictBulk", mock.Anything, mock.Anything).Return(nil, usecase.ErrNoTexts)

	req, _ := http.NewRequest("POST", "/predict/bulk", bytes.NewBufferString(`{"texts": []}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no texts provided")
}

func TestPredictBulk_ModelNotLoaded(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	mockUC.On("PredictBulk", mock.Anything, mock.Anything).Return(nil, usecase.ErrModelNotLoaded)

	req, _ := http.NewRequest("POST", "/predict/bulk", bytes.NewBufferString(`{"texts": ["a"]}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCategories_Success(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	mockUC.On("Categories", mock.Anything).Return(&usecase.CategoriesOutput{
		MainCategories: []string{"Billing", "Technical"},
		SubCategories:  []string{"Refund", "Outage"},
	}, nil)

	req, _ := http.NewRequest("GET", "/categories", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response usecase.CategoriesOutput
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Billing", "Technical"}, response.MainCategories)
	assert.Equal(t, []string{"Refund", "Outage"}, response.SubCategories)
	assert.Contains(t, w.Body.String(), `"mainCategories"`)
	assert.Contains(t, w.Body.String(), `"subCategories"`)
}

func TestCategories_NotLoaded(t *testing.T) {
	mockUC := new(MockPredictionUsecase)
	router := setupTestRouter(NewPredictionHandler(mockUC))

	mockUC.On("Categories", mock.Anything).Return(nil, usecase.ErrClassesNotLoaded)

	req, _ := http.NewRequest("GET", "/categories", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "classes not loaded")
}
