package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patrisiyarum/improved-ui/internal/usecase"
)

// PredictionHandler handles prediction-related HTTP requests
type PredictionHandler struct {
	predictionUC usecase.PredictionUsecase
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionUC usecase.PredictionUsecase) *PredictionHandler {
	return &PredictionHandler{predictionUC: predictionUC}
}

// Predict handles POST /predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	var input usecase.PredictInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.predictionUC.Predict(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

// PredictBulk handles POST /predict/bulk
func (h *PredictionHandler) PredictBulk(c *gin.Context) {
	var input usecase.BulkPredictInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.predictionUC.PredictBulk(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

// Categories handles GET /categories
func (h *PredictionHandler) Categories(c *gin.Context) {
	output, err := h.predictionUC.Categories(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}
