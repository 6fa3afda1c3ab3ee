package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patrisiyarum/improved-ui/internal/usecase"
)

// Service descriptor returned by the root endpoint.
const (
	serviceMessage = "FCR Feedback Categorization API"
	serviceVersion = "2.2"
)

// HealthHandler handles the status and health check endpoints. Both always
// answer 200 so callers can poll them regardless of model state.
type HealthHandler struct {
	predictionUC usecase.PredictionUsecase
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(predictionUC usecase.PredictionUsecase) *HealthHandler {
	return &HealthHandler{predictionUC: predictionUC}
}

// StatusResponse is the static service descriptor
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status:  "online",
		Message: serviceMessage,
		Version: serviceVersion,
	})
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictionUC.Health(c.Request.Context()))
}
