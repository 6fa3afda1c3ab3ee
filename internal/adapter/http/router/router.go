package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/patrisiyarum/improved-ui/internal/adapter/http/handler"
	"github.com/patrisiyarum/improved-ui/internal/adapter/http/middleware"
	"github.com/patrisiyarum/improved-ui/internal/domain/service"
	"github.com/patrisiyarum/improved-ui/internal/usecase"
)

// Setup creates and configures the Gin router. The classifier is the
// immutable state loaded at startup; a nil classifier makes prediction
// routes answer service-unavailable while the status routes keep working.
func Setup(classifier service.Classifier, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Initialize usecases
	predictionUC := usecase.NewPredictionUsecase(classifier)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(predictionUC)
	predictionHandler := handler.NewPredictionHandler(predictionUC)

	// Status endpoints
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Prediction routes
	router.POST("/predict", predictionHandler.Predict)
	router.POST("/predict/bulk", predictionHandler.PredictBulk)
	router.GET("/categories", predictionHandler.Categories)

	return router
}
