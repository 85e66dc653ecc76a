package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthlens/backend/internal/analysis"
	"go.uber.org/zap"
)

// SummaryHandler serves the aggregated health summary endpoint
type SummaryHandler struct {
	service *analysis.SummaryService
	logger  *zap.Logger
}

// NewSummaryHandler creates a SummaryHandler
func NewSummaryHandler(service *analysis.SummaryService, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		logger:  logger,
	}
}

// Get returns the health summary for the userId query parameter
func (h *SummaryHandler) Get(c *gin.Context) {
	userID := c.DefaultQuery("userId", analysis.DefaultUserID)

	summary, err := h.service.Summarize(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to generate health summary",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate health summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"summary":   summary,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
