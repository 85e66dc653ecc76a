package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthlens/backend/internal/analysis"
	"github.com/healthlens/backend/pkg/model"
	"go.uber.org/zap"
)

// AnalyzeHandler serves the single-shot analysis endpoints, one per category
type AnalyzeHandler struct {
	service *analysis.Service
	logger  *zap.Logger
}

// NewAnalyzeHandler creates an AnalyzeHandler
func NewAnalyzeHandler(service *analysis.Service, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
		logger:  logger,
	}
}

type analyzeRequest struct {
	FileID       string          `json:"fileId"`
	AnalysisData json.RawMessage `json:"analysisData"`
	UserID       string          `json:"userId"`
	Language     string          `json:"language"`
}

type analyzeResponse struct {
	Success        bool                 `json:"success"`
	Analysis       model.AnalysisResult `json:"analysis"`
	Timestamp      string               `json:"timestamp"`
	AnalysisID     string               `json:"analysisId"`
	ProcessingTime string               `json:"processingTime"`
	Saved          bool                 `json:"saved"`
}

// Handle returns the analyze endpoint for category. The category is fixed per
// route, never taken from the request body.
func (h *AnalyzeHandler) Handle(category model.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req analyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Error("invalid analyze request body",
				zap.String("category", string(category)),
				zap.Error(err),
			)
			h.respondError(c, category)
			return
		}

		out, err := h.service.Analyze(c.Request.Context(), analysis.AnalyzeInput{
			Category:       category,
			UserID:         req.UserID,
			FileID:         req.FileID,
			AdditionalData: string(req.AnalysisData),
			Language:       req.Language,
		})
		if err != nil {
			h.logger.Error("analysis failed",
				zap.String("category", string(category)),
				zap.Error(err),
			)
			h.respondError(c, category)
			return
		}

		c.JSON(http.StatusOK, analyzeResponse{
			Success:        true,
			Analysis:       out.Analysis,
			Timestamp:      time.Now().UTC().Format(time.RFC3339),
			AnalysisID:     out.AnalysisID,
			ProcessingTime: "Real-time AI analysis",
			Saved:          out.Saved,
		})
	}
}

// respondError emits the fixed generic failure payload. The upstream error
// kind is logged but never detailed to the caller.
func (h *AnalyzeHandler) respondError(c *gin.Context, category model.Category) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Failed to analyze " + string(category) + " data",
		"message": "Please try again or contact support if the issue persists",
	})
}
