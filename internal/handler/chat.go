package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/healthlens/backend/internal/analysis"
	"github.com/healthlens/backend/pkg/model"
	"go.uber.org/zap"
)

// ChatHandler serves the multi-turn chat endpoints, one per category
type ChatHandler struct {
	service *analysis.Service
	logger  *zap.Logger
}

// NewChatHandler creates a ChatHandler
func NewChatHandler(service *analysis.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// Handle returns the chat endpoint for category. Requests are multipart:
// message, chatHistory (JSON array), optional file, optional language.
// Failures never surface bare errors; the response always carries a
// localized, supportive message.
func (h *ChatHandler) Handle(category model.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		message := c.PostForm("message")
		language := c.DefaultPostForm("language", analysis.DefaultLanguage)

		var history []model.ChatMessage
		if historyStr := c.PostForm("chatHistory"); historyStr != "" {
			if err := json.Unmarshal([]byte(historyStr), &history); err != nil {
				h.logger.Warn("failed to parse chat history, continuing without it",
					zap.String("category", string(category)),
					zap.Error(err),
				)
				history = nil
			}
		}

		imageData, isAudio := h.readUpload(c, category)

		result, err := h.service.Chat(c.Request.Context(), analysis.ChatInput{
			Category:  category,
			Message:   message,
			History:   history,
			ImageData: imageData,
			IsAudio:   isAudio,
			Language:  language,
		})
		if err != nil {
			h.logger.Error("chat turn failed",
				zap.String("category", string(category)),
				zap.String("language", language),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, model.ChatResult{
				Response: analysis.FailureMessage(category, language),
				Type:     model.ChatTypeText,
			})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// readUpload extracts an optional uploaded file as base64 image data and
// reports whether it was audio. A missing or unreadable file is not an error.
func (h *ChatHandler) readUpload(c *gin.Context, category model.Category) (imageData string, isAudio bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		return "", false
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	isAudio = strings.HasPrefix(contentType, "audio/")

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("failed to read uploaded file",
			zap.String("category", string(category)),
			zap.String("file_name", header.Filename),
			zap.Error(err),
		)
		return "", isAudio
	}

	return base64.StdEncoding.EncodeToString(data), isAudio
}
