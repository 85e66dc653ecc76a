package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthlens/backend/pkg/model"
	"go.uber.org/zap"
)

// allowedUploadTypes whitelists upload MIME types per category
var allowedUploadTypes = map[model.Category][]string{
	model.CategoryPosture: {"image/jpeg", "image/png", "video/mp4"},
	model.CategorySkin:    {"image/jpeg", "image/png"},
	model.CategoryEye:     {"image/jpeg", "image/png"},
	model.CategoryMental:  {"audio/mpeg", "audio/wav", "audio/mp3"},
}

// UploadHandler validates file uploads before any analysis is attempted
type UploadHandler struct {
	maxFileSize int64
	logger      *zap.Logger
}

// NewUploadHandler creates an UploadHandler with the given size cap in bytes
func NewUploadHandler(maxFileSize int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Post validates the uploaded file's type and size for its category and
// issues a file ID for the subsequent analyze call.
func (h *UploadHandler) Post(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No file provided",
		})
		return
	}
	defer file.Close()

	category := model.Category(c.PostForm("category"))
	contentType := header.Header.Get("Content-Type")

	allowed := allowedUploadTypes[category]
	if !contains(allowed, contentType) {
		h.logger.Warn("rejected upload with invalid file type",
			zap.String("category", string(category)),
			zap.String("file_type", contentType),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": fmt.Sprintf("Invalid file type for %s analysis. Allowed types: %s",
				category, strings.Join(allowed, ", ")),
		})
		return
	}

	if header.Size > h.maxFileSize {
		h.logger.Warn("rejected oversized upload",
			zap.String("category", string(category)),
			zap.Int64("file_size", header.Size),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "File size too large. Maximum size is 10MB",
		})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"fileId":     fmt.Sprintf("%s_%d", category, now.UnixMilli()),
		"fileName":   header.Filename,
		"fileSize":   header.Size,
		"fileType":   contentType,
		"uploadedAt": now.UTC().Format(time.RFC3339),
		"message":    "File uploaded successfully and ready for analysis",
	})
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
