package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/healthlens/backend/internal/analysis"
	"github.com/healthlens/backend/internal/gemini"
	"github.com/healthlens/backend/internal/repository"
	"github.com/healthlens/backend/pkg/model"
)

func newChatRouter(t *testing.T, ai *scriptedAI, category model.Category) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t)
	service := analysis.NewService(ai, repository.NewMemoryStore(), logger)
	h := NewChatHandler(service, logger)

	router := gin.New()
	router.POST("/api/v1/chat/"+string(category), h.Handle(category))
	return router
}

// chatForm builds a multipart request body with optional file content
func chatForm(t *testing.T, fields map[string]string, fileName, fileContentType string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileContent != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		header.Set("Content-Type", fileContentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func postChat(t *testing.T, router *gin.Engine, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatHandler_TextTurn(t *testing.T) {
	ai := &scriptedAI{response: "Try **gentle** stretching."}
	router := newChatRouter(t, ai, model.CategoryPosture)

	body, contentType := chatForm(t, map[string]string{
		"message": "my back hurts",
	}, "", "", nil)
	w := postChat(t, router, "/api/v1/chat/posture", body, contentType)

	require.Equal(t, http.StatusOK, w.Code)

	var result model.ChatResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Try gentle stretching.", result.Response, "markdown is stripped")
	assert.Equal(t, model.ChatTypeText, result.Type)
	assert.Contains(t, ai.lastPrompt, "User: my back hurts")
}

func TestChatHandler_HistoryReachesService(t *testing.T) {
	ai := &scriptedAI{response: "ok"}
	router := newChatRouter(t, ai, model.CategoryMental)

	history, err := json.Marshal([]model.ChatMessage{
		{Sender: "user", Content: "I feel stressed"},
		{Sender: "assistant", Content: "That sounds hard"},
	})
	require.NoError(t, err)

	body, contentType := chatForm(t, map[string]string{
		"message":     "still stressed",
		"chatHistory": string(history),
	}, "", "", nil)
	w := postChat(t, router, "/api/v1/chat/mental", body, contentType)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, ai.lastPrompt, "user: I feel stressed")
	assert.Contains(t, ai.lastPrompt, "assistant: That sounds hard")
}

func TestChatHandler_MalformedHistoryIsIgnored(t *testing.T) {
	ai := &scriptedAI{response: "ok"}
	router := newChatRouter(t, ai, model.CategorySkin)

	body, contentType := chatForm(t, map[string]string{
		"message":     "hello",
		"chatHistory": "{not json",
	}, "", "", nil)
	w := postChat(t, router, "/api/v1/chat/skin", body, contentType)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, ai.lastPrompt, "User: hello")
}

func TestChatHandler_ImageTurn(t *testing.T) {
	ai := &scriptedAI{response: "The image shows good alignment."}
	router := newChatRouter(t, ai, model.CategoryPosture)

	imageBytes := []byte("fake-jpeg-bytes")
	body, contentType := chatForm(t, map[string]string{
		"message": "check my posture",
	}, "photo.jpg", "image/jpeg", imageBytes)
	w := postChat(t, router, "/api/v1/chat/posture", body, contentType)

	require.Equal(t, http.StatusOK, w.Code)

	var result model.ChatResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, model.ChatTypeAnalysis, result.Type)
	assert.Equal(t, base64.StdEncoding.EncodeToString(imageBytes), ai.lastImageData)
}

func TestChatHandler_MentalAudioTurn(t *testing.T) {
	ai := &scriptedAI{response: "Thank you for sharing that with me."}
	router := newChatRouter(t, ai, model.CategoryMental)

	body, contentType := chatForm(t, nil, "note.wav", "audio/wav", []byte("fake-audio"))
	w := postChat(t, router, "/api/v1/chat/mental", body, contentType)

	require.Equal(t, http.StatusOK, w.Code)

	var result model.ChatResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, model.ChatTypeText, result.Type)
	assert.Empty(t, ai.lastImageData, "audio bytes never reach the AI service")
}

func TestChatHandler_FailureReturnsLocalizedMessage(t *testing.T) {
	tests := []struct {
		name     string
		category model.Category
		language string
	}{
		{name: "posture in spanish", category: model.CategoryPosture, language: "es"},
		{name: "mental in english", category: model.CategoryMental, language: "en"},
		{name: "mental falls back for japanese", category: model.CategoryMental, language: "ja"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &scriptedAI{err: &gemini.ServiceError{StatusCode: 500}}
			router := newChatRouter(t, ai, tt.category)

			body, contentType := chatForm(t, map[string]string{
				"message":  "hello",
				"language": tt.language,
			}, "", "", nil)
			w := postChat(t, router, "/api/v1/chat/"+string(tt.category), body, contentType)

			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var result model.ChatResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.Equal(t, analysis.FailureMessage(tt.category, tt.language), result.Response)
			assert.Equal(t, model.ChatTypeText, result.Type)
		})
	}
}

func TestChatHandler_FailureMessageDefaultsToEnglish(t *testing.T) {
	ai := &scriptedAI{err: gemini.ErrEmptyResponse}
	router := newChatRouter(t, ai, model.CategoryEye)

	// urlencoded form without a language field
	form := url.Values{"message": {"hi"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/eye", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var result model.ChatResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, analysis.FailureMessage(model.CategoryEye, "en"), result.Response)
}
