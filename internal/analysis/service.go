package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/healthlens/backend/internal/gemini"
	"github.com/healthlens/backend/internal/repository"
	"github.com/healthlens/backend/pkg/model"
	"go.uber.org/zap"
)

// DefaultUserID is the shared identity used when a caller supplies none
const DefaultUserID = "default"

// AIClient generates model output for a prompt and optional base64 image data
type AIClient interface {
	GenerateContent(ctx context.Context, prompt, imageData string, cfg gemini.GenerationConfig) (string, error)
}

// Service orchestrates the analysis pipeline: prompt building, the AI call,
// normalization, and record persistence.
type Service struct {
	ai     AIClient
	store  repository.RecordStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates an analysis Service
func NewService(ai AIClient, store repository.RecordStore, logger *zap.Logger) *Service {
	return &Service{
		ai:     ai,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// AnalyzeInput is the transient request for a single-shot analysis run
type AnalyzeInput struct {
	Category       model.Category
	UserID         string
	FileID         string
	AdditionalData string // serialized caller-supplied context, may be empty
	Language       string
}

// AnalyzeOutput is the terminal success state of the analyze flow
type AnalyzeOutput struct {
	Analysis   model.AnalysisResult
	AnalysisID string
	Timestamp  string
	Saved      bool
}

// Analyze runs the analyze flow: build prompt, call the AI service, normalize
// (falling back to synthesis on malformed output), then persist a health
// record. Persistence is best-effort: a store failure degrades Saved to false
// without failing the run.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (*AnalyzeOutput, error) {
	s.logger.Info("starting analysis",
		zap.String("category", string(in.Category)),
		zap.String("language", in.Language),
	)

	input := AnalysisInput(in.Category, in.AdditionalData)
	prompt := BuildAnalysisPrompt(in.Category, input, in.Language)

	raw, err := s.ai.GenerateContent(ctx, prompt, "", gemini.AnalysisConfig)
	if err != nil {
		s.logger.Error("analysis AI call failed",
			zap.String("category", string(in.Category)),
			zap.String("stage", "call_ai"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to analyze with AI service: %w", err)
	}

	normalized := Normalize(raw, in.Category)
	if !normalized.Parsed {
		s.logger.Warn("structured parse failed, synthesized fallback result",
			zap.String("category", string(in.Category)),
		)
	}

	userID := in.UserID
	if userID == "" {
		userID = DefaultUserID
	}

	now := s.now()
	record := &model.HealthRecord{
		ID:        fmt.Sprintf("%s_%d", in.Category, now.UnixMilli()),
		UserID:    userID,
		Category:  in.Category,
		Analysis:  normalized.Result,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
	if in.FileID != "" {
		record.FileInfo = &model.FileInfo{
			FileName: fmt.Sprintf("%s_scan_%s", in.Category, in.FileID),
			FileSize: 0,
			FileType: "image/jpeg",
		}
	}

	saved := true
	if err := s.store.Append(ctx, record); err != nil {
		s.logger.Warn("failed to save health record",
			zap.String("record_id", record.ID),
			zap.String("stage", "persist"),
			zap.Error(err),
		)
		saved = false
	}

	s.logger.Info("analysis completed",
		zap.String("record_id", record.ID),
		zap.Bool("parsed", normalized.Parsed),
		zap.Bool("saved", saved),
	)

	return &AnalyzeOutput{
		Analysis:   normalized.Result,
		AnalysisID: record.ID,
		Timestamp:  record.Timestamp,
		Saved:      saved,
	}, nil
}

// ChatInput is the transient request for a chat turn
type ChatInput struct {
	Category  model.Category
	Message   string
	History   []model.ChatMessage
	ImageData string // base64, empty when no image was uploaded
	IsAudio   bool   // true when the uploaded file is audio
	Language  string
}

// defaultChatMessages replace an empty user message per category
var defaultChatMessages = map[model.Category]string{
	model.CategoryPosture: "Please analyze the uploaded image for posture assessment.",
	model.CategorySkin:    "Please analyze the uploaded image for skin health assessment.",
	model.CategoryEye:     "Please analyze the uploaded image for eye health assessment.",
	model.CategoryMental:  "Please provide mental health guidance and support.",
}

// audioPlaceholderMessage stands in for untranscribed audio uploads in the
// mental chat flow; the audio bytes themselves are never sent to the AI service.
const audioPlaceholderMessage = "User provided an audio message for mental health assessment."

// Chat runs the chat flow: persona prompt with trailing history and optional
// image, AI call, sanitization. Audio uploads in the mental flow are
// short-circuited to a text-only request. The returned error signals the
// caller to respond with the localized supportive message for the category.
func (s *Service) Chat(ctx context.Context, in ChatInput) (*model.ChatResult, error) {
	message := in.Message
	imageData := in.ImageData

	if in.IsAudio && in.Category == model.CategoryMental {
		imageData = ""
		if message == "" {
			message = audioPlaceholderMessage
		}
	}
	if message == "" {
		message = defaultChatMessages[in.Category]
	}

	s.logger.Info("starting chat turn",
		zap.String("category", string(in.Category)),
		zap.String("language", in.Language),
		zap.Int("history_length", len(in.History)),
		zap.Bool("with_image", imageData != ""),
	)

	prompt := BuildChatPrompt(in.Category, message, in.History, in.Language)

	raw, err := s.ai.GenerateContent(ctx, prompt, imageData, gemini.ChatConfig)
	if err != nil {
		s.logger.Error("chat AI call failed",
			zap.String("category", string(in.Category)),
			zap.String("stage", "call_ai"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("chat request failed: %w", err)
	}

	resultType := model.ChatTypeText
	if imageData != "" {
		resultType = model.ChatTypeAnalysis
	}

	return &model.ChatResult{
		Response: Sanitize(raw),
		Type:     resultType,
	}, nil
}
