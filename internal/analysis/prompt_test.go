package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/healthlens/backend/pkg/model"
)

func TestLanguageInstruction(t *testing.T) {
	assert.Empty(t, LanguageInstruction("en"), "English needs no instruction")
	assert.Empty(t, LanguageInstruction("xx"), "unknown codes behave like English")
	assert.NotEmpty(t, LanguageInstruction("es"))
	assert.NotEmpty(t, LanguageInstruction("ja"))
}

func TestCategoryGuidelines_FallsBackForUnknownCategory(t *testing.T) {
	for _, category := range model.Categories() {
		assert.NotEmpty(t, CategoryGuidelines(category))
	}
	assert.Equal(t, genericGuidelines, CategoryGuidelines(model.Category("dental")))
}

func TestChatContext_FallsBackForUnknownCategory(t *testing.T) {
	for _, category := range model.Categories() {
		assert.NotEqual(t, genericChatContext, ChatContext(category))
	}
	assert.Equal(t, genericChatContext, ChatContext(model.Category("dental")))
}

func TestAnalysisInput(t *testing.T) {
	t.Run("without additional context", func(t *testing.T) {
		input := AnalysisInput(model.CategoryPosture, "")
		assert.Contains(t, input, "posture")
		assert.NotContains(t, input, "Additional context:")
	})

	t.Run("with additional context", func(t *testing.T) {
		input := AnalysisInput(model.CategorySkin, `{"age":30}`)
		assert.Contains(t, input, `Additional context: {"age":30}`)
	})

	t.Run("unknown category gets generic input", func(t *testing.T) {
		input := AnalysisInput(model.Category("dental"), "")
		assert.Contains(t, input, "Analyze dental data")
	})
}

func TestBuildAnalysisPrompt(t *testing.T) {
	prompt := BuildAnalysisPrompt(model.CategoryEye, AnalysisInput(model.CategoryEye, ""), "es")

	assert.True(t, strings.HasPrefix(prompt, LanguageInstruction("es")),
		"language instruction leads the prompt")
	assert.Contains(t, prompt, "eye health")
	assert.Contains(t, prompt, `"warningSignsToWatch"`)
	assert.Contains(t, prompt, CategoryGuidelines(model.CategoryEye))
	assert.Contains(t, prompt, "Respond with valid JSON only.")
}

func TestBuildAnalysisPrompt_EnglishHasNoInstruction(t *testing.T) {
	prompt := BuildAnalysisPrompt(model.CategoryPosture, "input", "en")
	assert.True(t, strings.HasPrefix(prompt, "You are a medical AI assistant"))
}

func TestBuildChatPrompt_HistoryWindow(t *testing.T) {
	history := []model.ChatMessage{
		{Sender: "user", Content: "first"},
		{Sender: "assistant", Content: "second"},
		{Sender: "user", Content: "third"},
		{Sender: "assistant", Content: "fourth"},
		{Sender: "user", Content: "fifth"},
	}

	prompt := BuildChatPrompt(model.CategoryMental, "how do I relax?", history, "en")

	assert.NotContains(t, prompt, "first")
	assert.NotContains(t, prompt, "second")
	assert.Contains(t, prompt, "user: third")
	assert.Contains(t, prompt, "assistant: fourth")
	assert.Contains(t, prompt, "user: fifth")
	assert.Contains(t, prompt, "User: how do I relax?")
	assert.Contains(t, prompt, ChatContext(model.CategoryMental))
}

func TestBuildChatPrompt_EmptyHistory(t *testing.T) {
	prompt := BuildChatPrompt(model.CategorySkin, "hello", nil, "de")

	assert.Contains(t, prompt, LanguageInstruction("de"))
	assert.Contains(t, prompt, "User: hello")
}

// Prompt building is total: any category, language, and history length
// produces a prompt containing the persona and the current message.
func TestProperty_BuildChatPromptTotal(t *testing.T) {
	properties := gopter.NewProperties(nil)

	languages := []string{"en", "es", "fr", "de", "it", "pt", "hi", "zh", "ja", "ar", "xx", ""}

	properties.Property("chat prompts always carry persona and message", prop.ForAll(
		func(categoryIdx, languageIdx, historyLen int, message string) bool {
			category := model.Categories()[categoryIdx]
			language := languages[languageIdx]

			history := make([]model.ChatMessage, historyLen)
			for i := range history {
				history[i] = model.ChatMessage{Sender: "user", Content: fmt.Sprintf("turn %d", i)}
			}

			prompt := BuildChatPrompt(category, message, history, language)
			if !strings.Contains(prompt, ChatContext(category)) {
				return false
			}
			if !strings.Contains(prompt, "User: "+message) {
				return false
			}

			// Only the trailing window of history survives
			if historyLen > historyWindow {
				dropped := fmt.Sprintf("turn %d", historyLen-historyWindow-1)
				if strings.Contains(prompt, dropped+"\n") {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(model.Categories())-1),
		gen.IntRange(0, len(languages)-1),
		gen.IntRange(0, 10),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
