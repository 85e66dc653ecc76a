package analysis

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthlens/backend/pkg/model"
)

func TestNormalize_ValidJSONPassesThrough(t *testing.T) {
	raw := `{
		"condition": "Mild forward head posture",
		"confidence": "82%",
		"severity": "low",
		"detailedDescription": "Slight anterior head carriage observed.",
		"specificRemedies": [
			{"remedy": "Chin tucks", "instructions": "Tuck chin gently", "frequency": "Daily", "duration": "2 weeks"}
		],
		"recommendations": [
			{"action": "Adjust monitor height", "priority": "medium", "timeframe": "This week"}
		],
		"warningSignsToWatch": ["Persistent neck pain"]
	}`

	normalized := Normalize(raw, model.CategoryPosture)

	require.True(t, normalized.Parsed)
	assert.Equal(t, "Mild forward head posture", normalized.Result.Condition)
	assert.Equal(t, "82%", normalized.Result.Confidence)
	assert.Equal(t, model.SeverityLow, normalized.Result.Severity)
	require.Len(t, normalized.Result.SpecificRemedies, 1)
	assert.Equal(t, "Chin tucks", normalized.Result.SpecificRemedies[0].Remedy)
	require.Len(t, normalized.Result.Recommendations, 1)
	assert.Equal(t, []string{"Persistent neck pain"}, normalized.Result.WarningSignsToWatch)
}

func TestNormalize_MalformedOutputSynthesizesFallback(t *testing.T) {
	normalized := Normalize("The model rambled instead of emitting JSON.", model.CategorySkin)

	require.False(t, normalized.Parsed)
	result := normalized.Result

	assert.Equal(t, "Skin Analysis Complete", result.Condition)
	assert.Equal(t, "85% - Based on comprehensive AI analysis", result.Confidence)
	assert.Equal(t, model.SeverityMedium, result.Severity)
	assert.Contains(t, result.DetailedDescription, "The model rambled instead of emitting JSON.")
	assert.Len(t, result.SpecificRemedies, 2)
	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, "Consult with qualified healthcare professional", result.Recommendations[0].Action)
	assert.Equal(t, "high", result.Recommendations[0].Priority)
	assert.Len(t, result.WarningSignsToWatch, 4)
}

func TestNormalize_SanitizesBeforeParsing(t *testing.T) {
	t.Run("fenced JSON survives the code block strip as a fallback", func(t *testing.T) {
		// Models wrapping JSON in markdown fences lose the whole block to
		// sanitization, so the result is synthesized.
		raw := "```json\n{\"condition\": \"ok\"}\n```"
		normalized := Normalize(raw, model.CategoryEye)

		require.False(t, normalized.Parsed)
		assert.NotContains(t, normalized.Result.DetailedDescription, "condition")
	})

	t.Run("leading script tag is stripped before decoding", func(t *testing.T) {
		raw := "<script>x</script>{\"condition\": \"ok\", \"confidence\": \"90%\"}"
		normalized := Normalize(raw, model.CategoryEye)

		require.True(t, normalized.Parsed)
		assert.Equal(t, "ok", normalized.Result.Condition)
	})
}

func TestNormalize_TruncatedJSONFallsBack(t *testing.T) {
	// Output cut off mid-document by the token limit
	raw := `{"condition": "Dry eye syndrome", "confidence": "78%", "severity":`
	normalized := Normalize(raw, model.CategoryEye)

	require.False(t, normalized.Parsed)
	assert.Equal(t, "Eye Analysis Complete", normalized.Result.Condition)
}

func TestNormalize_FallbackDescriptionIsCapped(t *testing.T) {
	raw := strings.Repeat("x", 400)
	normalized := Normalize(raw, model.CategoryMental)

	require.False(t, normalized.Parsed)
	assert.Contains(t, normalized.Result.DetailedDescription, strings.Repeat("x", 300)+"...")
	assert.NotContains(t, normalized.Result.DetailedDescription, strings.Repeat("x", 301))
}

// Normalization is total: every input yields a fully-populated result, parsed
// or synthesized.
func TestProperty_NormalizeTotal(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("unparseable output always yields a populated fallback", prop.ForAll(
		func(raw string, categoryIdx int) bool {
			category := model.Categories()[categoryIdx]
			normalized := Normalize(raw, category)

			if normalized.Parsed {
				// Rare but legal: the sanitized text decoded as JSON
				return json.Valid([]byte(Sanitize(raw)))
			}

			result := normalized.Result
			return result.Condition != "" &&
				result.Confidence != "" &&
				result.Severity == model.SeverityMedium &&
				len(result.SpecificRemedies) == 2 &&
				len(result.Recommendations) == 3 &&
				len(result.WarningSignsToWatch) == 4
		},
		gen.AnyString(),
		gen.IntRange(0, len(model.Categories())-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
