package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthlens/backend/pkg/model"
)

func TestFailureMessage(t *testing.T) {
	t.Run("every category has all five translations", func(t *testing.T) {
		for _, category := range model.Categories() {
			seen := map[string]bool{}
			for _, lang := range []string{"en", "es", "fr", "de", "hi"} {
				msg := FailureMessage(category, lang)
				assert.NotEmpty(t, msg)
				assert.False(t, seen[msg], "translation for %s/%s duplicates another language", category, lang)
				seen[msg] = true
			}
		}
	})

	t.Run("untranslated languages fall back to English", func(t *testing.T) {
		assert.Equal(t, FailureMessage(model.CategorySkin, "en"), FailureMessage(model.CategorySkin, "ja"))
		assert.Equal(t, FailureMessage(model.CategorySkin, "en"), FailureMessage(model.CategorySkin, "zz"))
		assert.Equal(t, FailureMessage(model.CategorySkin, "en"), FailureMessage(model.CategorySkin, ""))
	})

	t.Run("unknown category gets the generic message", func(t *testing.T) {
		msg := FailureMessage(model.Category("dental"), "en")
		assert.Equal(t, genericFailureMessages["en"], msg)

		assert.Equal(t, genericFailureMessages["es"], FailureMessage(model.Category("dental"), "es"))
		assert.Equal(t, genericFailureMessages["en"], FailureMessage(model.Category("dental"), "ja"))
	})

	t.Run("mental failure message points at crisis support", func(t *testing.T) {
		msg := FailureMessage(model.CategoryMental, "en")
		assert.Contains(t, msg, "crisis hotline")
		assert.NotContains(t, msg, "error", "mental failures never read as errors")
	})
}
