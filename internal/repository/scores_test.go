package repository

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/healthlens/backend/pkg/model"
)

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"85%", 85},
		{"85% - Based on comprehensive AI analysis", 85},
		{"100%", 100},
		{"0%", 0},
		{"72.5%", 72.5},
		{" 60 %", 60},
		{"60", 60},
		{"", 0},
		{"high", 0},
		{"%", 0},
		{"n/a%", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseConfidence(tt.input))
		})
	}
}

func record(category model.Category, confidence string) model.HealthRecord {
	return model.HealthRecord{
		Category: category,
		Analysis: model.AnalysisResult{Confidence: confidence},
	}
}

func TestComputeSummary_Empty(t *testing.T) {
	summary := ComputeSummary(nil, "2026-01-01T00:00:00Z")

	assert.Equal(t, 0.0, summary.OverallScore)
	assert.Empty(t, summary.CategoryScores)
	assert.Equal(t, "2026-01-01T00:00:00Z", summary.LastUpdated)
}

func TestComputeSummary_CategoryMeans(t *testing.T) {
	records := []model.HealthRecord{
		record(model.CategoryPosture, "80%"),
		record(model.CategoryPosture, "90%"),
		record(model.CategorySkin, "60%"),
	}

	summary := ComputeSummary(records, "2026-01-01T00:00:00Z")

	assert.Equal(t, 85.0, summary.CategoryScores["posture"])
	assert.Equal(t, 60.0, summary.CategoryScores["skin"])
	// mean across populated categories only
	assert.InDelta(t, 72.5, summary.OverallScore, 1e-9)
	assert.Len(t, summary.CategoryScores, 2)
}

func TestComputeSummary_MalformedConfidenceCountsAsZero(t *testing.T) {
	records := []model.HealthRecord{
		record(model.CategoryEye, "80%"),
		record(model.CategoryEye, "garbage"),
	}

	summary := ComputeSummary(records, "t")
	assert.Equal(t, 40.0, summary.CategoryScores["eye"])
}

// Category scores are means, so they stay within the range of their inputs,
// and the overall score stays within the range of the category scores.
func TestProperty_SummaryScoreBounds(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("scores are bounded by their inputs", prop.ForAll(
		func(confidences []int) bool {
			records := make([]model.HealthRecord, len(confidences))
			lo, hi := math.Inf(1), math.Inf(-1)
			for i, c := range confidences {
				category := model.Categories()[i%len(model.Categories())]
				records[i] = record(category, fmt.Sprintf("%d%%", c))
				lo = math.Min(lo, float64(c))
				hi = math.Max(hi, float64(c))
			}

			summary := ComputeSummary(records, "t")

			for _, score := range summary.CategoryScores {
				if score < lo-1e-9 || score > hi+1e-9 {
					return false
				}
			}
			if len(records) > 0 {
				return summary.OverallScore >= lo-1e-9 && summary.OverallScore <= hi+1e-9
			}
			return summary.OverallScore == 0
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.Property("records only influence their own category", prop.ForAll(
		func(postureConfidence, skinConfidence int) bool {
			records := []model.HealthRecord{
				record(model.CategoryPosture, fmt.Sprintf("%d%%", postureConfidence)),
				record(model.CategorySkin, fmt.Sprintf("%d%%", skinConfidence)),
			}

			summary := ComputeSummary(records, "t")
			return summary.CategoryScores["posture"] == float64(postureConfidence) &&
				summary.CategoryScores["skin"] == float64(skinConfidence)
		},
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
