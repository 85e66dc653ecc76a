package repository

import (
	"strconv"
	"strings"

	"github.com/healthlens/backend/pkg/model"
)

// ParseConfidence converts a confidence string like "85%" (or
// "85% - Based on comprehensive AI analysis") to its numeric value.
// A missing or malformed value degrades to zero rather than failing.
func ParseConfidence(confidence string) float64 {
	s := confidence
	if i := strings.Index(s, "%"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}

// ComputeSummary derives the rolling summary from the full record sequence:
// each category score is the arithmetic mean of that category's confidences,
// and the overall score is the mean across categories with at least one record.
func ComputeSummary(records []model.HealthRecord, lastUpdated string) model.Summary {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, record := range records {
		key := string(record.Category)
		sums[key] += ParseConfidence(record.Analysis.Confidence)
		counts[key]++
	}

	categoryScores := make(map[string]float64, len(sums))
	var total float64
	for key, sum := range sums {
		score := sum / float64(counts[key])
		categoryScores[key] = score
		total += score
	}

	overall := 0.0
	if len(categoryScores) > 0 {
		overall = total / float64(len(categoryScores))
	}

	return model.Summary{
		LastUpdated:    lastUpdated,
		OverallScore:   overall,
		CategoryScores: categoryScores,
	}
}
