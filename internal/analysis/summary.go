package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/healthlens/backend/internal/repository"
	"github.com/healthlens/backend/pkg/model"
	"go.uber.org/zap"
)

// Category status values in the health summary
const (
	StatusGood           = "good"
	StatusModerate       = "moderate"
	StatusNeedsAttention = "needs_attention"
	StatusNoData         = "no_data"
)

// CategoryOverview is the per-category slice of the health summary, derived
// from that category's most recent record.
type CategoryOverview struct {
	Score     float64 `json:"score"`
	Status    string  `json:"status"`
	LastScan  *string `json:"lastScan"` // YYYY-MM-DD, nil without records
	Trend     string  `json:"trend"`
	Condition string  `json:"condition"`
}

// HealthSummary aggregates a user's records across all categories
type HealthSummary struct {
	OverallScore    int                         `json:"overallScore"`
	LastUpdated     string                      `json:"lastUpdated"`
	TotalScans      int                         `json:"totalScans"`
	Categories      map[string]CategoryOverview `json:"categories"`
	Recommendations []string                    `json:"recommendations"`
	NextActions     []string                    `json:"nextActions"`
}

var summaryRecommendations = []string{
	"Continue regular health monitoring",
	"Follow personalized recommendations from recent scans",
	"Maintain healthy lifestyle habits",
	"Schedule follow-up assessments as needed",
}

var summaryNextActions = []string{
	"Review latest scan results",
	"Implement recommended health practices",
	"Track progress over time",
	"Consider professional consultation if needed",
}

// SummaryService builds aggregated health summaries from the record store
type SummaryService struct {
	store  repository.RecordStore
	logger *zap.Logger
}

// NewSummaryService creates a SummaryService
func NewSummaryService(store repository.RecordStore, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		store:  store,
		logger: logger,
	}
}

// Summarize scans all of userID's records and derives, per category, the most
// recent record's confidence and condition plus a status band; the overall
// score is the rounded mean across categories that have data.
func (s *SummaryService) Summarize(ctx context.Context, userID string) (*HealthSummary, error) {
	data, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load health data: %w", err)
	}

	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user records: %w", err)
	}

	categories := make(map[string]CategoryOverview, len(model.Categories()))
	var scores []float64

	for _, category := range model.Categories() {
		latest := latestRecord(records, category)
		if latest == nil {
			categories[string(category)] = CategoryOverview{
				Score:     0,
				Status:    StatusNoData,
				LastScan:  nil,
				Trend:     StatusNoData,
				Condition: "No assessment available",
			}
			continue
		}

		score := repository.ParseConfidence(latest.Analysis.Confidence)
		lastScan := scanDate(latest.Timestamp)
		categories[string(category)] = CategoryOverview{
			Score:     score,
			Status:    scoreStatus(score),
			LastScan:  &lastScan,
			Trend:     "stable",
			Condition: latest.Analysis.Condition,
		}
		if score > 0 {
			scores = append(scores, score)
		}
	}

	overall := 0
	if len(scores) > 0 {
		var sum float64
		for _, score := range scores {
			sum += score
		}
		overall = int(math.Round(sum / float64(len(scores))))
	}

	s.logger.Info("health summary generated",
		zap.String("user_id", userID),
		zap.Int("total_scans", len(records)),
		zap.Int("overall_score", overall),
	)

	return &HealthSummary{
		OverallScore:    overall,
		LastUpdated:     data.Summary.LastUpdated,
		TotalScans:      len(records),
		Categories:      categories,
		Recommendations: summaryRecommendations,
		NextActions:     summaryNextActions,
	}, nil
}

// latestRecord returns the most recent record of category, or nil
func latestRecord(records []model.HealthRecord, category model.Category) *model.HealthRecord {
	filtered := make([]model.HealthRecord, 0, len(records))
	for _, record := range records {
		if record.Category == category {
			filtered = append(filtered, record)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp > filtered[j].Timestamp
	})
	return &filtered[0]
}

func scoreStatus(score float64) string {
	switch {
	case score >= 80:
		return StatusGood
	case score >= 60:
		return StatusModerate
	default:
		return StatusNeedsAttention
	}
}

// scanDate reduces an RFC 3339 timestamp to its date part
func scanDate(timestamp string) string {
	if i := strings.Index(timestamp, "T"); i >= 0 {
		return timestamp[:i]
	}
	return timestamp
}
