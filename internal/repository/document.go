package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/healthlens/backend/pkg/model"
	"go.uber.org/zap"
)

// DocumentAPI reads and replaces the whole persisted document. The protocol
// offers no partial or append-only write path, so every save is a wholesale
// read-modify-write round trip.
type DocumentAPI interface {
	Load(ctx context.Context) ([]byte, error)
	Store(ctx context.Context, data []byte) error
}

// DocumentStore implements RecordStore over a whole-document backend. A
// mutex serializes the read-modify-write sequence so concurrent appends
// within this process never lose updates; concurrent writers in other
// processes remain unprotected by the document protocol itself.
type DocumentStore struct {
	api    DocumentAPI
	mu     sync.Mutex
	logger *zap.Logger
	now    func() time.Time
}

// NewDocumentStore creates a RecordStore over api
func NewDocumentStore(api DocumentAPI, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{
		api:    api,
		logger: logger,
		now:    time.Now,
	}
}

// Append loads the document, appends record, recomputes the summary, and
// writes the document back.
func (s *DocumentStore) Append(ctx context.Context, record *model.HealthRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.loadDocument(ctx)
	data.HealthRecords = append(data.HealthRecords, *record)
	data.Summary = ComputeSummary(data.HealthRecords, s.now().UTC().Format(time.RFC3339))

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal health document: %w", err)
	}

	if err := s.api.Store(ctx, payload); err != nil {
		s.logger.Error("failed to write health document",
			zap.String("record_id", record.ID),
			zap.Error(err),
		)
		return fmt.Errorf("write health document: %w", err)
	}

	s.logger.Info("health record appended",
		zap.String("record_id", record.ID),
		zap.Int("total_records", len(data.HealthRecords)),
	)

	return nil
}

// ListByUser returns records for userID in insertion order
func (s *DocumentStore) ListByUser(ctx context.Context, userID string) ([]model.HealthRecord, error) {
	data, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]model.HealthRecord, 0, len(data.HealthRecords))
	for _, record := range data.HealthRecords {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

// LoadAll returns the whole document, or an empty-initialized one when the
// backend is unreachable or the document does not exist yet.
func (s *DocumentStore) LoadAll(ctx context.Context) (*model.UserData, error) {
	return s.loadDocument(ctx), nil
}

func (s *DocumentStore) loadDocument(ctx context.Context) *model.UserData {
	empty := model.NewUserData(s.now().UTC().Format(time.RFC3339))

	raw, err := s.api.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load health document, starting empty", zap.Error(err))
		return empty
	}

	var data model.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn("health document is not valid JSON, starting empty", zap.Error(err))
		return empty
	}

	if data.Users == nil {
		data.Users = make(map[string]model.UserProfile)
	}
	if data.HealthRecords == nil {
		data.HealthRecords = []model.HealthRecord{}
	}
	if data.Summary.CategoryScores == nil {
		data.Summary.CategoryScores = make(map[string]float64)
	}

	return &data
}
