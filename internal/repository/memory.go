package repository

import (
	"context"
	"sync"
	"time"

	"github.com/healthlens/backend/pkg/model"
)

// MemoryStore is an in-memory RecordStore for testing. AppendErr, when set,
// forces Append to fail so persistence-degradation paths can be exercised.
type MemoryStore struct {
	mu        sync.RWMutex
	records   []model.HealthRecord
	AppendErr error
}

// NewMemoryStore creates an empty in-memory record store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: []model.HealthRecord{}}
}

// Append adds a record to memory
func (s *MemoryStore) Append(ctx context.Context, record *model.HealthRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AppendErr != nil {
		return s.AppendErr
	}
	s.records = append(s.records, *record)
	return nil
}

// ListByUser returns a user's records in insertion order
func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]model.HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := []model.HealthRecord{}
	for _, record := range s.records {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

// LoadAll returns all records plus the derived summary
func (s *MemoryStore) LoadAll(ctx context.Context) (*model.UserData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now().UTC().Format(time.RFC3339)
	data := model.NewUserData(now)
	data.HealthRecords = append(data.HealthRecords, s.records...)
	data.Summary = ComputeSummary(data.HealthRecords, now)
	return data, nil
}
