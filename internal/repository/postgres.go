package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/healthlens/backend/pkg/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore implements RecordStore over a relational table. Appends are
// plain transactional inserts and the summary is derived at read time, so
// concurrent writers cannot lose each other's records.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore creates a RecordStore backed by PostgreSQL
func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the health_records table if it does not exist
func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS health_records (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			category VARCHAR(50) NOT NULL,
			analysis JSONB NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			file_name VARCHAR(500),
			file_size BIGINT,
			file_type VARCHAR(100)
		)
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create health_records table: %w", err)
	}
	return nil
}

// Append inserts a health record inside a transaction
func (r *PostgresStore) Append(ctx context.Context, record *model.HealthRecord) error {
	analysisJSON, err := json.Marshal(record.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	recordedAt, err := time.Parse(time.RFC3339, record.Timestamp)
	if err != nil {
		recordedAt = time.Now().UTC()
	}

	var fileName, fileType *string
	var fileSize *int64
	if record.FileInfo != nil {
		fileName = &record.FileInfo.FileName
		fileSize = &record.FileInfo.FileSize
		fileType = &record.FileInfo.FileType
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO health_records (
			id, user_id, category, analysis, recorded_at,
			file_name, file_size, file_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, query,
		record.ID,
		record.UserID,
		string(record.Category),
		analysisJSON,
		recordedAt,
		fileName,
		fileSize,
		fileType,
	)
	if err != nil {
		r.logger.Error("failed to insert health record",
			zap.Error(err),
			zap.String("record_id", record.ID),
		)
		return fmt.Errorf("failed to insert health record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.Info("health record appended",
		zap.String("record_id", record.ID),
		zap.String("user_id", record.UserID),
	)

	return nil
}

// ListByUser retrieves a user's records in insertion order
func (r *PostgresStore) ListByUser(ctx context.Context, userID string) ([]model.HealthRecord, error) {
	query := `
		SELECT id, user_id, category, analysis, recorded_at,
			file_name, file_size, file_type
		FROM health_records
		WHERE user_id = $1
		ORDER BY recorded_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list health records", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// LoadAll returns all records plus the derived summary. Query failures
// degrade to an empty-initialized document.
func (r *PostgresStore) LoadAll(ctx context.Context) (*model.UserData, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		SELECT id, user_id, category, analysis, recorded_at,
			file_name, file_size, file_type
		FROM health_records
		ORDER BY recorded_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Warn("failed to load health records, starting empty", zap.Error(err))
		return model.NewUserData(now), nil
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		r.logger.Warn("failed to scan health records, starting empty", zap.Error(err))
		return model.NewUserData(now), nil
	}

	lastUpdated := now
	if len(records) > 0 {
		lastUpdated = records[len(records)-1].Timestamp
	}

	data := model.NewUserData(now)
	data.HealthRecords = records
	data.Summary = ComputeSummary(records, lastUpdated)
	return data, nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows pgxRows) ([]model.HealthRecord, error) {
	records := []model.HealthRecord{}
	for rows.Next() {
		var (
			record       model.HealthRecord
			category     string
			analysisJSON []byte
			recordedAt   time.Time
			fileName     *string
			fileSize     *int64
			fileType     *string
		)

		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&category,
			&analysisJSON,
			&recordedAt,
			&fileName,
			&fileSize,
			&fileType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health record: %w", err)
		}

		record.Category = model.Category(category)
		record.Timestamp = recordedAt.UTC().Format(time.RFC3339)
		if err := json.Unmarshal(analysisJSON, &record.Analysis); err != nil {
			return nil, fmt.Errorf("failed to decode analysis payload: %w", err)
		}
		if fileName != nil {
			record.FileInfo = &model.FileInfo{FileName: *fileName, FileType: derefString(fileType)}
			if fileSize != nil {
				record.FileInfo.FileSize = *fileSize
			}
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating health records: %w", err)
	}

	return records, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
