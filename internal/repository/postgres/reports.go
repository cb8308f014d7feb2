package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/RMahshie/roommodes/internal/repository"
	"github.com/RMahshie/roommodes/pkg/models"
)

// PostgresReportRepository implements ReportRepository for PostgreSQL
type PostgresReportRepository struct {
	db *sql.DB
}

// NewPostgresReportRepository creates a new PostgreSQL report repository
func NewPostgresReportRepository(db *sql.DB) repository.ReportRepository {
	return &PostgresReportRepository{db: db}
}

// Create inserts a new report
func (r *PostgresReportRepository) Create(ctx context.Context, report *models.AnalysisReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO analysis_reports (id, room_length, room_width, room_height, speed_of_sound, partial, report, archive_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		report.ID,
		report.Room.Length,
		report.Room.Width,
		report.Room.Height,
		report.SpeedOfSound,
		report.Partial(),
		string(body),
		report.ArchiveKey,
		report.CreatedAt)

	return err
}

// GetByID retrieves a report by ID
func (r *PostgresReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisReport, error) {
	query := `
		SELECT report, archive_key
		FROM analysis_reports
		WHERE id = $1`

	var body string
	var archiveKey sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(&body, &archiveKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodeReport(body, archiveKey)
}

// List returns the most recent reports, newest first
func (r *PostgresReportRepository) List(ctx context.Context, limit int) ([]*models.AnalysisReport, error) {
	query := `
		SELECT report, archive_key
		FROM analysis_reports
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.AnalysisReport
	for rows.Next() {
		var body string
		var archiveKey sql.NullString
		if err := rows.Scan(&body, &archiveKey); err != nil {
			return nil, err
		}

		report, err := decodeReport(body, archiveKey)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// SetArchiveKey records where the report was archived
func (r *PostgresReportRepository) SetArchiveKey(ctx context.Context, id uuid.UUID, key string) error {
	query := `
		UPDATE analysis_reports
		SET archive_key = $1
		WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a report
func (r *PostgresReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analysis_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func decodeReport(body string, archiveKey sql.NullString) (*models.AnalysisReport, error) {
	var report models.AnalysisReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	if archiveKey.Valid {
		report.ArchiveKey = &archiveKey.String
	}
	return &report, nil
}
