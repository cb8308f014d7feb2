package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/roommodes/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no report has the requested ID
var ErrNotFound = errors.New("report not found")

// ReportRepository defines the interface for analysis report storage
type ReportRepository interface {
	Create(ctx context.Context, report *models.AnalysisReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisReport, error)
	List(ctx context.Context, limit int) ([]*models.AnalysisReport, error)
	SetArchiveKey(ctx context.Context, id uuid.UUID, key string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
