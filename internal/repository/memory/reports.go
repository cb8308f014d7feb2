// Package memory keeps reports in process memory for runs without a
// database.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/RMahshie/roommodes/internal/repository"
	"github.com/RMahshie/roommodes/pkg/models"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]models.AnalysisReport
}

// NewReportRepository creates an empty in-memory report repository
func NewReportRepository() repository.ReportRepository {
	return &reportRepository{reports: make(map[uuid.UUID]models.AnalysisReport)}
}

func (r *reportRepository) Create(ctx context.Context, report *models.AnalysisReport) error {
	id, err := uuid.Parse(report.ID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[id] = *report
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, limit int) ([]*models.AnalysisReport, error) {
	r.mu.RLock()
	out := make([]*models.AnalysisReport, 0, len(r.reports))
	for _, report := range r.reports {
		out = append(out, &report)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.AnalysisReport) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reportRepository) SetArchiveKey(ctx context.Context, id uuid.UUID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	report, ok := r.reports[id]
	if !ok {
		return repository.ErrNotFound
	}
	report.ArchiveKey = &key
	r.reports[id] = report
	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reports[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.reports, id)
	return nil
}
