package processing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/roommodes/internal/acoustics"
	"github.com/RMahshie/roommodes/internal/repository"
	"github.com/RMahshie/roommodes/internal/storage"
	"github.com/RMahshie/roommodes/pkg/models"
)

type ProcessingService interface {
	RunAnalysis(ctx context.Context, in models.AnalysisInput) (*models.AnalysisReport, error)
	GetReport(ctx context.Context, id uuid.UUID) (*models.AnalysisReport, error)
	ListReports(ctx context.Context, limit int) ([]*models.AnalysisReport, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error
}

type processingService struct {
	repository repository.ReportRepository
	archive    storage.S3Service // nil disables archiving
	now        func() time.Time
}

// NewProcessingService wires the analysis pipeline. archive may be nil.
func NewProcessingService(repo repository.ReportRepository, archive storage.S3Service) ProcessingService {
	return &processingService{
		repository: repo,
		archive:    archive,
		now:        time.Now,
	}
}

// ArchiveKey is the object key a report is archived under
func ArchiveKey(id string) string {
	return fmt.Sprintf("reports/%s.json", id)
}

func (s *processingService) RunAnalysis(ctx context.Context, in models.AnalysisInput) (*models.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 1: Validate and compute
	report, err := acoustics.Run(in)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected analysis input")
		return nil, err
	}

	report.ID = uuid.New().String()
	report.CreatedAt = s.now().UTC()

	log.Info().
		Str("reportID", report.ID).
		Float64("speedOfSound", report.SpeedOfSound).
		Msg("Speed of sound computed")

	for _, axis := range models.Axes {
		a := report.Axes[axis]
		if a.Failed() {
			log.Warn().
				Str("reportID", report.ID).
				Str("axis", string(axis)).
				Strs("errors", a.Errors).
				Msg("Some modes have no distance")
		}
	}

	// Step 2: Store report
	if err := s.repository.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	// Step 3: Archive, best effort
	if s.archive != nil {
		if err := s.archiveReport(ctx, report); err != nil {
			log.Error().Err(err).Str("reportID", report.ID).Msg("Failed to archive report")
		} else {
			s.attachDownloadURL(ctx, report)
		}
	}

	log.Info().
		Str("reportID", report.ID).
		Bool("partial", report.Partial()).
		Msg("Analysis complete")

	return report, nil
}

func (s *processingService) archiveReport(ctx context.Context, report *models.AnalysisReport) error {
	key := ArchiveKey(report.ID)

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := s.archive.UploadFile(ctx, key, "application/json", body); err != nil {
		return err
	}

	id, err := uuid.Parse(report.ID)
	if err != nil {
		return err
	}
	if err := s.repository.SetArchiveKey(ctx, id, key); err != nil {
		return fmt.Errorf("failed to record archive key: %w", err)
	}

	report.ArchiveKey = &key
	return nil
}

// attachDownloadURL sets a presigned URL for an archived report. Failures
// only cost the caller the link.
func (s *processingService) attachDownloadURL(ctx context.Context, report *models.AnalysisReport) {
	if s.archive == nil || report.ArchiveKey == nil {
		return
	}
	url, err := s.archive.GenerateDownloadURL(ctx, *report.ArchiveKey)
	if err != nil {
		log.Warn().Err(err).Str("reportID", report.ID).Msg("Failed to presign archive URL")
		return
	}
	report.ArchiveURL = &url
}

func (s *processingService) GetReport(ctx context.Context, id uuid.UUID) (*models.AnalysisReport, error) {
	report, err := s.repository.GetByID(ctx, id)
	if err == nil {
		s.attachDownloadURL(ctx, report)
		return report, nil
	}
	if !errors.Is(err, repository.ErrNotFound) || s.archive == nil {
		return nil, err
	}

	// Fall back to the archive for reports the database no longer holds
	body, aerr := s.archive.DownloadFile(ctx, ArchiveKey(id.String()))
	if aerr != nil {
		log.Debug().Err(aerr).Str("reportID", id.String()).Msg("Report not in archive either")
		return nil, err
	}

	var archived models.AnalysisReport
	if err := json.Unmarshal(body, &archived); err != nil {
		return nil, fmt.Errorf("failed to decode archived report: %w", err)
	}
	key := ArchiveKey(id.String())
	archived.ArchiveKey = &key
	s.attachDownloadURL(ctx, &archived)
	return &archived, nil
}

// ListReports returns up to limit stored reports, newest first
func (s *processingService) ListReports(ctx context.Context, limit int) ([]*models.AnalysisReport, error) {
	reports, err := s.repository.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// DeleteReport removes a stored report together with its archived copy.
// The archive object goes first so a failure there leaves the report
// intact rather than orphaning the object.
func (s *processingService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	report, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.archive != nil && report.ArchiveKey != nil {
		if err := s.archive.DeleteFile(ctx, *report.ArchiveKey); err != nil {
			return fmt.Errorf("failed to delete archived report: %w", err)
		}
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("reportID", id.String()).Msg("Report deleted")
	return nil
}
