package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/roommodes/internal/acoustics"
	"github.com/RMahshie/roommodes/internal/processing"
	"github.com/RMahshie/roommodes/internal/repository"
	"github.com/RMahshie/roommodes/pkg/models"
)

// AnalysisHandler handles analysis-related HTTP requests
type AnalysisHandler struct {
	processingSvc processing.ProcessingService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(processingSvc processing.ProcessingService) *AnalysisHandler {
	return &AnalysisHandler{
		processingSvc: processingSvc,
	}
}

// CreateAnalysis runs a new analysis and returns the report
func (h *AnalysisHandler) CreateAnalysis(ctx context.Context, req *models.CreateAnalysisRequest) (*models.CreateAnalysisResponse, error) {
	log.Info().
		Float64("length", req.Body.Room.Length).
		Float64("width", req.Body.Room.Width).
		Float64("height", req.Body.Room.Height).
		Int("harmonics", req.Body.Parameters.Harmonics).
		Msg("Creating new analysis")

	report, err := h.processingSvc.RunAnalysis(ctx, req.Body)
	if err != nil {
		var cfgErr *acoustics.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, huma.Error422UnprocessableEntity("Invalid analysis input", configErrors(cfgErr)...)
		}
		return nil, huma.Error500InternalServerError("Failed to run analysis", err)
	}

	log.Info().Str("reportID", report.ID).Bool("partial", report.Partial()).Msg("Analysis created successfully")
	return &models.CreateAnalysisResponse{Body: report}, nil
}

// GetAnalysis returns a stored report
func (h *AnalysisHandler) GetAnalysis(ctx context.Context, req *models.GetAnalysisRequest) (*models.GetAnalysisResponse, error) {
	reportID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid report ID", err)
	}

	report, err := h.processingSvc.GetReport(ctx, reportID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, huma.Error404NotFound("Report not found", err)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to get report", err)
	}

	return &models.GetAnalysisResponse{Body: report}, nil
}

// ListAnalyses returns the most recent reports
func (h *AnalysisHandler) ListAnalyses(ctx context.Context, req *models.ListAnalysesRequest) (*models.ListAnalysesResponse, error) {
	reports, err := h.processingSvc.ListReports(ctx, req.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list reports", err)
	}
	if reports == nil {
		reports = []*models.AnalysisReport{}
	}

	return &models.ListAnalysesResponse{
		Body: models.ListAnalysesResponseBody{Reports: reports},
	}, nil
}

// DeleteAnalysis removes a stored report and its archived copy
func (h *AnalysisHandler) DeleteAnalysis(ctx context.Context, req *models.DeleteAnalysisRequest) (*struct{}, error) {
	reportID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid report ID", err)
	}

	err = h.processingSvc.DeleteReport(ctx, reportID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, huma.Error404NotFound("Report not found", err)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete report", err)
	}

	log.Info().Str("reportID", req.ID).Msg("Analysis deleted")
	return nil, nil
}

// SpeedOfSound returns the speed of sound for the queried conditions
func (h *AnalysisHandler) SpeedOfSound(ctx context.Context, req *models.SpeedOfSoundRequest) (*models.SpeedOfSoundResponse, error) {
	ambient := models.AmbientConditions{
		TemperatureC:     req.TemperatureC,
		RelativeHumidity: req.RelativeHumidity,
	}
	if err := acoustics.ValidateAmbient(ambient); err != nil {
		var cfgErr *acoustics.ConfigurationError
		errors.As(err, &cfgErr)
		return nil, huma.Error422UnprocessableEntity("Invalid ambient conditions", configErrors(cfgErr)...)
	}

	return &models.SpeedOfSoundResponse{
		Body: models.SpeedOfSoundResponseBody{
			TemperatureC:     ambient.TemperatureC,
			RelativeHumidity: ambient.RelativeHumidity,
			SpeedOfSound:     acoustics.SpeedOfSound(ambient.TemperatureC, ambient.RelativeHumidity),
		},
	}, nil
}

// configErrors turns each violation into a huma error detail
func configErrors(err *acoustics.ConfigurationError) []error {
	if err == nil {
		return nil
	}
	details := make([]error, 0, len(err.Violations))
	for _, v := range err.Violations {
		details = append(details, &huma.ErrorDetail{
			Message:  v.Message,
			Location: "body." + v.Field,
			Value:    v.Value,
		})
	}
	return details
}
