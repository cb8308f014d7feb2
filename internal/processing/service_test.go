package processing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/roommodes/internal/acoustics"
	"github.com/RMahshie/roommodes/internal/repository"
	"github.com/RMahshie/roommodes/pkg/models"
)

// MockReportRepository implements repository.ReportRepository for testing
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *models.AnalysisReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisReport, error) {
	args := m.Called(ctx, id)
	report, _ := args.Get(0).(*models.AnalysisReport)
	return report, args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, limit int) ([]*models.AnalysisReport, error) {
	args := m.Called(ctx, limit)
	reports, _ := args.Get(0).([]*models.AnalysisReport)
	return reports, args.Error(1)
}

func (m *MockReportRepository) SetArchiveKey(ctx context.Context, id uuid.UUID, key string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

func (m *MockReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockS3Service implements storage.S3Service for testing
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) UploadFile(ctx context.Context, key string, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}

func (m *MockS3Service) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func studioInput() models.AnalysisInput {
	return models.AnalysisInput{
		Room:       models.RoomGeometry{Length: 8.4, Width: 6.1, Height: 2.5},
		Speaker:    models.SpeakerPosition{X: 1.2, Y: 1.5, Z: 1.1},
		Ambient:    models.AmbientConditions{TemperatureC: 23, RelativeHumidity: 0.6},
		Parameters: models.AnalysisParameters{Harmonics: 4, CutoffHz: 250},
	}
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
}

func TestRunAnalysis(t *testing.T) {
	tests := []struct {
		name        string
		input       func() models.AnalysisInput
		withArchive bool
		mockSetup   func(*MockReportRepository, *MockS3Service)
		wantErr     error
		wantArchive bool
	}{
		{
			name:  "stored without archive",
			input: studioInput,
			mockSetup: func(repo *MockReportRepository, _ *MockS3Service) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.AnalysisReport")).Return(nil)
			},
		},
		{
			name:        "stored and archived",
			input:       studioInput,
			withArchive: true,
			mockSetup: func(repo *MockReportRepository, s3 *MockS3Service) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.AnalysisReport")).Return(nil)
				s3.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), "application/json", mock.Anything).Return(nil)
				repo.On("SetArchiveKey", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).Return(nil)
				s3.On("GenerateDownloadURL", mock.Anything, mock.AnythingOfType("string")).Return("https://s3.example/reports/x.json?sig=1", nil)
			},
			wantArchive: true,
		},
		{
			name:        "archive failure keeps the report",
			input:       studioInput,
			withArchive: true,
			mockSetup: func(repo *MockReportRepository, s3 *MockS3Service) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.AnalysisReport")).Return(nil)
				s3.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket unavailable"))
			},
		},
		{
			name: "invalid humidity",
			input: func() models.AnalysisInput {
				in := studioInput()
				in.Ambient.RelativeHumidity = 1.2
				return in
			},
			mockSetup: func(*MockReportRepository, *MockS3Service) {},
			wantErr:   acoustics.ErrInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReportRepository)
			s3 := new(MockS3Service)
			tt.mockSetup(repo, s3)

			svc := &processingService{repository: repo, now: fixedClock}
			if tt.withArchive {
				svc.archive = s3
			}

			report, err := svc.RunAnalysis(context.Background(), tt.input())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, report)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, report)
			_, err = uuid.Parse(report.ID)
			assert.NoError(t, err)
			assert.Equal(t, fixedClock(), report.CreatedAt)
			assert.Len(t, report.Axes, 3)

			if tt.wantArchive {
				require.NotNil(t, report.ArchiveKey)
				assert.Equal(t, ArchiveKey(report.ID), *report.ArchiveKey)
				require.NotNil(t, report.ArchiveURL)
				assert.Equal(t, "https://s3.example/reports/x.json?sig=1", *report.ArchiveURL)
			} else {
				assert.Nil(t, report.ArchiveKey)
				assert.Nil(t, report.ArchiveURL)
			}

			repo.AssertExpectations(t)
			s3.AssertExpectations(t)
		})
	}
}

func TestRunAnalysis_StoreFailure(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	svc := NewProcessingService(repo, nil)
	report, err := svc.RunAnalysis(context.Background(), studioInput())
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestRunAnalysis_CancelledContext(t *testing.T) {
	repo := new(MockReportRepository)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewProcessingService(repo, nil)
	_, err := svc.RunAnalysis(ctx, studioInput())
	assert.ErrorIs(t, err, context.Canceled)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetReport(t *testing.T) {
	id := uuid.New()
	stored := &models.AnalysisReport{ID: id.String(), SpeedOfSound: 343}

	t.Run("from repository", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(stored, nil)

		got, err := NewProcessingService(repo, nil).GetReport(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("not found without archive", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

		_, err := NewProcessingService(repo, nil).GetReport(context.Background(), id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("falls back to archive", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)
		body, err := json.Marshal(stored)
		require.NoError(t, err)
		s3 := new(MockS3Service)
		s3.On("DownloadFile", mock.Anything, ArchiveKey(id.String())).Return(body, nil)
		s3.On("GenerateDownloadURL", mock.Anything, ArchiveKey(id.String())).Return("https://s3.example/signed", nil)

		got, err := NewProcessingService(repo, s3).GetReport(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
		require.NotNil(t, got.ArchiveKey)
		assert.Equal(t, ArchiveKey(id.String()), *got.ArchiveKey)
		require.NotNil(t, got.ArchiveURL)
		assert.Equal(t, "https://s3.example/signed", *got.ArchiveURL)
	})

	t.Run("archived report gets a download URL", func(t *testing.T) {
		key := ArchiveKey(id.String())
		archived := &models.AnalysisReport{ID: id.String(), ArchiveKey: &key}
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(archived, nil)
		s3 := new(MockS3Service)
		s3.On("GenerateDownloadURL", mock.Anything, key).Return("https://s3.example/signed", nil)

		got, err := NewProcessingService(repo, s3).GetReport(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, got.ArchiveURL)
		assert.Equal(t, "https://s3.example/signed", *got.ArchiveURL)
		s3.AssertExpectations(t)
	})

	t.Run("presign failure still returns the report", func(t *testing.T) {
		key := ArchiveKey(id.String())
		archived := &models.AnalysisReport{ID: id.String(), ArchiveKey: &key}
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(archived, nil)
		s3 := new(MockS3Service)
		s3.On("GenerateDownloadURL", mock.Anything, key).Return("", errors.New("no credentials"))

		got, err := NewProcessingService(repo, s3).GetReport(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, got.ArchiveURL)
	})

	t.Run("report without archive key is not presigned", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(&models.AnalysisReport{ID: id.String()}, nil)
		s3 := new(MockS3Service)

		got, err := NewProcessingService(repo, s3).GetReport(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, got.ArchiveURL)
		s3.AssertNotCalled(t, "GenerateDownloadURL", mock.Anything, mock.Anything)
	})

	t.Run("missing everywhere", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)
		s3 := new(MockS3Service)
		s3.On("DownloadFile", mock.Anything, ArchiveKey(id.String())).Return(nil, errors.New("NoSuchKey"))

		_, err := NewProcessingService(repo, s3).GetReport(context.Background(), id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestListReports(t *testing.T) {
	reports := []*models.AnalysisReport{{ID: uuid.New().String()}}

	repo := new(MockReportRepository)
	repo.On("List", mock.Anything, 5).Return(reports, nil)
	got, err := NewProcessingService(repo, nil).ListReports(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, reports, got)

	repo = new(MockReportRepository)
	repo.On("List", mock.Anything, 5).Return(nil, errors.New("connection refused"))
	_, err = NewProcessingService(repo, nil).ListReports(context.Background(), 5)
	assert.ErrorContains(t, err, "failed to list reports")
}

func TestDeleteReport(t *testing.T) {
	id := uuid.New()
	key := ArchiveKey(id.String())

	t.Run("removes archive then row", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(&models.AnalysisReport{ID: id.String(), ArchiveKey: &key}, nil)
		repo.On("Delete", mock.Anything, id).Return(nil)
		s3 := new(MockS3Service)
		s3.On("DeleteFile", mock.Anything, key).Return(nil)

		require.NoError(t, NewProcessingService(repo, s3).DeleteReport(context.Background(), id))
		repo.AssertExpectations(t)
		s3.AssertExpectations(t)
	})

	t.Run("archive failure keeps the row", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(&models.AnalysisReport{ID: id.String(), ArchiveKey: &key}, nil)
		s3 := new(MockS3Service)
		s3.On("DeleteFile", mock.Anything, key).Return(errors.New("access denied"))

		err := NewProcessingService(repo, s3).DeleteReport(context.Background(), id)
		assert.ErrorContains(t, err, "failed to delete archived report")
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("never archived", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(&models.AnalysisReport{ID: id.String()}, nil)
		repo.On("Delete", mock.Anything, id).Return(nil)
		s3 := new(MockS3Service)

		require.NoError(t, NewProcessingService(repo, s3).DeleteReport(context.Background(), id))
		s3.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

		err := NewProcessingService(repo, nil).DeleteReport(context.Background(), id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
