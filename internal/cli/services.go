package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/roommodes/internal/config"
	"github.com/RMahshie/roommodes/internal/processing"
	"github.com/RMahshie/roommodes/internal/repository"
	"github.com/RMahshie/roommodes/internal/repository/memory"
	"github.com/RMahshie/roommodes/internal/repository/postgres"
	"github.com/RMahshie/roommodes/internal/storage"
)

// newProcessingService picks the report store and archive from cfg. Reports
// go to Postgres when a database URL is set and stay in memory otherwise;
// a configured bucket turns on archiving.
func newProcessingService(ctx context.Context, cfg *config.Config) (processing.ProcessingService, func() error, error) {
	closers := []func() error{}
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	var repo repository.ReportRepository
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		closers = append(closers, db.Close)

		if err := db.PingContext(ctx); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgres.MigrateUp(db); err != nil {
			closeAll()
			return nil, nil, err
		}
		repo = postgres.NewPostgresReportRepository(db)
		log.Info().Msg("Storing reports in Postgres")
	} else {
		repo = memory.NewReportRepository()
		log.Debug().Msg("Storing reports in memory")
	}

	var archive storage.S3Service
	if cfg.AWS.S3Bucket != "" {
		s3cfg := storage.S3Config{
			Bucket:    cfg.AWS.S3Bucket,
			Endpoint:  cfg.AWS.S3Endpoint,
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
		}
		if err := storage.EnsureBucket(ctx, s3cfg); err != nil {
			closeAll()
			return nil, nil, err
		}
		svc, err := storage.NewS3Service(ctx, s3cfg)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		archive = svc
		log.Info().Str("bucket", s3cfg.Bucket).Msg("Archiving reports to S3")
	}

	return processing.NewProcessingService(repo, archive), closeAll, nil
}
