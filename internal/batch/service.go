package batch

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/repositories"
	"github.com/ezypuz/courseplanner/internal/db"
)

// ImportService downloads and imports the course catalog for one term
type ImportService interface {
	ImportCourses(ctx context.Context, year int, semester models.Semester) (*dto.ImportResultResponse, error)
}

// defaultBatchSize bounds one insert round trip when the config leaves it unset
const defaultBatchSize = 500

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	client     *CatalogClient
	courseRepo *repositories.CourseRepository
	database   *db.PostgresDB
	batchSize  int
	logger     zerolog.Logger
}

// NewImportService creates a new catalog import service
func NewImportService(client *CatalogClient, courseRepo *repositories.CourseRepository, database *db.PostgresDB, batchSize int, logger zerolog.Logger) ImportService {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &importServiceImpl{
		client:     client,
		courseRepo: courseRepo,
		database:   database,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// ImportCourses replaces the stored catalog for one term with a fresh download.
// The delete and all inserts run in a single transaction, so a failed import
// leaves the previous catalog intact.
func (s *importServiceImpl) ImportCourses(ctx context.Context, year int, semester models.Semester) (*dto.ImportResultResponse, error) {
	s.logger.Info().Int("year", year).Str("semester", string(semester)).Msg("Starting catalog import")

	data, err := s.client.DownloadWorkbook(ctx, year, semester)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseWorkbook(data, year, semester)
	if err != nil {
		return nil, err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseRepo.DeleteByTerm(ctx, tx, year, semester); err != nil {
			return err
		}
		for start := 0; start < len(parsed.Courses); start += s.batchSize {
			end := min(start+s.batchSize, len(parsed.Courses))
			if err := s.courseRepo.InsertManyWithSessions(ctx, tx, parsed.Courses[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("successCount", parsed.SuccessCount).
		Int("failCount", parsed.FailCount).
		Msg("Catalog import completed")

	return &dto.ImportResultResponse{
		TotalCount:   parsed.SuccessCount + parsed.FailCount,
		SuccessCount: parsed.SuccessCount,
		FailCount:    parsed.FailCount,
	}, nil
}
