package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/repositories"
	"github.com/ezypuz/courseplanner/internal/db"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

// timetableStore is the subset of TimetableRepository the service depends on
type timetableStore interface {
	Create(ctx context.Context, timetable *models.Timetable) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Timetable, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Timetable, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	GetCourseSessionRows(ctx context.Context, q repositories.Querier, timetableID int64) ([]repositories.CourseSessionRow, error)
	EntryExists(ctx context.Context, q repositories.Querier, timetableID, courseID int64) (bool, error)
	InsertEntry(ctx context.Context, q repositories.Querier, timetableID, courseID int64) error
	DeleteEntry(ctx context.Context, timetableID, courseID int64) error
}

// courseStore is the subset of CourseRepository the service depends on
type courseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// transactionRunner runs a function within one database transaction
type transactionRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// TimetableService defines the interface for timetable operations
type TimetableService interface {
	CreateTimetable(ctx context.Context, userID int64, req *dto.CreateTimetableRequest) (*dto.TimetableResponse, error)
	ListTimetables(ctx context.Context, userID int64) ([]dto.TimetableResponse, error)
	RenameTimetable(ctx context.Context, userID, timetableID int64, name string) (*dto.TimetableResponse, error)
	DeleteTimetable(ctx context.Context, userID, timetableID int64) error
	GetTimetableDetail(ctx context.Context, userID, timetableID int64) (*dto.TimetableDetailResponse, error)
	AddCourse(ctx context.Context, userID, timetableID, courseID int64) (*dto.TimetableDetailResponse, error)
	RemoveCourse(ctx context.Context, userID, timetableID, courseID int64) error
}

// timetableServiceImpl implements the TimetableService interface
type timetableServiceImpl struct {
	timetableRepo timetableStore
	courseRepo    courseStore
	tx            transactionRunner
	pool          repositories.Querier
	logger        zerolog.Logger
}

// NewTimetableService creates a new timetable service instance.
// pool is used for reads that run outside a transaction.
func NewTimetableService(timetableRepo timetableStore, courseRepo courseStore, tx transactionRunner, pool repositories.Querier, logger zerolog.Logger) TimetableService {
	return &timetableServiceImpl{
		timetableRepo: timetableRepo,
		courseRepo:    courseRepo,
		tx:            tx,
		pool:          pool,
		logger:        logger,
	}
}

// getOwnedTimetable fetches a timetable and checks ownership. Existence is
// checked before ownership, so a foreign caller learns whether the ID exists.
func (s *timetableServiceImpl) getOwnedTimetable(ctx context.Context, userID, timetableID int64, forbidden error) (*models.Timetable, error) {
	timetable, err := s.timetableRepo.GetByID(ctx, timetableID)
	if err != nil {
		return nil, err
	}
	if timetable.UserID != userID {
		return nil, forbidden
	}
	return timetable, nil
}

// CreateTimetable creates an empty timetable for the user
func (s *timetableServiceImpl) CreateTimetable(ctx context.Context, userID int64, req *dto.CreateTimetableRequest) (*dto.TimetableResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.ErrTimetableNameBlank
	}
	if !req.Semester.IsValid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown semester")
	}

	timetable := &models.Timetable{
		Name:         req.Name,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		UserID:       userID,
	}

	id, err := s.timetableRepo.Create(ctx, timetable)
	if err != nil {
		return nil, err
	}
	timetable.ID = id

	s.logger.Debug().Int64("timetableID", id).Int64("userID", userID).Msg("Timetable created")

	resp := dto.FromTimetable(timetable)
	return &resp, nil
}

// ListTimetables lists the user's timetables, oldest first
func (s *timetableServiceImpl) ListTimetables(ctx context.Context, userID int64) ([]dto.TimetableResponse, error) {
	timetables, err := s.timetableRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TimetableResponse, 0, len(timetables))
	for _, t := range timetables {
		result = append(result, dto.FromTimetable(t))
	}
	return result, nil
}

// RenameTimetable changes a timetable's name
func (s *timetableServiceImpl) RenameTimetable(ctx context.Context, userID, timetableID int64, name string) (*dto.TimetableResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.ErrTimetableNameBlank
	}

	timetable, err := s.getOwnedTimetable(ctx, userID, timetableID, apperrors.ErrTimetableUpdateForbidden)
	if err != nil {
		return nil, err
	}

	if err := s.timetableRepo.UpdateName(ctx, timetableID, name); err != nil {
		return nil, err
	}
	timetable.Name = name

	resp := dto.FromTimetable(timetable)
	return &resp, nil
}

// DeleteTimetable removes a timetable and its entries
func (s *timetableServiceImpl) DeleteTimetable(ctx context.Context, userID, timetableID int64) error {
	if _, err := s.getOwnedTimetable(ctx, userID, timetableID, apperrors.ErrTimetableModifyForbidden); err != nil {
		return err
	}

	if err := s.timetableRepo.Delete(ctx, timetableID); err != nil {
		return err
	}

	s.logger.Debug().Int64("timetableID", timetableID).Int64("userID", userID).Msg("Timetable deleted")
	return nil
}

// GetTimetableDetail returns a timetable with its courses, sessions and credit total
func (s *timetableServiceImpl) GetTimetableDetail(ctx context.Context, userID, timetableID int64) (*dto.TimetableDetailResponse, error) {
	timetable, err := s.getOwnedTimetable(ctx, userID, timetableID, apperrors.ErrTimetableReadForbidden)
	if err != nil {
		return nil, err
	}

	rows, err := s.timetableRepo.GetCourseSessionRows(ctx, s.pool, timetableID)
	if err != nil {
		return nil, err
	}

	return buildTimetableDetail(timetable, rows), nil
}

// AddCourse adds a course to a timetable after duplicate and conflict checks.
// The checks and the insert run in one transaction; the unique constraint on
// timetable entries re-validates duplicate adds that race past the check.
func (s *timetableServiceImpl) AddCourse(ctx context.Context, userID, timetableID, courseID int64) (*dto.TimetableDetailResponse, error) {
	timetable, err := s.getOwnedTimetable(ctx, userID, timetableID, apperrors.ErrTimetableModifyForbidden)
	if err != nil {
		return nil, err
	}

	candidate, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var detail *dto.TimetableDetailResponse
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		exists, err := s.timetableRepo.EntryExists(ctx, tx, timetableID, courseID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrCourseAlreadyAdded
		}

		rows, err := s.timetableRepo.GetCourseSessionRows(ctx, tx, timetableID)
		if err != nil {
			return err
		}

		if sessionsConflict(candidate.Sessions, rows) {
			return apperrors.ErrCourseTimeConflict
		}

		if err := s.timetableRepo.InsertEntry(ctx, tx, timetableID, courseID); err != nil {
			return err
		}

		refreshed, err := s.timetableRepo.GetCourseSessionRows(ctx, tx, timetableID)
		if err != nil {
			return err
		}
		detail = buildTimetableDetail(timetable, refreshed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("timetableID", timetableID).Int64("courseID", courseID).Msg("Course added to timetable")
	return detail, nil
}

// RemoveCourse removes a course from a timetable
func (s *timetableServiceImpl) RemoveCourse(ctx context.Context, userID, timetableID, courseID int64) error {
	if _, err := s.getOwnedTimetable(ctx, userID, timetableID, apperrors.ErrTimetableModifyForbidden); err != nil {
		return err
	}

	return s.timetableRepo.DeleteEntry(ctx, timetableID, courseID)
}

// sessionsConflict reports whether any candidate session overlaps any session
// already present in the timetable's rows
func sessionsConflict(candidate []*models.ClassSession, rows []repositories.CourseSessionRow) bool {
	for _, row := range rows {
		if !row.HasSession() {
			continue
		}
		existing := &models.ClassSession{
			DayOfWeek: row.SessionDayOfWeek,
			StartTime: row.SessionStartTime,
			EndTime:   row.SessionEndTime,
		}
		for _, s := range candidate {
			if s.Overlaps(existing) {
				return true
			}
		}
	}
	return false
}

// sessionKey is a comparable image of one session row, used to drop
// byte-identical duplicates within a course
type sessionKey struct {
	day, start, end          int
	dayNil, startNil, endNil bool
	location, format         string
	locationNil, formatNil   bool
}

func rowSessionKey(row *repositories.CourseSessionRow) sessionKey {
	key := sessionKey{
		dayNil:      row.SessionDayOfWeek == nil,
		startNil:    row.SessionStartTime == nil,
		endNil:      row.SessionEndTime == nil,
		locationNil: row.SessionLocation == nil,
		formatNil:   row.SessionCourseFormat == nil,
	}
	if !key.dayNil {
		key.day = *row.SessionDayOfWeek
	}
	if !key.startNil {
		key.start = *row.SessionStartTime
	}
	if !key.endNil {
		key.end = *row.SessionEndTime
	}
	if !key.locationNil {
		key.location = *row.SessionLocation
	}
	if !key.formatNil {
		key.format = *row.SessionCourseFormat
	}
	return key
}

// buildTimetableDetail folds the flat course/session rows into the nested
// detail response. Courses keep their first-seen order; per-course fields come
// from the course's first row; all-null session rows are skipped; duplicate
// session rows collapse to one; each distinct course's credits count once.
func buildTimetableDetail(timetable *models.Timetable, rows []repositories.CourseSessionRow) *dto.TimetableDetailResponse {
	order := []int64{}
	courses := map[int64]*dto.CourseResponse{}
	seen := map[int64]map[sessionKey]struct{}{}

	var totalCredits float64
	for i := range rows {
		row := &rows[i]
		courseID := row.Course.ID

		course, ok := courses[courseID]
		if !ok {
			resp := dto.FromCourse(&row.Course)
			resp.Sessions = []dto.ClassSessionResponse{}
			course = &resp
			courses[courseID] = course
			seen[courseID] = map[sessionKey]struct{}{}
			order = append(order, courseID)
			if row.Course.Credits != nil {
				totalCredits += *row.Course.Credits
			}
		}

		if !row.HasSession() {
			continue
		}
		key := rowSessionKey(row)
		if _, dup := seen[courseID][key]; dup {
			continue
		}
		seen[courseID][key] = struct{}{}
		course.Sessions = append(course.Sessions, dto.ClassSessionResponse{
			DayOfWeek:    row.SessionDayOfWeek,
			StartTime:    row.SessionStartTime,
			EndTime:      row.SessionEndTime,
			Location:     row.SessionLocation,
			CourseFormat: row.SessionCourseFormat,
		})
	}

	result := &dto.TimetableDetailResponse{
		ID:           timetable.ID,
		Name:         timetable.Name,
		AcademicYear: timetable.AcademicYear,
		Semester:     timetable.Semester,
		TotalCredits: totalCredits,
		Courses:      make([]dto.CourseResponse, 0, len(order)),
	}
	for _, id := range order {
		result.Courses = append(result.Courses, *courses[id])
	}
	return result
}
