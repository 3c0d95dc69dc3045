package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
	"github.com/ezypuz/courseplanner/internal/pkg/dberrors"
	"github.com/ezypuz/courseplanner/internal/pkg/logger"
)

// Querier is the subset of pgx operations shared by pgxpool.Pool and pgx.Tx.
// Detail and entry methods take it so they run inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CourseSessionRow is one row of the timetable detail query: the course columns
// joined with at most one of its sessions' columns. The session columns are all
// nil when the course has no sessions.
type CourseSessionRow struct {
	Course models.Course

	SessionDayOfWeek    *int
	SessionStartTime    *int
	SessionEndTime      *int
	SessionLocation     *string
	SessionCourseFormat *string
}

// HasSession reports whether the row carries any session data at all
func (row *CourseSessionRow) HasSession() bool {
	return row.SessionDayOfWeek != nil || row.SessionStartTime != nil || row.SessionEndTime != nil ||
		row.SessionLocation != nil || row.SessionCourseFormat != nil
}

// TimetableRepository handles timetable database operations
type TimetableRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTimetableRepository creates a new TimetableRepository
func NewTimetableRepository(db *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new timetable and returns its ID
func (r *TimetableRepository) Create(ctx context.Context, timetable *models.Timetable) (int64, error) {
	sql, args, err := r.sb.Insert("timetables").
		Columns("name", "academic_year", "semester", "user_id").
		Values(timetable.Name, timetable.AcademicYear, timetable.Semester, timetable.UserID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create timetable SQL")
		return 0, fmt.Errorf("failed to build create timetable query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("userID", timetable.UserID).Msg("Error executing create timetable query")
		return 0, fmt.Errorf("error creating timetable: %w", err)
	}

	return id, nil
}

// GetByID retrieves a timetable by ID
func (r *TimetableRepository) GetByID(ctx context.Context, id int64) (*models.Timetable, error) {
	sql, args, err := r.sb.Select("id", "name", "academic_year", "semester", "user_id").
		From("timetables").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get timetable SQL")
		return nil, fmt.Errorf("failed to build get timetable query: %w", err)
	}

	timetable := &models.Timetable{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&timetable.ID, &timetable.Name, &timetable.AcademicYear, &timetable.Semester, &timetable.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTimetableNotFound
		}
		logger.Error().Err(err).Int64("timetableID", id).Msg("Error scanning timetable row")
		return nil, fmt.Errorf("error getting timetable by ID: %w", err)
	}

	return timetable, nil
}

// ListByUser retrieves all timetables owned by a user, oldest first
func (r *TimetableRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Timetable, error) {
	sql, args, err := r.sb.Select("id", "name", "academic_year", "semester", "user_id").
		From("timetables").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list timetables SQL")
		return nil, fmt.Errorf("failed to build list timetables query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list timetables query")
		return nil, fmt.Errorf("error listing timetables: %w", err)
	}
	defer rows.Close()

	timetables := []*models.Timetable{}
	for rows.Next() {
		t := &models.Timetable{}
		if err := rows.Scan(&t.ID, &t.Name, &t.AcademicYear, &t.Semester, &t.UserID); err != nil {
			return nil, fmt.Errorf("error scanning timetable row: %w", err)
		}
		timetables = append(timetables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timetable rows: %w", err)
	}

	return timetables, nil
}

// UpdateName renames a timetable
func (r *TimetableRepository) UpdateName(ctx context.Context, id int64, name string) error {
	cmdTag, err := r.db.Exec(ctx, "UPDATE timetables SET name = $1 WHERE id = $2", name, id)
	if err != nil {
		logger.Error().Err(err).Int64("timetableID", id).Msg("Error executing rename timetable query")
		return fmt.Errorf("error renaming timetable: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTimetableNotFound
	}
	return nil
}

// Delete removes a timetable; its entries cascade at the schema level
func (r *TimetableRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM timetables WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("timetableID", id).Msg("Error executing delete timetable query")
		return fmt.Errorf("error deleting timetable: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTimetableNotFound
	}
	return nil
}

// GetCourseSessionRows returns the flat join of a timetable's courses with their
// sessions, one row per (course, session) pair, in entry insertion order.
func (r *TimetableRepository) GetCourseSessionRows(ctx context.Context, q Querier, timetableID int64) ([]CourseSessionRow, error) {
	query := `
		SELECT c.id, c.academic_year, c.semester, c.division, c.college, c.department, c.course_type, c.grade,
		       c.course_number, c.lecture_number, c.title, c.subtitle, c.credits, c.class_time, c.lab_time, c.professor,
		       c.pre_registration_count, c.pre_registration_count_for_non_freshman, c.pre_registration_count_for_freshman,
		       c.quota, c.nonfreshman_quota, c.registration_count, c.remark, c.language, c.status,
		       s.day_of_week, s.start_time, s.end_time, s.location, s.course_format
		FROM timetable_courses tc
		JOIN courses c ON c.id = tc.course_id
		LEFT JOIN class_sessions s ON s.course_id = c.id
		WHERE tc.timetable_id = $1
		ORDER BY tc.id, s.id`

	rows, err := q.Query(ctx, query, timetableID)
	if err != nil {
		logger.Error().Err(err).Int64("timetableID", timetableID).Msg("Error executing timetable detail query")
		return nil, fmt.Errorf("error querying timetable courses: %w", err)
	}
	defer rows.Close()

	result := []CourseSessionRow{}
	for rows.Next() {
		var row CourseSessionRow
		c := &row.Course
		err := rows.Scan(
			&c.ID, &c.AcademicYear, &c.Semester, &c.Division, &c.College,
			&c.Department, &c.CourseType, &c.Grade, &c.CourseNumber,
			&c.LectureNumber, &c.Title, &c.Subtitle, &c.Credits,
			&c.ClassTime, &c.LabTime, &c.Professor,
			&c.PreRegistrationCount, &c.PreRegistrationCountNonFreshman,
			&c.PreRegistrationCountFreshman, &c.Quota, &c.NonFreshmanQuota,
			&c.RegistrationCount, &c.Remark, &c.Language, &c.Status,
			&row.SessionDayOfWeek, &row.SessionStartTime, &row.SessionEndTime,
			&row.SessionLocation, &row.SessionCourseFormat,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning timetable course row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timetable course rows: %w", err)
	}

	return result, nil
}

// EntryExists checks whether a course is already in a timetable
func (r *TimetableRepository) EntryExists(ctx context.Context, q Querier, timetableID, courseID int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM timetable_courses WHERE timetable_id = $1 AND course_id = $2)",
		timetableID, courseID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("timetableID", timetableID).Int64("courseID", courseID).Msg("Error checking timetable entry")
		return false, fmt.Errorf("error checking timetable entry: %w", err)
	}
	return exists, nil
}

// InsertEntry links a course into a timetable. The unique constraint on
// (timetable_id, course_id) catches concurrent duplicate adds.
func (r *TimetableRepository) InsertEntry(ctx context.Context, q Querier, timetableID, courseID int64) error {
	_, err := q.Exec(ctx,
		"INSERT INTO timetable_courses (timetable_id, course_id) VALUES ($1, $2)",
		timetableID, courseID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "timetable_courses_timetable_id_course_id_key") {
			return apperrors.ErrCourseAlreadyAdded
		}
		logger.Error().Err(err).Int64("timetableID", timetableID).Int64("courseID", courseID).Msg("Error inserting timetable entry")
		return fmt.Errorf("error inserting timetable entry: %w", err)
	}
	return nil
}

// DeleteEntry unlinks a course from a timetable
func (r *TimetableRepository) DeleteEntry(ctx context.Context, timetableID, courseID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		"DELETE FROM timetable_courses WHERE timetable_id = $1 AND course_id = $2",
		timetableID, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("timetableID", timetableID).Int64("courseID", courseID).Msg("Error deleting timetable entry")
		return fmt.Errorf("error deleting timetable entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotInTimetable
	}
	return nil
}
