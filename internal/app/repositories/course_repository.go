package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
	"github.com/ezypuz/courseplanner/internal/pkg/helpers"
	"github.com/ezypuz/courseplanner/internal/pkg/logger"
)

// courseColumns is the canonical column list for scanning a courses row.
const courseColumns = `id, academic_year, semester, division, college, department, course_type, grade,
	course_number, lecture_number, title, subtitle, credits, class_time, lab_time, professor,
	pre_registration_count, pre_registration_count_for_non_freshman, pre_registration_count_for_freshman,
	quota, nonfreshman_quota, registration_count, remark, language, status`

// CourseSearchParams narrows a catalog search to one term plus an optional keyword.
type CourseSearchParams struct {
	AcademicYear int
	Semester     models.Semester
	Keyword      string
	Page         int
	PageSize     int
}

// CourseRepository handles course catalog database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.AcademicYear, &course.Semester, &course.Division, &course.College,
		&course.Department, &course.CourseType, &course.Grade, &course.CourseNumber,
		&course.LectureNumber, &course.Title, &course.Subtitle, &course.Credits,
		&course.ClassTime, &course.LabTime, &course.Professor,
		&course.PreRegistrationCount, &course.PreRegistrationCountNonFreshman,
		&course.PreRegistrationCountFreshman, &course.Quota, &course.NonFreshmanQuota,
		&course.RegistrationCount, &course.Remark, &course.Language, &course.Status,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// GetByID retrieves a course with its sessions
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	sessions, err := r.getSessionsByCourseIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	course.Sessions = sessions[id]

	return course, nil
}

// Search returns one page of catalog hits for a term, with the total hit count.
// Keyword is matched case-insensitively against title and professor.
func (r *CourseRepository) Search(ctx context.Context, params CourseSearchParams) ([]*models.Course, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM courses
		WHERE academic_year = $1 AND semester = $2
		  AND ($3 = '' OR title ILIKE '%%' || $3 || '%%' OR professor ILIKE '%%' || $3 || '%%')
		ORDER BY course_number, lecture_number, id
		LIMIT $4 OFFSET $5`, courseColumns)

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.PageSize)
	rows, err := r.db.Query(ctx, query, params.AcademicYear, params.Semester, params.Keyword, limit, offset)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course search query")
		return nil, 0, fmt.Errorf("error searching courses: %w", err)
	}
	defer rows.Close()

	var totalCount int64
	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		err := rows.Scan(
			&course.ID, &course.AcademicYear, &course.Semester, &course.Division, &course.College,
			&course.Department, &course.CourseType, &course.Grade, &course.CourseNumber,
			&course.LectureNumber, &course.Title, &course.Subtitle, &course.Credits,
			&course.ClassTime, &course.LabTime, &course.Professor,
			&course.PreRegistrationCount, &course.PreRegistrationCountNonFreshman,
			&course.PreRegistrationCountFreshman, &course.Quota, &course.NonFreshmanQuota,
			&course.RegistrationCount, &course.Remark, &course.Language, &course.Status,
			&totalCount,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course search row")
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	if len(courses) > 0 {
		ids := make([]int64, len(courses))
		for i, c := range courses {
			ids[i] = c.ID
		}
		sessions, err := r.getSessionsByCourseIDs(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for _, c := range courses {
			c.Sessions = sessions[c.ID]
		}
	}

	return courses, totalCount, nil
}

// getSessionsByCourseIDs loads class sessions for a set of courses, keyed by course ID
func (r *CourseRepository) getSessionsByCourseIDs(ctx context.Context, courseIDs []int64) (map[int64][]*models.ClassSession, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, day_of_week, start_time, end_time, location, course_format
		FROM class_sessions
		WHERE course_id = ANY($1)
		ORDER BY course_id, id`, courseIDs)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying class sessions")
		return nil, fmt.Errorf("error querying class sessions: %w", err)
	}
	defer rows.Close()

	sessions := make(map[int64][]*models.ClassSession)
	for rows.Next() {
		s := &models.ClassSession{}
		if err := rows.Scan(&s.ID, &s.CourseID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Location, &s.CourseFormat); err != nil {
			return nil, fmt.Errorf("error scanning class session row: %w", err)
		}
		sessions[s.CourseID] = append(sessions[s.CourseID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class session rows: %w", err)
	}

	return sessions, nil
}

// ExistsByID checks whether a course exists
func (r *CourseRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error checking course existence")
		return false, fmt.Errorf("error checking course: %w", err)
	}
	return exists, nil
}

// DeleteByTerm removes all courses (and cascaded sessions) for one term.
// The catalog importer calls this before re-inserting a fresh download.
func (r *CourseRepository) DeleteByTerm(ctx context.Context, tx pgx.Tx, year int, semester models.Semester) error {
	_, err := tx.Exec(ctx, "DELETE FROM courses WHERE academic_year = $1 AND semester = $2", year, semester)
	if err != nil {
		logger.Error().Err(err).Int("year", year).Str("semester", string(semester)).Msg("Error deleting term courses")
		return fmt.Errorf("error deleting courses for term: %w", err)
	}
	return nil
}

func (r *CourseRepository) insertCourseQuery(course *models.Course) (string, []interface{}, error) {
	return r.sb.Insert("courses").
		Columns("academic_year", "semester", "division", "college", "department", "course_type",
			"grade", "course_number", "lecture_number", "title", "subtitle", "credits",
			"class_time", "lab_time", "professor", "pre_registration_count",
			"pre_registration_count_for_non_freshman", "pre_registration_count_for_freshman",
			"quota", "nonfreshman_quota", "registration_count", "remark", "language", "status").
		Values(course.AcademicYear, course.Semester, course.Division, course.College,
			course.Department, course.CourseType, course.Grade, course.CourseNumber,
			course.LectureNumber, course.Title, course.Subtitle, course.Credits,
			course.ClassTime, course.LabTime, course.Professor, course.PreRegistrationCount,
			course.PreRegistrationCountNonFreshman, course.PreRegistrationCountFreshman,
			course.Quota, course.NonFreshmanQuota, course.RegistrationCount, course.Remark,
			course.Language, course.Status).
		Suffix("RETURNING id").
		ToSql()
}

// InsertManyWithSessions inserts a chunk of courses and their sessions inside
// the given transaction. Course rows go out as one pgx batch, sessions as a
// second one once the generated ids are known.
func (r *CourseRepository) InsertManyWithSessions(ctx context.Context, tx pgx.Tx, courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}

	courseBatch := &pgx.Batch{}
	for _, course := range courses {
		sql, args, err := r.insertCourseQuery(course)
		if err != nil {
			return fmt.Errorf("failed to build insert course query: %w", err)
		}
		courseBatch.Queue(sql, args...)
	}

	results := tx.SendBatch(ctx, courseBatch)
	ids := make([]int64, len(courses))
	for i, course := range courses {
		if err := results.QueryRow().Scan(&ids[i]); err != nil {
			results.Close()
			logger.Error().Err(err).Str("courseNumber", course.CourseNumber).Msg("Error inserting course")
			return fmt.Errorf("error inserting course: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("error closing course insert batch: %w", err)
	}

	sessionBatch := &pgx.Batch{}
	for i, course := range courses {
		for _, s := range course.Sessions {
			sessionBatch.Queue(`
				INSERT INTO class_sessions (course_id, day_of_week, start_time, end_time, location, course_format)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				ids[i], s.DayOfWeek, s.StartTime, s.EndTime, s.Location, s.CourseFormat)
		}
	}
	if sessionBatch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, sessionBatch).Close(); err != nil {
		logger.Error().Err(err).Msg("Error inserting class sessions")
		return fmt.Errorf("error inserting class sessions: %w", err)
	}

	return nil
}
