package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/repositories"
	"github.com/ezypuz/courseplanner/internal/db"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

func intPtr(v int) *int             { return &v }
func strPtr(v string) *string       { return &v }
func float64Ptr(v float64) *float64 { return &v }

// mockTimetableStore keeps timetables and their course entries in memory.
// GetCourseSessionRows reproduces the flat LEFT JOIN shape the real
// repository returns: one row per course session, and a single all-null
// session row for a course without sessions.
type mockTimetableStore struct {
	nextID     int64
	timetables map[int64]*models.Timetable
	entries    map[int64][]int64
	catalog    map[int64]*models.Course
}

func newMockTimetableStore(catalog map[int64]*models.Course) *mockTimetableStore {
	return &mockTimetableStore{
		timetables: make(map[int64]*models.Timetable),
		entries:    make(map[int64][]int64),
		catalog:    catalog,
	}
}

func (m *mockTimetableStore) Create(_ context.Context, timetable *models.Timetable) (int64, error) {
	m.nextID++
	copied := *timetable
	copied.ID = m.nextID
	m.timetables[copied.ID] = &copied
	return copied.ID, nil
}

func (m *mockTimetableStore) GetByID(_ context.Context, id int64) (*models.Timetable, error) {
	if t, ok := m.timetables[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, apperrors.ErrTimetableNotFound
}

func (m *mockTimetableStore) ListByUser(_ context.Context, userID int64) ([]*models.Timetable, error) {
	var result []*models.Timetable
	for id := int64(1); id <= m.nextID; id++ {
		if t, ok := m.timetables[id]; ok && t.UserID == userID {
			copied := *t
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockTimetableStore) UpdateName(_ context.Context, id int64, name string) error {
	t, ok := m.timetables[id]
	if !ok {
		return apperrors.ErrTimetableNotFound
	}
	t.Name = name
	return nil
}

func (m *mockTimetableStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.timetables[id]; !ok {
		return apperrors.ErrTimetableNotFound
	}
	delete(m.timetables, id)
	delete(m.entries, id)
	return nil
}

func (m *mockTimetableStore) GetCourseSessionRows(_ context.Context, _ repositories.Querier, timetableID int64) ([]repositories.CourseSessionRow, error) {
	var rows []repositories.CourseSessionRow
	for _, courseID := range m.entries[timetableID] {
		course, ok := m.catalog[courseID]
		if !ok {
			continue
		}
		if len(course.Sessions) == 0 {
			rows = append(rows, repositories.CourseSessionRow{Course: *course})
			continue
		}
		for _, s := range course.Sessions {
			rows = append(rows, repositories.CourseSessionRow{
				Course:              *course,
				SessionDayOfWeek:    s.DayOfWeek,
				SessionStartTime:    s.StartTime,
				SessionEndTime:      s.EndTime,
				SessionLocation:     s.Location,
				SessionCourseFormat: s.CourseFormat,
			})
		}
	}
	return rows, nil
}

func (m *mockTimetableStore) EntryExists(_ context.Context, _ repositories.Querier, timetableID, courseID int64) (bool, error) {
	for _, id := range m.entries[timetableID] {
		if id == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTimetableStore) InsertEntry(_ context.Context, _ repositories.Querier, timetableID, courseID int64) error {
	for _, id := range m.entries[timetableID] {
		if id == courseID {
			return apperrors.ErrCourseAlreadyAdded
		}
	}
	m.entries[timetableID] = append(m.entries[timetableID], courseID)
	return nil
}

func (m *mockTimetableStore) DeleteEntry(_ context.Context, timetableID, courseID int64) error {
	ids := m.entries[timetableID]
	for i, id := range ids {
		if id == courseID {
			m.entries[timetableID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCourseNotInTimetable
}

// mockCourseStore serves courses from the shared catalog map.
type mockCourseStore struct {
	catalog map[int64]*models.Course
}

func (m *mockCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := m.catalog[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

// mockTxRunner invokes the function directly; the mock stores ignore the
// transaction handle.
type mockTxRunner struct{}

func (mockTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	var tx pgx.Tx
	return fn(ctx, tx)
}

// mockUserStore keeps users in memory keyed by username.
type mockUserStore struct {
	nextID int64
	users  map[string]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*models.User)}
}

func (m *mockUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	if _, ok := m.users[user.Username]; ok {
		return 0, apperrors.ErrUsernameTaken
	}
	m.nextID++
	copied := *user
	copied.ID = m.nextID
	copied.CreatedAt = time.Now()
	m.users[copied.Username] = &copied
	return copied.ID, nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := m.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.ErrUserNotFound
}

// mockBoardStore keeps boards in memory.
type mockBoardStore struct {
	nextID int64
	boards map[int64]*models.Board
}

func newMockBoardStore() *mockBoardStore {
	return &mockBoardStore{boards: make(map[int64]*models.Board)}
}

func (m *mockBoardStore) Create(_ context.Context, board *models.Board) (int64, error) {
	for _, b := range m.boards {
		if b.Name == board.Name {
			return 0, apperrors.ErrBoardNameTaken
		}
	}
	m.nextID++
	copied := *board
	copied.ID = m.nextID
	m.boards[copied.ID] = &copied
	return copied.ID, nil
}

func (m *mockBoardStore) GetByID(_ context.Context, id int64) (*models.Board, error) {
	if b, ok := m.boards[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, apperrors.ErrBoardNotFound
}

func (m *mockBoardStore) GetAll(_ context.Context) ([]*models.Board, error) {
	var result []*models.Board
	for id := int64(1); id <= m.nextID; id++ {
		if b, ok := m.boards[id]; ok {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

// mockPostStore keeps posts in memory, newest first for listing.
type mockPostStore struct {
	nextID int64
	posts  map[int64]*models.Post
}

func newMockPostStore() *mockPostStore {
	return &mockPostStore{posts: make(map[int64]*models.Post)}
}

func (m *mockPostStore) Create(_ context.Context, post *models.Post) (int64, error) {
	m.nextID++
	copied := *post
	copied.ID = m.nextID
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	m.posts[copied.ID] = &copied
	post.ID = copied.ID
	post.CreatedAt = copied.CreatedAt
	return copied.ID, nil
}

func (m *mockPostStore) GetByID(_ context.Context, id int64) (*models.Post, error) {
	if p, ok := m.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, apperrors.ErrPostNotFound
}

func (m *mockPostStore) ListByBoard(_ context.Context, boardID int64, cursor *repositories.PostCursor, limit int) ([]*models.Post, error) {
	var result []*models.Post
	// Newest first: ids are assigned sequentially and the tests create posts
	// in ascending time order, so descending id matches the real ordering.
	for id := m.nextID; id >= 1; id-- {
		p, ok := m.posts[id]
		if !ok || p.BoardID != boardID {
			continue
		}
		if cursor != nil {
			if p.CreatedAt.After(cursor.CreatedAt) {
				continue
			}
			if p.CreatedAt.Equal(cursor.CreatedAt) && p.ID >= cursor.ID {
				continue
			}
		}
		copied := *p
		result = append(result, &copied)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockPostStore) Update(_ context.Context, id int64, title, content string) error {
	p, ok := m.posts[id]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	p.Title = title
	p.Content = content
	return nil
}

func (m *mockPostStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(m.posts, id)
	return nil
}

// mockCommentStore keeps comments in memory, oldest first for listing.
type mockCommentStore struct {
	nextID   int64
	comments map[int64]*models.Comment
}

func newMockCommentStore() *mockCommentStore {
	return &mockCommentStore{comments: make(map[int64]*models.Comment)}
}

func (m *mockCommentStore) Create(_ context.Context, comment *models.Comment) (int64, error) {
	m.nextID++
	copied := *comment
	copied.ID = m.nextID
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	m.comments[copied.ID] = &copied
	comment.ID = copied.ID
	comment.CreatedAt = copied.CreatedAt
	return copied.ID, nil
}

func (m *mockCommentStore) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	if c, ok := m.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperrors.ErrCommentNotFound
}

func (m *mockCommentStore) ListByPost(_ context.Context, postID int64) ([]*models.Comment, error) {
	var result []*models.Comment
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.comments[id]; ok && c.PostID == postID {
			copied := *c
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockCommentStore) Update(_ context.Context, id int64, content string) error {
	c, ok := m.comments[id]
	if !ok {
		return apperrors.ErrCommentNotFound
	}
	c.Content = content
	return nil
}

func (m *mockCommentStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}
