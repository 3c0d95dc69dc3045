package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

func mkSession(day, start, end int) *models.ClassSession {
	return &models.ClassSession{
		DayOfWeek: intPtr(day),
		StartTime: intPtr(start),
		EndTime:   intPtr(end),
	}
}

func mkCourse(id int64, title string, credits *float64, sessions ...*models.ClassSession) *models.Course {
	return &models.Course{
		ID:            id,
		AcademicYear:  2026,
		Semester:      models.SemesterSpring,
		CourseNumber:  "M0000.000100",
		LectureNumber: "001",
		Title:         title,
		Credits:       credits,
		Sessions:      sessions,
	}
}

type timetableFixture struct {
	service TimetableService
	store   *mockTimetableStore
	catalog map[int64]*models.Course
}

func newTimetableFixture(courses ...*models.Course) *timetableFixture {
	catalog := make(map[int64]*models.Course)
	for _, c := range courses {
		catalog[c.ID] = c
	}
	store := newMockTimetableStore(catalog)
	service := NewTimetableService(store, &mockCourseStore{catalog: catalog}, mockTxRunner{}, nil, zerolog.Nop())
	return &timetableFixture{service: service, store: store, catalog: catalog}
}

func (f *timetableFixture) createTimetable(t *testing.T, userID int64) *dto.TimetableResponse {
	t.Helper()
	resp, err := f.service.CreateTimetable(context.Background(), userID, &dto.CreateTimetableRequest{
		Name:         "plan A",
		AcademicYear: 2026,
		Semester:     models.SemesterSpring,
	})
	if err != nil {
		t.Fatalf("CreateTimetable: %v", err)
	}
	return resp
}

func TestCreateTimetableBlankName(t *testing.T) {
	f := newTimetableFixture()

	for _, name := range []string{"", "   ", "\t"} {
		_, err := f.service.CreateTimetable(context.Background(), 1, &dto.CreateTimetableRequest{
			Name:         name,
			AcademicYear: 2026,
			Semester:     models.SemesterSpring,
		})
		if !errors.Is(err, apperrors.ErrTimetableNameBlank) {
			t.Errorf("name %q: got %v, want ErrTimetableNameBlank", name, err)
		}
	}
}

func TestCreateTimetableUnknownSemester(t *testing.T) {
	f := newTimetableFixture()

	_, err := f.service.CreateTimetable(context.Background(), 1, &dto.CreateTimetableRequest{
		Name:         "plan A",
		AcademicYear: 2026,
		Semester:     models.Semester("FALL"),
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}
}

func TestListTimetablesOnlyOwn(t *testing.T) {
	f := newTimetableFixture()
	f.createTimetable(t, 1)
	f.createTimetable(t, 1)
	f.createTimetable(t, 2)

	list, err := f.service.ListTimetables(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListTimetables: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d timetables, want 2", len(list))
	}
}

func TestGetTimetableDetailNotFound(t *testing.T) {
	f := newTimetableFixture()

	_, err := f.service.GetTimetableDetail(context.Background(), 1, 42)
	if !errors.Is(err, apperrors.ErrTimetableNotFound) {
		t.Fatalf("got %v, want ErrTimetableNotFound", err)
	}
}

func TestGetTimetableDetailForeignUser(t *testing.T) {
	f := newTimetableFixture()
	created := f.createTimetable(t, 1)

	_, err := f.service.GetTimetableDetail(context.Background(), 2, created.ID)
	if !errors.Is(err, apperrors.ErrTimetableReadForbidden) {
		t.Fatalf("got %v, want ErrTimetableReadForbidden", err)
	}
}

func TestRenameTimetableForeignUser(t *testing.T) {
	f := newTimetableFixture()
	created := f.createTimetable(t, 1)

	_, err := f.service.RenameTimetable(context.Background(), 2, created.ID, "stolen")
	if !errors.Is(err, apperrors.ErrTimetableUpdateForbidden) {
		t.Fatalf("got %v, want ErrTimetableUpdateForbidden", err)
	}
}

func TestRenameTimetable(t *testing.T) {
	f := newTimetableFixture()
	created := f.createTimetable(t, 1)

	renamed, err := f.service.RenameTimetable(context.Background(), 1, created.ID, "plan B")
	if err != nil {
		t.Fatalf("RenameTimetable: %v", err)
	}
	if renamed.Name != "plan B" {
		t.Fatalf("got name %q, want %q", renamed.Name, "plan B")
	}
}

func TestRenameTimetableToCurrentName(t *testing.T) {
	f := newTimetableFixture(mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630)))
	created := f.createTimetable(t, 1)
	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("AddCourse: %v", err)
	}

	renamed, err := f.service.RenameTimetable(context.Background(), 1, created.ID, created.Name)
	if err != nil {
		t.Fatalf("RenameTimetable: %v", err)
	}
	if renamed.Name != created.Name {
		t.Fatalf("got name %q, want %q", renamed.Name, created.Name)
	}

	detail, err := f.service.GetTimetableDetail(context.Background(), 1, created.ID)
	if err != nil {
		t.Fatalf("GetTimetableDetail: %v", err)
	}
	if len(detail.Courses) != 1 {
		t.Fatalf("got %d courses after rename, want 1", len(detail.Courses))
	}
	if detail.TotalCredits != 3 {
		t.Fatalf("got %v credits after rename, want 3", detail.TotalCredits)
	}
}

func TestDeleteTimetableNotFound(t *testing.T) {
	f := newTimetableFixture()

	err := f.service.DeleteTimetable(context.Background(), 1, 42)
	if !errors.Is(err, apperrors.ErrTimetableNotFound) {
		t.Fatalf("got %v, want ErrTimetableNotFound", err)
	}
}

func TestDeleteTimetableForeignUser(t *testing.T) {
	f := newTimetableFixture()
	created := f.createTimetable(t, 1)

	err := f.service.DeleteTimetable(context.Background(), 2, created.ID)
	if !errors.Is(err, apperrors.ErrTimetableModifyForbidden) {
		t.Fatalf("got %v, want ErrTimetableModifyForbidden", err)
	}

	// The owner must still see it
	if _, err := f.service.GetTimetableDetail(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("GetTimetableDetail after denied delete: %v", err)
	}
}

func TestAddCourseNotFound(t *testing.T) {
	f := newTimetableFixture()
	created := f.createTimetable(t, 1)

	_, err := f.service.AddCourse(context.Background(), 1, created.ID, 99)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("got %v, want ErrCourseNotFound", err)
	}
}

func TestAddCourseForeignUser(t *testing.T) {
	f := newTimetableFixture(mkCourse(10, "Algorithms", float64Ptr(3)))
	created := f.createTimetable(t, 1)

	_, err := f.service.AddCourse(context.Background(), 2, created.ID, 10)
	if !errors.Is(err, apperrors.ErrTimetableModifyForbidden) {
		t.Fatalf("got %v, want ErrTimetableModifyForbidden", err)
	}
}

func TestAddCourseDuplicate(t *testing.T) {
	f := newTimetableFixture(mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630)))
	created := f.createTimetable(t, 1)

	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("first AddCourse: %v", err)
	}
	_, err := f.service.AddCourse(context.Background(), 1, created.ID, 10)
	if !errors.Is(err, apperrors.ErrCourseAlreadyAdded) {
		t.Fatalf("got %v, want ErrCourseAlreadyAdded", err)
	}
}

func TestAddCourseTimeConflict(t *testing.T) {
	f := newTimetableFixture(
		mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630)),
		mkCourse(11, "Databases", float64Ptr(3), mkSession(0, 600, 690)),
	)
	created := f.createTimetable(t, 1)

	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("first AddCourse: %v", err)
	}
	_, err := f.service.AddCourse(context.Background(), 1, created.ID, 11)
	if !errors.Is(err, apperrors.ErrCourseTimeConflict) {
		t.Fatalf("got %v, want ErrCourseTimeConflict", err)
	}
}

func TestAddCourseAdjacentSessionsDoNotConflict(t *testing.T) {
	// Half-open intervals: one course ending exactly when the next begins is fine.
	f := newTimetableFixture(
		mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630)),
		mkCourse(11, "Databases", float64Ptr(3), mkSession(0, 630, 720)),
	)
	created := f.createTimetable(t, 1)

	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("first AddCourse: %v", err)
	}
	detail, err := f.service.AddCourse(context.Background(), 1, created.ID, 11)
	if err != nil {
		t.Fatalf("second AddCourse: %v", err)
	}
	if len(detail.Courses) != 2 {
		t.Fatalf("got %d courses, want 2", len(detail.Courses))
	}
}

func TestAddCourseNullSessionsNeverConflict(t *testing.T) {
	noTime := &models.ClassSession{Location: strPtr("online")}
	f := newTimetableFixture(
		mkCourse(10, "Seminar", float64Ptr(1), noTime),
		mkCourse(11, "Colloquium", float64Ptr(1), noTime),
	)
	created := f.createTimetable(t, 1)

	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("first AddCourse: %v", err)
	}
	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 11); err != nil {
		t.Fatalf("second AddCourse: %v", err)
	}
}

func TestAddCourseDifferentDaysDoNotConflict(t *testing.T) {
	f := newTimetableFixture(
		mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630)),
		mkCourse(11, "Databases", float64Ptr(3), mkSession(1, 540, 630)),
	)
	created := f.createTimetable(t, 1)

	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("first AddCourse: %v", err)
	}
	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 11); err != nil {
		t.Fatalf("second AddCourse: %v", err)
	}
}

func TestAddRemoveCourseRoundTrip(t *testing.T) {
	f := newTimetableFixture(mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630)))
	created := f.createTimetable(t, 1)

	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("AddCourse: %v", err)
	}
	if err := f.service.RemoveCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("RemoveCourse: %v", err)
	}

	detail, err := f.service.GetTimetableDetail(context.Background(), 1, created.ID)
	if err != nil {
		t.Fatalf("GetTimetableDetail: %v", err)
	}
	if len(detail.Courses) != 0 {
		t.Fatalf("got %d courses after removal, want 0", len(detail.Courses))
	}
	if detail.TotalCredits != 0 {
		t.Fatalf("got %v credits after removal, want 0", detail.TotalCredits)
	}
}

func TestRemoveCourseForeignUser(t *testing.T) {
	f := newTimetableFixture(mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630)))
	created := f.createTimetable(t, 1)
	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("AddCourse: %v", err)
	}

	err := f.service.RemoveCourse(context.Background(), 2, created.ID, 10)
	if !errors.Is(err, apperrors.ErrTimetableModifyForbidden) {
		t.Fatalf("got %v, want ErrTimetableModifyForbidden", err)
	}

	detail, err := f.service.GetTimetableDetail(context.Background(), 1, created.ID)
	if err != nil {
		t.Fatalf("GetTimetableDetail: %v", err)
	}
	if len(detail.Courses) != 1 {
		t.Fatalf("got %d courses after denied removal, want 1", len(detail.Courses))
	}
}

func TestRemoveCourseNotPresent(t *testing.T) {
	f := newTimetableFixture(mkCourse(10, "Algorithms", float64Ptr(3)))
	created := f.createTimetable(t, 1)

	err := f.service.RemoveCourse(context.Background(), 1, created.ID, 10)
	if !errors.Is(err, apperrors.ErrCourseNotInTimetable) {
		t.Fatalf("got %v, want ErrCourseNotInTimetable", err)
	}
}

func TestDetailCreditsCountedOncePerCourse(t *testing.T) {
	// A course with several sessions produces several rows but its credits
	// must be added a single time.
	f := newTimetableFixture(
		mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630), mkSession(2, 540, 630)),
		mkCourse(11, "Seminar", nil),
	)
	created := f.createTimetable(t, 1)

	if _, err := f.service.AddCourse(context.Background(), 1, created.ID, 10); err != nil {
		t.Fatalf("AddCourse 10: %v", err)
	}
	detail, err := f.service.AddCourse(context.Background(), 1, created.ID, 11)
	if err != nil {
		t.Fatalf("AddCourse 11: %v", err)
	}

	if detail.TotalCredits != 3 {
		t.Fatalf("got %v total credits, want 3", detail.TotalCredits)
	}
	if len(detail.Courses) != 2 {
		t.Fatalf("got %d courses, want 2", len(detail.Courses))
	}
	if got := len(detail.Courses[0].Sessions); got != 2 {
		t.Fatalf("got %d sessions for first course, want 2", got)
	}
	// A course without session data appears with an empty session list.
	if detail.Courses[1].Sessions == nil || len(detail.Courses[1].Sessions) != 0 {
		t.Fatalf("got %v sessions for sessionless course, want empty slice", detail.Courses[1].Sessions)
	}
}

func TestDetailDuplicateSessionRowsCollapse(t *testing.T) {
	f := newTimetableFixture(
		mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630), mkSession(0, 540, 630)),
	)
	created := f.createTimetable(t, 1)

	detail, err := f.service.AddCourse(context.Background(), 1, created.ID, 10)
	if err != nil {
		t.Fatalf("AddCourse: %v", err)
	}
	if got := len(detail.Courses[0].Sessions); got != 1 {
		t.Fatalf("got %d sessions, want 1 after dedupe", got)
	}
}

func TestDetailPreservesInsertionOrder(t *testing.T) {
	f := newTimetableFixture(
		mkCourse(10, "Algorithms", float64Ptr(3), mkSession(0, 540, 630)),
		mkCourse(11, "Databases", float64Ptr(3), mkSession(1, 540, 630)),
		mkCourse(12, "Networks", float64Ptr(3), mkSession(2, 540, 630)),
	)
	created := f.createTimetable(t, 1)

	for _, id := range []int64{11, 10, 12} {
		if _, err := f.service.AddCourse(context.Background(), 1, created.ID, id); err != nil {
			t.Fatalf("AddCourse %d: %v", id, err)
		}
	}

	detail, err := f.service.GetTimetableDetail(context.Background(), 1, created.ID)
	if err != nil {
		t.Fatalf("GetTimetableDetail: %v", err)
	}
	want := []string{"Databases", "Algorithms", "Networks"}
	for i, title := range want {
		if detail.Courses[i].Title != title {
			t.Fatalf("position %d: got %q, want %q", i, detail.Courses[i].Title, title)
		}
	}
}
