package models

// Timetable is a user-owned plan for one year and semester.
type Timetable struct {
	ID           int64    `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	AcademicYear int      `json:"academicYear" db:"academic_year"`
	Semester     Semester `json:"semester" db:"semester"`
	UserID       int64    `json:"userId" db:"user_id"`
}

// TimetableEntry links a course into a timetable.
type TimetableEntry struct {
	ID          int64 `json:"id" db:"id"`
	TimetableID int64 `json:"timetableId" db:"timetable_id"`
	CourseID    int64 `json:"courseId" db:"course_id"`
}
