package dto

import "github.com/ezypuz/courseplanner/internal/app/models"

// CreateTimetableRequest represents a request to create a timetable
type CreateTimetableRequest struct {
	Name         string          `json:"name" binding:"required"`
	AcademicYear int             `json:"academicYear" binding:"required"`
	Semester     models.Semester `json:"semester" binding:"required"`
}

// RenameTimetableRequest represents a request to rename a timetable
type RenameTimetableRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddCourseRequest represents a request to add a course to a timetable
type AddCourseRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}

// TimetableResponse represents a timetable without its courses
type TimetableResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	AcademicYear int             `json:"academicYear"`
	Semester     models.Semester `json:"semester"`
}

// TimetableDetailResponse represents a timetable with its courses and credit total
type TimetableDetailResponse struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	AcademicYear int              `json:"academicYear"`
	Semester     models.Semester  `json:"semester"`
	TotalCredits float64          `json:"totalCredits"`
	Courses      []CourseResponse `json:"courses"`
}

// FromTimetable converts a model.Timetable to a TimetableResponse
func FromTimetable(timetable *models.Timetable) TimetableResponse {
	if timetable == nil {
		return TimetableResponse{}
	}
	return TimetableResponse{
		ID:           timetable.ID,
		Name:         timetable.Name,
		AcademicYear: timetable.AcademicYear,
		Semester:     timetable.Semester,
	}
}
