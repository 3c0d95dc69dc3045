package dto

import "github.com/ezypuz/courseplanner/internal/app/models"

// ClassSessionResponse represents one weekly meeting of a course
type ClassSessionResponse struct {
	DayOfWeek    *int    `json:"dayOfWeek"`
	StartTime    *int    `json:"startTime"`
	EndTime      *int    `json:"endTime"`
	Location     *string `json:"location,omitempty"`
	CourseFormat *string `json:"courseFormat,omitempty"`
}

// CourseResponse represents one catalog entry with its sessions
type CourseResponse struct {
	ID            int64                  `json:"id"`
	AcademicYear  int                    `json:"academicYear"`
	Semester      models.Semester        `json:"semester"`
	College       *string                `json:"college,omitempty"`
	Department    *string                `json:"department,omitempty"`
	CourseType    *string                `json:"courseType,omitempty"`
	Grade         *int                   `json:"grade,omitempty"`
	CourseNumber  string                 `json:"courseNumber"`
	LectureNumber string                 `json:"lectureNumber"`
	Title         string                 `json:"title"`
	Subtitle      *string                `json:"subtitle,omitempty"`
	Credits       *float64               `json:"credits,omitempty"`
	Professor     *string                `json:"professor,omitempty"`
	Quota         *int                   `json:"quota,omitempty"`
	Remark        *string                `json:"remark,omitempty"`
	Sessions      []ClassSessionResponse `json:"sessions"`
}

// CourseListResponse represents one page of catalog search results
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FromClassSession converts a model.ClassSession to a ClassSessionResponse
func FromClassSession(session *models.ClassSession) ClassSessionResponse {
	if session == nil {
		return ClassSessionResponse{}
	}
	return ClassSessionResponse{
		DayOfWeek:    session.DayOfWeek,
		StartTime:    session.StartTime,
		EndTime:      session.EndTime,
		Location:     session.Location,
		CourseFormat: session.CourseFormat,
	}
}

// FromCourse converts a model.Course to a CourseResponse
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}

	sessions := make([]ClassSessionResponse, 0, len(course.Sessions))
	for _, s := range course.Sessions {
		sessions = append(sessions, FromClassSession(s))
	}

	return CourseResponse{
		ID:            course.ID,
		AcademicYear:  course.AcademicYear,
		Semester:      course.Semester,
		College:       course.College,
		Department:    course.Department,
		CourseType:    course.CourseType,
		Grade:         course.Grade,
		CourseNumber:  course.CourseNumber,
		LectureNumber: course.LectureNumber,
		Title:         course.Title,
		Subtitle:      course.Subtitle,
		Credits:       course.Credits,
		Professor:     course.Professor,
		Quota:         course.Quota,
		Remark:        course.Remark,
		Sessions:      sessions,
	}
}
