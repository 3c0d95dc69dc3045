package models

// ClassSession represents a single weekly meeting of a course.
// DayOfWeek is 0 (Monday) through 6 (Sunday). StartTime and EndTime are
// minutes from midnight and form a half-open interval [StartTime, EndTime).
// Any of the three may be nil when the catalog source left it unspecified.
type ClassSession struct {
	ID           int64   `json:"id" db:"id"`
	CourseID     int64   `json:"courseId" db:"course_id"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty" db:"day_of_week"` // Nullable
	StartTime    *int    `json:"startTime,omitempty" db:"start_time"`  // Nullable
	EndTime      *int    `json:"endTime,omitempty" db:"end_time"`      // Nullable
	Location     *string `json:"location,omitempty" db:"location"`
	CourseFormat *string `json:"courseFormat,omitempty" db:"course_format"`
}

// Overlaps reports whether two sessions collide in time. Sessions with an
// unknown day or unknown times never collide; intervals are half-open, so
// back-to-back sessions and zero-duration sessions do not collide either.
func (s *ClassSession) Overlaps(other *ClassSession) bool {
	if s == nil || other == nil {
		return false
	}
	if s.DayOfWeek == nil || other.DayOfWeek == nil {
		return false
	}
	if *s.DayOfWeek != *other.DayOfWeek {
		return false
	}
	if s.StartTime == nil || s.EndTime == nil || other.StartTime == nil || other.EndTime == nil {
		return false
	}
	if *s.StartTime >= *s.EndTime || *other.StartTime >= *other.EndTime {
		return false
	}
	return *s.StartTime < *other.EndTime && *other.StartTime < *s.EndTime
}
