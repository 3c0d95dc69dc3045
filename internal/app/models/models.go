package models

// Semester represents an academic semester
type Semester string

// Semester constants
const (
	SemesterSpring Semester = "SPRING"
	SemesterSummer Semester = "SUMMER"
	SemesterAutumn Semester = "AUTUMN"
	SemesterWinter Semester = "WINTER"
)

// IsValid reports whether s is one of the known semesters
func (s Semester) IsValid() bool {
	switch s {
	case SemesterSpring, SemesterSummer, SemesterAutumn, SemesterWinter:
		return true
	}
	return false
}
