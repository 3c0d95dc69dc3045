package models

// Course represents one catalog entry for a given year and semester.
type Course struct {
	ID            int64    `json:"id" db:"id"`
	AcademicYear  int      `json:"academicYear" db:"academic_year"`
	Semester      Semester `json:"semester" db:"semester"`
	Division      *string  `json:"division,omitempty" db:"division"` // Nullable
	College       *string  `json:"college,omitempty" db:"college"`
	Department    *string  `json:"department,omitempty" db:"department"`
	CourseType    *string  `json:"courseType,omitempty" db:"course_type"`
	Grade         *int     `json:"grade,omitempty" db:"grade"`
	CourseNumber  string   `json:"courseNumber" db:"course_number"`
	LectureNumber string   `json:"lectureNumber" db:"lecture_number"`
	Title         string   `json:"title" db:"title"`
	Subtitle      *string  `json:"subtitle,omitempty" db:"subtitle"`
	Credits       *float64 `json:"credits,omitempty" db:"credits"` // Nullable
	ClassTime     *string  `json:"classTime,omitempty" db:"class_time"`
	LabTime       *string  `json:"labTime,omitempty" db:"lab_time"`
	Professor     *string  `json:"professor,omitempty" db:"professor"`

	PreRegistrationCount            *int `json:"preRegistrationCount,omitempty" db:"pre_registration_count"`
	PreRegistrationCountNonFreshman *int `json:"preRegistrationCountNonFreshman,omitempty" db:"pre_registration_count_for_non_freshman"`
	PreRegistrationCountFreshman    *int `json:"preRegistrationCountFreshman,omitempty" db:"pre_registration_count_for_freshman"`
	Quota                           *int `json:"quota,omitempty" db:"quota"`
	NonFreshmanQuota                *int `json:"nonFreshmanQuota,omitempty" db:"nonfreshman_quota"`
	RegistrationCount               *int `json:"registrationCount,omitempty" db:"registration_count"`

	Remark   *string `json:"remark,omitempty" db:"remark"`
	Language *string `json:"language,omitempty" db:"language"`
	Status   *string `json:"status,omitempty" db:"status"`

	// Relations (populated when needed)
	Sessions []*ClassSession `json:"sessions,omitempty"`
}
