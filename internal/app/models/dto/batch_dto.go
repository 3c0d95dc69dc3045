package dto

// ImportCoursesRequest represents a request to import the catalog for a term
type ImportCoursesRequest struct {
	Year     int    `json:"year" binding:"required,min=2000"`
	Semester string `json:"semester" binding:"required"`
}

// ImportResultResponse summarizes one catalog import run
type ImportResultResponse struct {
	TotalCount   int `json:"totalCount"`
	SuccessCount int `json:"successCount"`
	FailCount    int `json:"failCount"`
}
