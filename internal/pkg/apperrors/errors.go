package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// User errors
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameBlank   = errors.New("username cannot be blank")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
)

// Timetable errors
var (
	ErrTimetableNotFound        = errors.New("timetable not found")
	ErrTimetableNameBlank       = errors.New("timetable name cannot be blank")
	ErrTimetableReadForbidden   = errors.New("no permission to read this timetable")
	ErrTimetableUpdateForbidden = errors.New("no permission to update this timetable")
	ErrTimetableModifyForbidden = errors.New("no permission to modify this timetable")
)

// Course errors
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseAlreadyAdded   = errors.New("course is already in the timetable")
	ErrCourseTimeConflict   = errors.New("course sessions overlap an existing entry")
	ErrCourseNotInTimetable = errors.New("course is not in the timetable")
)

// Board errors
var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrBoardNameBlank = errors.New("board name cannot be blank")
	ErrBoardNameTaken = errors.New("board with this name already exists")
)

// Post errors
var (
	ErrPostNotFound        = errors.New("post not found")
	ErrPostTitleBlank      = errors.New("post title cannot be blank")
	ErrPostUpdateForbidden = errors.New("no permission to update this post")
	ErrPostDeleteForbidden = errors.New("no permission to delete this post")
)

// Comment errors
var (
	ErrCommentNotFound        = errors.New("comment not found")
	ErrCommentBlank           = errors.New("comment content cannot be blank")
	ErrCommentUpdateForbidden = errors.New("no permission to update this comment")
	ErrCommentDeleteForbidden = errors.New("no permission to delete this comment")
)

// Catalog import errors
var (
	ErrImportDownloadFailed = errors.New("failed to download course workbook")
	ErrImportParseFailed    = errors.New("failed to parse course workbook")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
