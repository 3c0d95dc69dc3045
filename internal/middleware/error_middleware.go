package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Controllers call
// it for any error a service returns; the mapping mirrors the sentinel
// taxonomy in the apperrors package.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 400: validation failures
	case apperrors.Is(err, apperrors.ErrTimetableNameBlank,
		apperrors.ErrPostTitleBlank,
		apperrors.ErrBoardNameBlank,
		apperrors.ErrCommentBlank,
		apperrors.ErrUsernameBlank,
		apperrors.ErrPasswordTooWeak,
		apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
		return

	// 401: authentication failures
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
		return
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
		return
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})
		return

	// 403: ownership denials
	case apperrors.Is(err, apperrors.ErrTimetableReadForbidden,
		apperrors.ErrTimetableUpdateForbidden,
		apperrors.ErrTimetableModifyForbidden,
		apperrors.ErrPostUpdateForbidden,
		apperrors.ErrPostDeleteForbidden,
		apperrors.ErrCommentUpdateForbidden,
		apperrors.ErrCommentDeleteForbidden):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error()),
		})
		return

	// 404: missing resources
	case apperrors.Is(err, apperrors.ErrTimetableNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrCourseNotInTimetable,
		apperrors.ErrBoardNotFound,
		apperrors.ErrPostNotFound,
		apperrors.ErrCommentNotFound,
		apperrors.ErrUserNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()),
		})
		return

	// 409: conflicts
	case apperrors.Is(err, apperrors.ErrCourseAlreadyAdded,
		apperrors.ErrCourseTimeConflict,
		apperrors.ErrUsernameTaken,
		apperrors.ErrBoardNameTaken):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error()),
		})
		return

	// 502: catalog import upstream failures
	case apperrors.Is(err, apperrors.ErrImportDownloadFailed, apperrors.ErrImportParseFailed):
		c.JSON(502, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, err.Error()),
		})
		return

	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
		return
	}
}
