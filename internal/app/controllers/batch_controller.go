package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/batch"
	"github.com/ezypuz/courseplanner/internal/middleware"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

// BatchController handles administrative catalog import operations
type BatchController struct {
	importService batch.ImportService
	logger        zerolog.Logger
}

// NewBatchController creates a new BatchController
func NewBatchController(importService batch.ImportService, logger zerolog.Logger) *BatchController {
	return &BatchController{
		importService: importService,
		logger:        logger,
	}
}

// ImportCourses handles a full catalog import for one academic term
// @Summary Import the course catalog
// @Description Downloads the course workbook for a term from the registration site and replaces the stored catalog for that term. Admin only.
// @Tags batch
// @Accept json
// @Produce json
// @Param request body dto.ImportCoursesRequest true "Term to import"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResultResponse} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Invalid year or semester"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin privileges required"
// @Failure 502 {object} dto.ErrorResponse "Upstream download or parse failure"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/batch/import-courses [post]
func (c *BatchController) ImportCourses(ctx *gin.Context) {
	var req dto.ImportCoursesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid import request payload")
		middleware.RespondBindingError(ctx, err)
		return
	}

	semester := models.Semester(req.Semester)
	if !semester.IsValid() {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("unknown semester: "+req.Semester))
		return
	}

	c.logger.Info().
		Int("year", req.Year).
		Str("semester", req.Semester).
		Msg("Catalog import started")

	result, err := c.importService.ImportCourses(ctx.Request.Context(), req.Year, semester)
	if err != nil {
		c.logger.Error().Err(err).
			Int("year", req.Year).
			Str("semester", req.Semester).
			Msg("Catalog import failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int("total", result.TotalCount).
		Int("success", result.SuccessCount).
		Int("failed", result.FailCount).
		Msg("Catalog import finished")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: result,
	})
}
