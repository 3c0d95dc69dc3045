package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/services"
	"github.com/ezypuz/courseplanner/internal/middleware"
)

// TimetableController handles timetable operations
type TimetableController struct {
	timetableService services.TimetableService
	logger           zerolog.Logger
}

// NewTimetableController creates a new TimetableController
func NewTimetableController(timetableService services.TimetableService, logger zerolog.Logger) *TimetableController {
	return &TimetableController{
		timetableService: timetableService,
		logger:           logger,
	}
}

// CreateTimetable handles timetable creation
// @Summary Create a timetable
// @Description Creates an empty timetable for the given academic term
// @Tags timetables
// @Accept json
// @Produce json
// @Param request body dto.CreateTimetableRequest true "Timetable information"
// @Success 201 {object} dto.APIResponse{data=dto.TimetableResponse} "Timetable created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or blank name"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetables [post]
func (c *TimetableController) CreateTimetable(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTimetableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create timetable payload")
		middleware.RespondBindingError(ctx, err)
		return
	}

	timetable, err := c.timetableService.CreateTimetable(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userID", userID).
		Int64("timetableID", timetable.ID).
		Msg("Timetable created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: timetable,
	})
}

// ListTimetables handles listing the caller's timetables
// @Summary List timetables
// @Description Lists every timetable owned by the authenticated user
// @Tags timetables
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.TimetableResponse} "Timetables retrieved"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetables [get]
func (c *TimetableController) ListTimetables(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	timetables, err := c.timetableService.ListTimetables(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: timetables,
	})
}

// GetTimetableDetail handles retrieving one timetable with its courses
// @Summary Get timetable details
// @Description Retrieves a timetable with its courses, their sessions and the total credits
// @Tags timetables
// @Produce json
// @Param timetableId path int true "Timetable ID"
// @Success 200 {object} dto.APIResponse{data=dto.TimetableDetailResponse} "Timetable retrieved"
// @Failure 403 {object} dto.ErrorResponse "Timetable belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Timetable not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetables/{timetableId} [get]
func (c *TimetableController) GetTimetableDetail(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	timetableID, ok := pathID(ctx, "timetableId")
	if !ok {
		return
	}

	detail, err := c.timetableService.GetTimetableDetail(ctx.Request.Context(), userID, timetableID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: detail,
	})
}

// RenameTimetable handles renaming a timetable
// @Summary Rename a timetable
// @Description Updates the name of a timetable owned by the authenticated user
// @Tags timetables
// @Accept json
// @Produce json
// @Param timetableId path int true "Timetable ID"
// @Param request body dto.RenameTimetableRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=dto.TimetableResponse} "Timetable renamed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or blank name"
// @Failure 403 {object} dto.ErrorResponse "Timetable belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Timetable not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetables/{timetableId} [patch]
func (c *TimetableController) RenameTimetable(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	timetableID, ok := pathID(ctx, "timetableId")
	if !ok {
		return
	}

	var req dto.RenameTimetableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid rename timetable payload")
		middleware.RespondBindingError(ctx, err)
		return
	}

	timetable, err := c.timetableService.RenameTimetable(ctx.Request.Context(), userID, timetableID, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: timetable,
	})
}

// DeleteTimetable handles deleting a timetable
// @Summary Delete a timetable
// @Description Deletes a timetable owned by the authenticated user along with its entries
// @Tags timetables
// @Produce json
// @Param timetableId path int true "Timetable ID"
// @Success 204 "Timetable deleted"
// @Failure 403 {object} dto.ErrorResponse "Timetable belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Timetable not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetables/{timetableId} [delete]
func (c *TimetableController) DeleteTimetable(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	timetableID, ok := pathID(ctx, "timetableId")
	if !ok {
		return
	}

	if err := c.timetableService.DeleteTimetable(ctx.Request.Context(), userID, timetableID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userID", userID).
		Int64("timetableID", timetableID).
		Msg("Timetable deleted")

	ctx.Status(http.StatusNoContent)
}

// AddCourse handles adding a course to a timetable
// @Summary Add a course to a timetable
// @Description Adds a course after checking for duplicates and session time conflicts, then returns the updated timetable
// @Tags timetables
// @Accept json
// @Produce json
// @Param timetableId path int true "Timetable ID"
// @Param request body dto.AddCourseRequest true "Course to add"
// @Success 200 {object} dto.APIResponse{data=dto.TimetableDetailResponse} "Course added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Timetable belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Timetable or course not found"
// @Failure 409 {object} dto.ErrorResponse "Course already added or session time conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetables/{timetableId}/courses [post]
func (c *TimetableController) AddCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	timetableID, ok := pathID(ctx, "timetableId")
	if !ok {
		return
	}

	var req dto.AddCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid add course payload")
		middleware.RespondBindingError(ctx, err)
		return
	}

	detail, err := c.timetableService.AddCourse(ctx.Request.Context(), userID, timetableID, req.CourseID)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("timetableID", timetableID).
			Int64("courseID", req.CourseID).
			Msg("Failed to add course to timetable")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("timetableID", timetableID).
		Int64("courseID", req.CourseID).
		Msg("Course added to timetable")

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: detail,
	})
}

// RemoveCourse handles removing a course from a timetable
// @Summary Remove a course from a timetable
// @Description Removes a course entry from a timetable owned by the authenticated user
// @Tags timetables
// @Produce json
// @Param timetableId path int true "Timetable ID"
// @Param courseId path int true "Course ID"
// @Success 204 "Course removed"
// @Failure 403 {object} dto.ErrorResponse "Timetable belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Timetable not found or course not in timetable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetables/{timetableId}/courses/{courseId} [delete]
func (c *TimetableController) RemoveCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	timetableID, ok := pathID(ctx, "timetableId")
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.timetableService.RemoveCourse(ctx.Request.Context(), userID, timetableID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("timetableID", timetableID).
		Int64("courseID", courseID).
		Msg("Course removed from timetable")

	ctx.Status(http.StatusNoContent)
}
