package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/repositories"
	"github.com/ezypuz/courseplanner/internal/app/services"
	"github.com/ezypuz/courseplanner/internal/middleware"
	"github.com/ezypuz/courseplanner/internal/pkg/helpers"
)

// CourseController handles course catalog operations
type CourseController struct {
	courseService services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// SearchCourses handles course catalog search
// @Summary Search courses
// @Description Searches the course catalog for a term, optionally filtered by a keyword over title and professor
// @Tags courses
// @Produce json
// @Param year query int true "Academic year"
// @Param semester query string true "Semester (SPRING, SUMMER, AUTUMN, WINTER)"
// @Param keyword query string false "Keyword matched against course title and professor"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid year or semester"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) SearchCourses(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	params := repositories.CourseSearchParams{
		AcademicYear: queryInt(ctx, "year", 0),
		Semester:     models.Semester(ctx.Query("semester")),
		Keyword:      ctx.Query("keyword"),
		Page:         page,
		PageSize:     pageSize,
	}

	result, err := c.courseService.SearchCourses(ctx.Request.Context(), params)
	if err != nil {
		c.logger.Warn().Err(err).
			Int("year", params.AcademicYear).
			Str("semester", string(params.Semester)).
			Msg("Course search failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: result,
	})
}

// GetCourse handles retrieving one course with its sessions
// @Summary Get course details
// @Description Retrieves a single course with its class sessions
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: course,
	})
}
