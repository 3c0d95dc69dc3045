package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/repositories"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
	"github.com/ezypuz/courseplanner/internal/pkg/helpers"
)

// CourseService defines the interface for catalog search operations
type CourseService interface {
	SearchCourses(ctx context.Context, params repositories.CourseSearchParams) (*dto.CourseListResponse, error)
	GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// SearchCourses returns one page of catalog hits for a term
func (s *courseServiceImpl) SearchCourses(ctx context.Context, params repositories.CourseSearchParams) (*dto.CourseListResponse, error) {
	if !params.Semester.IsValid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown semester")
	}
	if params.Page < 1 {
		params.Page = helpers.DefaultPage
	}
	if params.PageSize <= 0 || params.PageSize > helpers.MaxPageSize {
		params.PageSize = helpers.DefaultPageSize
	}

	courses, totalCount, err := s.courseRepo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	result := &dto.CourseListResponse{
		Courses:    make([]dto.CourseResponse, 0, len(courses)),
		Pagination: helpers.NewPaginationInfo(totalCount, params.Page, params.PageSize),
	}
	for _, c := range courses {
		result.Courses = append(result.Courses, dto.FromCourse(c))
	}
	return result, nil
}

// GetCourse returns one catalog entry with its sessions
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromCourse(course)
	return &resp, nil
}
