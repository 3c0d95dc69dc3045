package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

// commentStore is the subset of CommentRepository the service depends on
type commentStore interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	Update(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	CreateComment(ctx context.Context, userID, postID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, postID int64) ([]dto.CommentResponse, error)
	UpdateComment(ctx context.Context, userID, commentID int64, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userID, commentID int64) error
}

// commentServiceImpl implements the CommentService interface
type commentServiceImpl struct {
	commentRepo commentStore
	postRepo    postStore
	logger      zerolog.Logger
}

// NewCommentService creates a new comment service instance
func NewCommentService(commentRepo commentStore, postRepo postStore, logger zerolog.Logger) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		logger:      logger,
	}
}

// CreateComment adds a comment to a post
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID, postID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.ErrCommentBlank
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}

	id, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id

	s.logger.Debug().Int64("commentID", id).Int64("postID", postID).Msg("Comment created")

	resp := dto.FromComment(comment)
	return &resp, nil
}

// ListComments lists a post's comments, oldest first
func (s *commentServiceImpl) ListComments(ctx context.Context, postID int64) ([]dto.CommentResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, dto.FromComment(c))
	}
	return result, nil
}

// UpdateComment rewrites a comment. Only the author may update; existence is
// checked before ownership.
func (s *commentServiceImpl) UpdateComment(ctx context.Context, userID, commentID int64, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.ErrCommentBlank
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, apperrors.ErrCommentUpdateForbidden
	}

	if err := s.commentRepo.Update(ctx, commentID, req.Content); err != nil {
		return nil, err
	}
	comment.Content = req.Content

	resp := dto.FromComment(comment)
	return &resp, nil
}

// DeleteComment removes a comment. Only the author may delete.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return apperrors.ErrCommentDeleteForbidden
	}

	return s.commentRepo.Delete(ctx, commentID)
}
