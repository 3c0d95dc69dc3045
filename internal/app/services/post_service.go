package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/repositories"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

// postStore is the subset of PostRepository the service depends on
type postStore interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	ListByBoard(ctx context.Context, boardID int64, cursor *repositories.PostCursor, limit int) ([]*models.Post, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}

const defaultPostPageSize = 20

// PostService defines the interface for post operations
type PostService interface {
	CreatePost(ctx context.Context, userID, boardID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPost(ctx context.Context, postID int64) (*dto.PostResponse, error)
	ListPosts(ctx context.Context, boardID int64, cursor *repositories.PostCursor, limit int) (*dto.PostListResponse, error)
	UpdatePost(ctx context.Context, userID, postID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, userID, postID int64) error
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	postRepo  postStore
	boardRepo boardStore
	logger    zerolog.Logger
}

// NewPostService creates a new post service instance
func NewPostService(postRepo postStore, boardRepo boardStore, logger zerolog.Logger) PostService {
	return &postServiceImpl{
		postRepo:  postRepo,
		boardRepo: boardRepo,
		logger:    logger,
	}
}

// CreatePost creates a post under a board
func (s *postServiceImpl) CreatePost(ctx context.Context, userID, boardID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.ErrPostTitleBlank
	}

	if _, err := s.boardRepo.GetByID(ctx, boardID); err != nil {
		return nil, err
	}

	post := &models.Post{
		BoardID: boardID,
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}

	id, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = id

	s.logger.Debug().Int64("postID", id).Int64("boardID", boardID).Msg("Post created")

	resp := dto.FromPost(post)
	return &resp, nil
}

// GetPost retrieves one post
func (s *postServiceImpl) GetPost(ctx context.Context, postID int64) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromPost(post)
	return &resp, nil
}

// ListPosts returns one cursor page of a board's posts, newest first.
// The response carries the cursor of the next page while a full page came back.
func (s *postServiceImpl) ListPosts(ctx context.Context, boardID int64, cursor *repositories.PostCursor, limit int) (*dto.PostListResponse, error) {
	if _, err := s.boardRepo.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultPostPageSize
	}

	posts, err := s.postRepo.ListByBoard(ctx, boardID, cursor, limit)
	if err != nil {
		return nil, err
	}

	result := &dto.PostListResponse{
		Posts: make([]dto.PostResponse, 0, len(posts)),
	}
	for _, p := range posts {
		result.Posts = append(result.Posts, dto.FromPost(p))
	}

	if len(posts) == limit {
		last := posts[len(posts)-1]
		createdAt := last.CreatedAt
		id := last.ID
		result.NextCreatedAt = &createdAt
		result.NextID = &id
	}

	return result, nil
}

// UpdatePost rewrites a post's title and content. Only the author may update;
// existence is checked before ownership.
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, postID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.ErrPostTitleBlank
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, apperrors.ErrPostUpdateForbidden
	}

	if err := s.postRepo.Update(ctx, postID, req.Title, req.Content); err != nil {
		return nil, err
	}
	post.Title = req.Title
	post.Content = req.Content

	resp := dto.FromPost(post)
	return &resp, nil
}

// DeletePost removes a post. Only the author may delete.
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperrors.ErrPostDeleteForbidden
	}

	return s.postRepo.Delete(ctx, postID)
}
