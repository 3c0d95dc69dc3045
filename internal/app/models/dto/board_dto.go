package dto

import (
	"time"

	"github.com/ezypuz/courseplanner/internal/app/models"
)

// CreateBoardRequest represents a request to create a board
type CreateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

// BoardResponse represents a board
type BoardResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreatePostRequest represents a request to create a post under a board
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// UpdatePostRequest represents a request to update a post
type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// PostResponse represents a post
type PostResponse struct {
	ID        int64     `json:"id"`
	BoardID   int64     `json:"boardId"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostListResponse represents one page of a cursor-paged post listing.
// NextCreatedAt and NextID are the cursor for the following page; both are
// nil when no further page exists.
type PostListResponse struct {
	Posts         []PostResponse `json:"posts"`
	NextCreatedAt *time.Time     `json:"nextCreatedAt,omitempty"`
	NextID        *int64         `json:"nextId,omitempty"`
}

// CreateCommentRequest represents a request to comment on a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateCommentRequest represents a request to update a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse represents a comment
type CommentResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromBoard converts a model.Board to a BoardResponse
func FromBoard(board *models.Board) BoardResponse {
	if board == nil {
		return BoardResponse{}
	}
	return BoardResponse{ID: board.ID, Name: board.Name}
}

// FromPost converts a model.Post to a PostResponse
func FromPost(post *models.Post) PostResponse {
	if post == nil {
		return PostResponse{}
	}
	return PostResponse{
		ID:        post.ID,
		BoardID:   post.BoardID,
		UserID:    post.UserID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}
}

// FromComment converts a model.Comment to a CommentResponse
func FromComment(comment *models.Comment) CommentResponse {
	if comment == nil {
		return CommentResponse{}
	}
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
