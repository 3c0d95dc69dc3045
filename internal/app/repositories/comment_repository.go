package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
	"github.com/ezypuz/courseplanner/internal/pkg/logger"
)

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new comment and returns its ID
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "user_id", "content", "created_at").
		Values(comment.PostID, comment.UserID, comment.Content, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create comment SQL")
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &comment.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("postID", comment.PostID).Msg("Error executing create comment query")
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	return id, nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment := &models.Comment{}
	err := r.db.QueryRow(ctx,
		"SELECT id, post_id, user_id, content, created_at FROM comments WHERE id = $1", id).
		Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Content, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		logger.Error().Err(err).Int64("commentID", id).Msg("Error scanning comment row")
		return nil, fmt.Errorf("error getting comment by ID: %w", err)
	}
	return comment, nil
}

// ListByPost retrieves all comments of a post, oldest first
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, post_id, user_id, content, created_at FROM comments WHERE post_id = $1 ORDER BY created_at ASC, id ASC",
		postID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error executing list comments query")
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment := &models.Comment{}
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// Update rewrites a comment's content
func (r *CommentRepository) Update(ctx context.Context, id int64, content string) error {
	cmdTag, err := r.db.Exec(ctx, "UPDATE comments SET content = $1 WHERE id = $2", content, id)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error executing update comment query")
		return fmt.Errorf("error updating comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error executing delete comment query")
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}
