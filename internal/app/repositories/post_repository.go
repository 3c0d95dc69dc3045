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

// PostCursor marks where the previous page ended. Listing resumes strictly
// before (CreatedAt, ID) in the (created_at DESC, id DESC) ordering.
type PostCursor struct {
	CreatedAt time.Time
	ID        int64
}

// PostRepository handles post database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new post and returns its ID
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	sql, args, err := r.sb.Insert("posts").
		Columns("board_id", "user_id", "title", "content", "created_at").
		Values(post.BoardID, post.UserID, post.Title, post.Content, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create post SQL")
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &post.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("boardID", post.BoardID).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return id, nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	post := &models.Post{}
	err := r.db.QueryRow(ctx,
		"SELECT id, board_id, user_id, title, content, created_at FROM posts WHERE id = $1", id).
		Scan(&post.ID, &post.BoardID, &post.UserID, &post.Title, &post.Content, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post by ID: %w", err)
	}
	return post, nil
}

// ListByBoard retrieves up to limit posts of a board, newest first, resuming
// strictly after the cursor when one is given.
func (r *PostRepository) ListByBoard(ctx context.Context, boardID int64, cursor *PostCursor, limit int) ([]*models.Post, error) {
	builder := r.sb.Select("id", "board_id", "user_id", "title", "content", "created_at").
		From("posts").
		Where(squirrel.Eq{"board_id": boardID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))

	if cursor != nil {
		builder = builder.Where(squirrel.Expr("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list posts SQL")
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("boardID", boardID).Msg("Error executing list posts query")
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post := &models.Post{}
		if err := rows.Scan(&post.ID, &post.BoardID, &post.UserID, &post.Title, &post.Content, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// Update rewrites a post's title and content
func (r *PostRepository) Update(ctx context.Context, id int64, title, content string) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE posts SET title = $1, content = $2 WHERE id = $3", title, content, id)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing update post query")
		return fmt.Errorf("error updating post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// Delete removes a post; its comments cascade at the schema level
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}
