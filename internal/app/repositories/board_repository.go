package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
	"github.com/ezypuz/courseplanner/internal/pkg/dberrors"
	"github.com/ezypuz/courseplanner/internal/pkg/logger"
)

// BoardRepository handles board database operations
type BoardRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new board and returns its ID
func (r *BoardRepository) Create(ctx context.Context, board *models.Board) (int64, error) {
	sql, args, err := r.sb.Insert("boards").
		Columns("name").
		Values(board.Name).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create board SQL")
		return 0, fmt.Errorf("failed to build create board query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "boards_name_key") {
			return 0, apperrors.ErrBoardNameTaken
		}
		logger.Error().Err(err).Str("name", board.Name).Msg("Error executing create board query")
		return 0, fmt.Errorf("error creating board: %w", err)
	}

	return id, nil
}

// GetByID retrieves a board by ID
func (r *BoardRepository) GetByID(ctx context.Context, id int64) (*models.Board, error) {
	board := &models.Board{}
	err := r.db.QueryRow(ctx, "SELECT id, name FROM boards WHERE id = $1", id).Scan(&board.ID, &board.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBoardNotFound
		}
		logger.Error().Err(err).Int64("boardID", id).Msg("Error scanning board row")
		return nil, fmt.Errorf("error getting board by ID: %w", err)
	}
	return board, nil
}

// GetByName retrieves a board by its unique name
func (r *BoardRepository) GetByName(ctx context.Context, name string) (*models.Board, error) {
	board := &models.Board{}
	err := r.db.QueryRow(ctx, "SELECT id, name FROM boards WHERE name = $1", name).Scan(&board.ID, &board.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBoardNotFound
		}
		logger.Error().Err(err).Str("name", name).Msg("Error scanning board row")
		return nil, fmt.Errorf("error getting board by name: %w", err)
	}
	return board, nil
}

// GetAll retrieves all boards ordered by name
func (r *BoardRepository) GetAll(ctx context.Context) ([]*models.Board, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name FROM boards ORDER BY name ASC")
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list boards query")
		return nil, fmt.Errorf("error listing boards: %w", err)
	}
	defer rows.Close()

	boards := []*models.Board{}
	for rows.Next() {
		board := &models.Board{}
		if err := rows.Scan(&board.ID, &board.Name); err != nil {
			return nil, fmt.Errorf("error scanning board row: %w", err)
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating board rows: %w", err)
	}

	return boards, nil
}
