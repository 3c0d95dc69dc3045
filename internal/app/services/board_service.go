package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
)

// boardStore is the subset of BoardRepository the service depends on
type boardStore interface {
	Create(ctx context.Context, board *models.Board) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Board, error)
	GetAll(ctx context.Context) ([]*models.Board, error)
}

// BoardService defines the interface for board operations
type BoardService interface {
	CreateBoard(ctx context.Context, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	ListBoards(ctx context.Context) ([]dto.BoardResponse, error)
}

// boardServiceImpl implements the BoardService interface
type boardServiceImpl struct {
	boardRepo boardStore
	logger    zerolog.Logger
}

// NewBoardService creates a new board service instance
func NewBoardService(boardRepo boardStore, logger zerolog.Logger) BoardService {
	return &boardServiceImpl{
		boardRepo: boardRepo,
		logger:    logger,
	}
}

// CreateBoard creates a new board with a unique name
func (s *boardServiceImpl) CreateBoard(ctx context.Context, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.ErrBoardNameBlank
	}

	board := &models.Board{Name: req.Name}
	id, err := s.boardRepo.Create(ctx, board)
	if err != nil {
		return nil, err
	}
	board.ID = id

	s.logger.Info().Int64("boardID", id).Str("name", board.Name).Msg("Board created")

	resp := dto.FromBoard(board)
	return &resp, nil
}

// ListBoards lists all boards
func (s *boardServiceImpl) ListBoards(ctx context.Context) ([]dto.BoardResponse, error) {
	boards, err := s.boardRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.BoardResponse, 0, len(boards))
	for _, b := range boards {
		result = append(result, dto.FromBoard(b))
	}
	return result, nil
}
