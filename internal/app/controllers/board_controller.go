package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/services"
	"github.com/ezypuz/courseplanner/internal/middleware"
)

// BoardController handles board operations
type BoardController struct {
	boardService services.BoardService
	logger       zerolog.Logger
}

// NewBoardController creates a new BoardController
func NewBoardController(boardService services.BoardService, logger zerolog.Logger) *BoardController {
	return &BoardController{
		boardService: boardService,
		logger:       logger,
	}
}

// CreateBoard handles board creation
// @Summary Create a board
// @Description Creates a new discussion board with a unique name
// @Tags boards
// @Accept json
// @Produce json
// @Param request body dto.CreateBoardRequest true "Board information"
// @Success 201 {object} dto.APIResponse{data=dto.BoardResponse} "Board created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or blank name"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 409 {object} dto.ErrorResponse "Board name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /boards [post]
func (c *BoardController) CreateBoard(ctx *gin.Context) {
	var req dto.CreateBoardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create board payload")
		middleware.RespondBindingError(ctx, err)
		return
	}

	board, err := c.boardService.CreateBoard(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("boardID", board.ID).
		Str("name", board.Name).
		Msg("Board created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: board,
	})
}

// ListBoards handles listing all boards
// @Summary List boards
// @Description Lists every discussion board
// @Tags boards
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.BoardResponse} "Boards retrieved"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /boards [get]
func (c *BoardController) ListBoards(ctx *gin.Context) {
	boards, err := c.boardService.ListBoards(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: boards,
	})
}
