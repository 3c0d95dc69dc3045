package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/services"
	"github.com/ezypuz/courseplanner/internal/middleware"
)

// CommentController handles comment operations
type CommentController struct {
	commentService services.CommentService
	logger         zerolog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService services.CommentService, logger zerolog.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

// CreateComment handles comment creation
// @Summary Create a comment
// @Description Adds a comment to a post
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or blank content"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{postId}/comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create comment payload")
		middleware.RespondBindingError(ctx, err)
		return
	}

	comment, err := c.commentService.CreateComment(ctx.Request.Context(), userID, postID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: comment,
	})
}

// ListComments handles listing comments on a post
// @Summary List comments on a post
// @Description Lists comments oldest first
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments retrieved"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{postId}/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	comments, err := c.commentService.ListComments(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: comments,
	})
}

// UpdateComment handles editing a comment
// @Summary Update a comment
// @Description Updates a comment owned by the authenticated user
// @Tags comments
// @Accept json
// @Produce json
// @Param commentId path int true "Comment ID"
// @Param request body dto.UpdateCommentRequest true "Updated content"
// @Success 200 {object} dto.APIResponse{data=dto.CommentResponse} "Comment updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or blank content"
// @Failure 403 {object} dto.ErrorResponse "Comment belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{commentId} [put]
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	commentID, ok := pathID(ctx, "commentId")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update comment payload")
		middleware.RespondBindingError(ctx, err)
		return
	}

	comment, err := c.commentService.UpdateComment(ctx.Request.Context(), userID, commentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: comment,
	})
}

// DeleteComment handles deleting a comment
// @Summary Delete a comment
// @Description Deletes a comment owned by the authenticated user
// @Tags comments
// @Produce json
// @Param commentId path int true "Comment ID"
// @Success 204 "Comment deleted"
// @Failure 403 {object} dto.ErrorResponse "Comment belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{commentId} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	commentID, ok := pathID(ctx, "commentId")
	if !ok {
		return
	}

	if err := c.commentService.DeleteComment(ctx.Request.Context(), userID, commentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
