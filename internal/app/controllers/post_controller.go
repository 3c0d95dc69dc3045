package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/app/repositories"
	"github.com/ezypuz/courseplanner/internal/app/services"
	"github.com/ezypuz/courseplanner/internal/middleware"
)

// PostController handles post operations
type PostController struct {
	postService services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// CreatePost handles post creation
// @Summary Create a post
// @Description Creates a new post on a board
// @Tags posts
// @Accept json
// @Produce json
// @Param boardId path int true "Board ID"
// @Param request body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or blank title"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Board not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /boards/{boardId}/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	boardID, ok := pathID(ctx, "boardId")
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create post payload")
		middleware.RespondBindingError(ctx, err)
		return
	}

	post, err := c.postService.CreatePost(ctx.Request.Context(), userID, boardID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("boardID", boardID).
		Int64("postID", post.ID).
		Msg("Post created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: post,
	})
}

// ListPosts handles cursor-based post listing
// @Summary List posts on a board
// @Description Lists posts newest first. Pass the nextCreatedAt and nextId values from the previous page to continue.
// @Tags posts
// @Produce json
// @Param boardId path int true "Board ID"
// @Param limit query int false "Page size (default 20)"
// @Param cursorCreatedAt query string false "Creation timestamp of the last post on the previous page (RFC 3339)"
// @Param cursorId query int false "ID of the last post on the previous page"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Posts retrieved"
// @Failure 400 {object} dto.ErrorResponse "Malformed cursor"
// @Failure 404 {object} dto.ErrorResponse "Board not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /boards/{boardId}/posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	boardID, ok := pathID(ctx, "boardId")
	if !ok {
		return
	}

	cursor, ok := parsePostCursor(ctx)
	if !ok {
		return
	}
	limit := queryInt(ctx, "limit", 0)

	posts, err := c.postService.ListPosts(ctx.Request.Context(), boardID, cursor, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: posts,
	})
}

// GetPost handles retrieving one post
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post retrieved"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{postId} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	post, err := c.postService.GetPost(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: post,
	})
}

// UpdatePost handles editing a post
// @Summary Update a post
// @Description Updates a post owned by the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Param postId path int true "Post ID"
// @Param request body dto.UpdatePostRequest true "Updated content"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or blank title"
// @Failure 403 {object} dto.ErrorResponse "Post belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{postId} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update post payload")
		middleware.RespondBindingError(ctx, err)
		return
	}

	post, err := c.postService.UpdatePost(ctx.Request.Context(), userID, postID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: post,
	})
}

// DeletePost handles deleting a post
// @Summary Delete a post
// @Description Deletes a post owned by the authenticated user along with its comments
// @Tags posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 204 "Post deleted"
// @Failure 403 {object} dto.ErrorResponse "Post belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{postId} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	if err := c.postService.DeletePost(ctx.Request.Context(), userID, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("postID", postID).Msg("Post deleted")
	ctx.Status(http.StatusNoContent)
}

// parsePostCursor reads the optional pagination cursor from the query string.
// Both parts must be present together; a half-formed cursor is a 400.
func parsePostCursor(ctx *gin.Context) (*repositories.PostCursor, bool) {
	rawCreatedAt := ctx.Query("cursorCreatedAt")
	rawID := ctx.Query("cursorId")
	if rawCreatedAt == "" && rawID == "" {
		return nil, true
	}

	createdAt, err := time.Parse(time.RFC3339Nano, rawCreatedAt)
	if err != nil {
		respondMalformedCursor(ctx)
		return nil, false
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		respondMalformedCursor(ctx)
		return nil, false
	}

	return &repositories.PostCursor{CreatedAt: createdAt, ID: id}, true
}

func respondMalformedCursor(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Malformed pagination cursor")
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
