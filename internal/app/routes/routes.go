package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ezypuz/courseplanner/internal/app/controllers"
	"github.com/ezypuz/courseplanner/internal/app/models/dto"
	"github.com/ezypuz/courseplanner/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	timetableController *controllers.TimetableController,
	boardController *controllers.BoardController,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	batchController *controllers.BatchController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Course catalog (read only, replaced wholesale by batch imports)
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.SearchCourses)
			courses.GET("/:courseId", courseController.GetCourse)
		}

		// Timetables (owner scoped)
		timetables := authenticated.Group("/timetables")
		{
			timetables.POST("", timetableController.CreateTimetable)
			timetables.GET("", timetableController.ListTimetables)
			timetables.GET("/:timetableId", timetableController.GetTimetableDetail)
			timetables.PATCH("/:timetableId", timetableController.RenameTimetable)
			timetables.DELETE("/:timetableId", timetableController.DeleteTimetable)
			timetables.POST("/:timetableId/courses", timetableController.AddCourse)
			timetables.DELETE("/:timetableId/courses/:courseId", timetableController.RemoveCourse)
		}

		// Discussion boards and posts
		boards := authenticated.Group("/boards")
		{
			boards.GET("", boardController.ListBoards)
			boards.POST("", boardController.CreateBoard)
			boards.GET("/:boardId/posts", postController.ListPosts)
			boards.POST("/:boardId/posts", postController.CreatePost)
		}

		posts := authenticated.Group("/posts")
		{
			posts.GET("/:postId", postController.GetPost)
			posts.PUT("/:postId", postController.UpdatePost)
			posts.DELETE("/:postId", postController.DeletePost)
			posts.GET("/:postId/comments", commentController.ListComments)
			posts.POST("/:postId/comments", commentController.CreateComment)
		}

		comments := authenticated.Group("/comments")
		{
			comments.PUT("/:commentId", commentController.UpdateComment)
			comments.DELETE("/:commentId", commentController.DeleteComment)
		}

		// Admin-only batch operations
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.POST("/batch/import-courses", batchController.ImportCourses)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
