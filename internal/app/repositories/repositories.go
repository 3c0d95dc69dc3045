package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	CourseRepository    *CourseRepository
	TimetableRepository *TimetableRepository
	BoardRepository     *BoardRepository
	PostRepository      *PostRepository
	CommentRepository   *CommentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		CourseRepository:    NewCourseRepository(db),
		TimetableRepository: NewTimetableRepository(db),
		BoardRepository:     NewBoardRepository(db),
		PostRepository:      NewPostRepository(db),
		CommentRepository:   NewCommentRepository(db),
	}
}
