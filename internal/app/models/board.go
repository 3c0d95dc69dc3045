package models

import (
	"time"
)

// Board is a named container for posts.
type Board struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"` // Unique
}

// Post belongs to a board and is owned by its author.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	BoardID   int64     `json:"boardId" db:"board_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Comment belongs to a post and is owned by its author.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
