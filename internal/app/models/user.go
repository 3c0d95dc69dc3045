package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id"`                // Unique identifier for the user
	Username  string    `json:"username" db:"username"`    // Login name, unique
	Password  string    `json:"-" db:"password"`           // Hashed password (excluded from JSON)
	IsAdmin   bool      `json:"isAdmin" db:"is_admin"`     // Whether the user may run catalog imports
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // Timestamp when the user was created
}
