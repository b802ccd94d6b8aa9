package entity

import (
	"time"
)

const RoleAdmin = "admin"

// User is an account allowed to sign in to the admin console.
// HashedPassword holds a bcrypt hash and never leaves the service.
type User struct {
	ID             int64      `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	HashedPassword string     `db:"hashed_password" json:"-"`
	Role           string     `db:"role" json:"role"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	LastLogin      *time.Time `db:"last_login" json:"last_login"`
}
