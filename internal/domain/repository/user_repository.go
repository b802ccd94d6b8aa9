package repository

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// GetByEmail and GetByID return (nil, nil) when no user matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	// Upsert creates the user, or when overwrite is set resets password,
	// role and active flag of an existing one. created reports an insert.
	Upsert(ctx context.Context, email, hashedPassword, role string, overwrite bool) (u *entity.User, created bool, err error)
}
