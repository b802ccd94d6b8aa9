package postgres

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
)

const userColumns = `id, email, hashed_password, role, is_active, created_at, last_login`

// UserRepository implements the UserRepository interface for PostgreSQL.
type UserRepository struct {
	db *Gateway
}

func NewUserRepository(db *Gateway) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	found, err := r.db.ExecuteOne(ctx, u, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil || !found {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u := &entity.User{}
	found, err := r.db.ExecuteOne(ctx, u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil || !found {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	return err
}

// Upsert inserts the user. On an existing email it either leaves the row
// alone or, with overwrite, resets its credentials. xmax = 0 marks an insert.
func (r *UserRepository) Upsert(ctx context.Context, email, hashedPassword, role string, overwrite bool) (*entity.User, bool, error) {
	var row struct {
		entity.User
		Inserted bool `db:"inserted"`
	}
	if overwrite {
		err := r.db.ExecuteRequired(ctx, "User not found", &row, `
			INSERT INTO users (email, hashed_password, role, is_active)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (email) DO UPDATE SET
				hashed_password = EXCLUDED.hashed_password,
				role = EXCLUDED.role,
				is_active = TRUE
			RETURNING `+userColumns+`, (xmax = 0) AS inserted`, email, hashedPassword, role)
		if err != nil {
			return nil, false, err
		}
		return &row.User, row.Inserted, nil
	}

	found, err := r.db.ExecuteOne(ctx, &row, `
		INSERT INTO users (email, hashed_password, role, is_active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO NOTHING
		RETURNING `+userColumns+`, TRUE AS inserted`, email, hashedPassword, role)
	if err != nil {
		return nil, false, err
	}
	if found {
		return &row.User, true, nil
	}
	u, err := r.GetByEmail(ctx, email)
	return u, false, err
}

var _ repository.UserRepository = (*UserRepository)(nil)
