package memory

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) byEmail(email string) (entity.User, bool) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, true
		}
	}
	return entity.User{}, false
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.byEmail(email)
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) TouchLastLogin(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		now := r.s.now()
		u.LastLogin = &now
		r.s.users[id] = u
	}
	return nil
}

func (r *UserRepository) Upsert(_ context.Context, email, hashedPassword, role string, overwrite bool) (*entity.User, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.byEmail(email); ok {
		if overwrite {
			u.HashedPassword, u.Role, u.IsActive = hashedPassword, role, true
			r.s.users[u.ID] = u
		}
		return &u, false, nil
	}
	u := entity.User{
		ID: r.s.nextID("users"), Email: email, HashedPassword: hashedPassword,
		Role: role, IsActive: true, CreatedAt: r.s.now(),
	}
	r.s.users[u.ID] = u
	return &u, true, nil
}

// SetActive flips the account flag; used to exercise disabled logins.
func (r *UserRepository) SetActive(id int64, active bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.IsActive = active
		r.s.users[id] = u
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
