package repository

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
)

type PersonaFilter struct {
	Active *bool
	Type   string
}

type PersonaRepository interface {
	FindAll(ctx context.Context, f PersonaFilter) ([]entity.Persona, error)
	// FindByID returns (nil, nil) when the persona does not exist.
	FindByID(ctx context.Context, id int64) (*entity.Persona, error)
	FindByIDs(ctx context.Context, ids []int64) ([]entity.Persona, error)
	Create(ctx context.Context, in entity.PersonaInput) (*entity.Persona, error)
	Update(ctx context.Context, id int64, p entity.PersonaPatch) (*entity.Persona, error)
	Remove(ctx context.Context, id int64) error
	// DeactivateAll clears is_active on every persona except exceptID (0 = none).
	DeactivateAll(ctx context.Context, exceptID int64) error
	SetActive(ctx context.Context, id int64) (*entity.Persona, error)
}
