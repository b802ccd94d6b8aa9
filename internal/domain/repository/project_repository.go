package repository

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
)

type ProjectFilter struct {
	Visible   *bool
	Category  string
	SkillID   *int64
	PersonaID *int64
	Limit     int
	Offset    int
}

type ProjectRepository interface {
	FindAll(ctx context.Context, f ProjectFilter) ([]entity.Project, error)
	// FindByID fails with a NotFound error when the project does not exist.
	FindByID(ctx context.Context, id int64) (*entity.Project, error)
	FindByIDs(ctx context.Context, ids []int64) ([]entity.Project, error)
	Create(ctx context.Context, in entity.ProjectInput) (*entity.Project, error)
	Update(ctx context.Context, id int64, p entity.ProjectPatch) (*entity.Project, error)
	Remove(ctx context.Context, id int64) error
}
