package repository

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
)

type SkillFilter struct {
	Active     *bool
	Superpower *bool
	PersonaID  *int64
	Category   string
	Level      string
}

type SkillRepository interface {
	FindAll(ctx context.Context, f SkillFilter) ([]entity.Skill, error)
	FindByID(ctx context.Context, id int64) (*entity.Skill, error)
	FindByIDs(ctx context.Context, ids []int64) ([]entity.Skill, error)
	Create(ctx context.Context, in entity.SkillInput) (*entity.Skill, error)
	Update(ctx context.Context, id int64, p entity.SkillPatch) (*entity.Skill, error)
	Remove(ctx context.Context, id int64) error
}
