package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

type SkillService struct {
	Repo     repo.SkillRepository
	Tx       repo.Transactor
	Timeline TimelineMirror
	Logger   *logrus.Logger
}

func NewSkillService(r repo.SkillRepository, tx repo.Transactor, tl TimelineMirror, logger *logrus.Logger) *SkillService {
	return &SkillService{Repo: r, Tx: tx, Timeline: tl, Logger: logger}
}

// SkillOrder is one entry of a reorder request.
type SkillOrder struct {
	ID    int64 `json:"id" binding:"required,gt=0"`
	Order *int  `json:"order"`
}

func (s *SkillService) List(ctx context.Context, f repo.SkillFilter) ([]entity.Skill, error) {
	return s.Repo.FindAll(ctx, f)
}

func (s *SkillService) Get(ctx context.Context, id int64) (*entity.Skill, error) {
	sk, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sk == nil {
		return nil, apperror.NotFound("Skill not found")
	}
	return sk, nil
}

func (s *SkillService) Create(ctx context.Context, in entity.SkillInput) (*entity.Skill, error) {
	sk, err := s.Repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, sk)
	return sk, nil
}

func (s *SkillService) Update(ctx context.Context, id int64, p entity.SkillPatch) (*entity.Skill, error) {
	sk, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, sk)
	return sk, nil
}

// Reorder writes the "order" of several skills in one transaction.
func (s *SkillService) Reorder(ctx context.Context, items []SkillOrder) ([]entity.Skill, error) {
	if len(items) == 0 {
		return nil, apperror.Validation("No updatable fields provided.")
	}
	out := make([]entity.Skill, 0, len(items))
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, it := range items {
			order := entity.Null[int]()
			if it.Order != nil {
				order = entity.Some(*it.Order)
			}
			sk, err := s.Repo.Update(ctx, it.ID, entity.SkillPatch{Order: order})
			if err != nil {
				return err
			}
			out = append(out, *sk)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i := range out {
		s.mirror(ctx, &out[i])
	}
	return out, nil
}

func (s *SkillService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Remove(ctx, id); err != nil {
		return err
	}
	dropMirror(ctx, s.Timeline, s.Logger, ProviderSkill, SkillEventID(id))
	return nil
}

func (s *SkillService) mirror(ctx context.Context, sk *entity.Skill) {
	syncMirror(ctx, s.Timeline, s.Logger, SourceSkill, ProviderSkill, SkillEventID(sk.ID), sk)
}
