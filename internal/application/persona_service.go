package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

// PersonaService keeps at most one persona active and mirrors each
// persona into the timeline.
type PersonaService struct {
	Repo     repo.PersonaRepository
	Tx       repo.Transactor
	Timeline TimelineMirror
	Logger   *logrus.Logger
}

func NewPersonaService(r repo.PersonaRepository, tx repo.Transactor, tl TimelineMirror, logger *logrus.Logger) *PersonaService {
	return &PersonaService{Repo: r, Tx: tx, Timeline: tl, Logger: logger}
}

// List returns every persona, or only the active one when publicView is set.
func (s *PersonaService) List(ctx context.Context, publicView bool, personaType string) ([]entity.Persona, error) {
	f := repo.PersonaFilter{Type: personaType}
	if publicView {
		active := true
		f.Active = &active
	}
	return s.Repo.FindAll(ctx, f)
}

func (s *PersonaService) Get(ctx context.Context, id int64) (*entity.Persona, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Persona not found.")
	}
	return p, nil
}

func (s *PersonaService) Create(ctx context.Context, in entity.PersonaInput) (*entity.Persona, error) {
	var created *entity.Persona
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if in.IsActive {
			if err := s.Repo.DeactivateAll(ctx, 0); err != nil {
				return err
			}
		}
		var err error
		created, err = s.Repo.Create(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, created)
	return created, nil
}

func (s *PersonaService) Update(ctx context.Context, id int64, p entity.PersonaPatch) (*entity.Persona, error) {
	var updated *entity.Persona
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if p.Activates() {
			if err := s.Repo.DeactivateAll(ctx, id); err != nil {
				return err
			}
		}
		var err error
		updated, err = s.Repo.Update(ctx, id, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, updated)
	return updated, nil
}

// SetActive makes id the only active persona.
func (s *PersonaService) SetActive(ctx context.Context, id int64) (*entity.Persona, error) {
	var active *entity.Persona
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Repo.DeactivateAll(ctx, id); err != nil {
			return err
		}
		var err error
		active, err = s.Repo.SetActive(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, active)
	return active, nil
}

func (s *PersonaService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Remove(ctx, id); err != nil {
		return err
	}
	dropMirror(ctx, s.Timeline, s.Logger, ProviderPersona, PersonaEventID(id))
	return nil
}

func (s *PersonaService) mirror(ctx context.Context, p *entity.Persona) {
	syncMirror(ctx, s.Timeline, s.Logger, SourcePersona, ProviderPersona, PersonaEventID(p.ID), p)
}
