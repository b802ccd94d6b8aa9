package memory

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

type PersonaRepository struct{ s *Store }

func sortPersonas(rows []entity.Persona) {
	sortByOrder(rows, func(p entity.Persona) *int { return p.Order },
		func(a, b entity.Persona) bool { return a.ID < b.ID })
}

func (r *PersonaRepository) FindAll(_ context.Context, f repository.PersonaFilter) ([]entity.Persona, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Persona{}
	for _, p := range r.s.personas {
		if f.Active != nil && p.IsActive != *f.Active {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		out = append(out, p)
	}
	sortPersonas(out)
	return out, nil
}

func (r *PersonaRepository) FindByID(_ context.Context, id int64) (*entity.Persona, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.personas[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PersonaRepository) FindByIDs(_ context.Context, ids []int64) ([]entity.Persona, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Persona{}
	seen := map[int64]bool{}
	for _, id := range ids {
		if p, ok := r.s.personas[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, p)
		}
	}
	sortPersonas(out)
	return out, nil
}

func (r *PersonaRepository) Create(_ context.Context, in entity.PersonaInput) (*entity.Persona, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	p := entity.Persona{
		ID: r.s.nextID("personas"), Title: in.Title, Type: in.Type, Period: in.Period,
		Summary: in.Summary, Description: in.Description, Motivation: in.Motivation,
		Icon: in.Icon, AccentColor: in.AccentColor, CTA: in.CTA, IsActive: in.IsActive,
		Availability: in.Availability, Order: in.Order, CreatedAt: now, UpdatedAt: now,
	}
	r.s.personas[p.ID] = p
	return &p, nil
}

func (r *PersonaRepository) Update(_ context.Context, id int64, in entity.PersonaPatch) (*entity.Persona, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.personas[id]
	changed := false
	changed = applyPtr(&p.Title, in.Title) || changed
	changed = applyPtr(&p.Type, in.Type) || changed
	changed = applyOpt(&p.Period, in.Period) || changed
	changed = applyOpt(&p.Summary, in.Summary) || changed
	changed = applyOpt(&p.Description, in.Description) || changed
	changed = applyOpt(&p.Motivation, in.Motivation) || changed
	changed = applyOpt(&p.Icon, in.Icon) || changed
	changed = applyOpt(&p.AccentColor, in.AccentColor) || changed
	changed = applyOpt(&p.CTA, in.CTA) || changed
	changed = applyPtr(&p.IsActive, in.IsActive) || changed
	changed = applyPtr(&p.Availability, in.Availability) || changed
	changed = applyOpt(&p.Order, in.Order) || changed
	if !changed {
		return nil, emptyPatch()
	}
	if !ok {
		return nil, apperror.NotFound("Persona not found.")
	}
	p.UpdatedAt = r.s.now()
	r.s.personas[id] = p
	return &p, nil
}

func (r *PersonaRepository) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.personas[id]; !ok {
		return apperror.NotFound("Persona not found.")
	}
	delete(r.s.personas, id)
	for tid, ev := range r.s.timeline {
		if ev.PersonaID != nil && *ev.PersonaID == id {
			ev.PersonaID = nil
			r.s.timeline[tid] = ev
		}
	}
	return nil
}

func (r *PersonaRepository) DeactivateAll(_ context.Context, exceptID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.personas {
		if id != exceptID && p.IsActive {
			p.IsActive = false
			p.UpdatedAt = r.s.now()
			r.s.personas[id] = p
		}
	}
	return nil
}

func (r *PersonaRepository) SetActive(_ context.Context, id int64) (*entity.Persona, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.personas[id]
	if !ok {
		return nil, apperror.NotFound("Persona not found.")
	}
	p.IsActive = true
	p.UpdatedAt = r.s.now()
	r.s.personas[id] = p
	return &p, nil
}

var _ repository.PersonaRepository = (*PersonaRepository)(nil)
