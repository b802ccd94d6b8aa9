package memory

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

type SkillRepository struct{ s *Store }

func sortSkills(rows []entity.Skill) {
	sortByOrder(rows, func(s entity.Skill) *int { return s.Order },
		func(a, b entity.Skill) bool { return a.ID < b.ID })
}

func (r *SkillRepository) FindAll(_ context.Context, f repository.SkillFilter) ([]entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Skill{}
	for _, sk := range r.s.skills {
		switch {
		case f.Active != nil && sk.Active != *f.Active,
			f.Superpower != nil && sk.Superpower != *f.Superpower,
			f.PersonaID != nil && !contains(sk.PersonaIDs, *f.PersonaID),
			f.Category != "" && sk.Category != f.Category,
			f.Level != "" && sk.Level != f.Level:
			continue
		}
		out = append(out, sk)
	}
	sortSkills(out)
	return out, nil
}

func (r *SkillRepository) FindByID(_ context.Context, id int64) (*entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sk, ok := r.s.skills[id]
	if !ok {
		return nil, nil
	}
	return &sk, nil
}

func (r *SkillRepository) FindByIDs(_ context.Context, ids []int64) ([]entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Skill{}
	seen := map[int64]bool{}
	for _, id := range ids {
		if sk, ok := r.s.skills[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, sk)
		}
	}
	sortSkills(out)
	return out, nil
}

func (r *SkillRepository) Create(_ context.Context, in entity.SkillInput) (*entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	sk := entity.Skill{
		ID: r.s.nextID("skills"), Name: in.Name, Category: in.Category, Level: in.Level,
		Years: in.Years, Active: in.Active, Superpower: in.Superpower,
		PersonaIDs: cloneSlice(in.PersonaIDs), Icon: in.Icon, CertLink: in.CertLink,
		ProjectLinks: cloneSlice(in.ProjectLinks), Order: in.Order, CreatedAt: now, UpdatedAt: now,
	}
	r.s.skills[sk.ID] = sk
	return &sk, nil
}

func (r *SkillRepository) Update(_ context.Context, id int64, in entity.SkillPatch) (*entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sk, ok := r.s.skills[id]
	changed := false
	changed = applyPtr(&sk.Name, in.Name) || changed
	changed = applyPtr(&sk.Category, in.Category) || changed
	changed = applyPtr(&sk.Level, in.Level) || changed
	changed = applyPtr(&sk.Years, in.Years) || changed
	changed = applyPtr(&sk.Active, in.Active) || changed
	changed = applyPtr(&sk.Superpower, in.Superpower) || changed
	changed = applyArray(&sk.PersonaIDs, in.PersonaIDs) || changed
	changed = applyOpt(&sk.Icon, in.Icon) || changed
	changed = applyOpt(&sk.CertLink, in.CertLink) || changed
	changed = applyArray(&sk.ProjectLinks, in.ProjectLinks) || changed
	changed = applyOpt(&sk.Order, in.Order) || changed
	if !changed {
		return nil, emptyPatch()
	}
	if !ok {
		return nil, apperror.NotFound("Skill not found")
	}
	sk.UpdatedAt = r.s.now()
	r.s.skills[id] = sk
	return &sk, nil
}

func (r *SkillRepository) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.skills[id]; !ok {
		return apperror.NotFound("Skill not found")
	}
	delete(r.s.skills, id)
	return nil
}

var _ repository.SkillRepository = (*SkillRepository)(nil)
