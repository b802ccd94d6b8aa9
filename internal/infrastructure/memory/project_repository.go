package memory

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

type ProjectRepository struct{ s *Store }

func sortProjects(rows []entity.Project) {
	sortByOrder(rows, func(p entity.Project) *int { return p.Order },
		func(a, b entity.Project) bool { return a.ID > b.ID })
}

func (r *ProjectRepository) FindAll(_ context.Context, f repository.ProjectFilter) ([]entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Project{}
	for _, p := range r.s.projects {
		switch {
		case f.Visible != nil && p.Visible != *f.Visible,
			f.Category != "" && p.Category != f.Category,
			f.SkillID != nil && !contains(p.Skills, *f.SkillID),
			f.PersonaID != nil && !contains(p.PersonaIDs, *f.PersonaID):
			continue
		}
		out = append(out, p)
	}
	sortProjects(out)
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []entity.Project{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id int64) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, apperror.NotFound("Project not found")
	}
	return &p, nil
}

func (r *ProjectRepository) FindByIDs(_ context.Context, ids []int64) ([]entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Project{}
	seen := map[int64]bool{}
	for _, id := range ids {
		if p, ok := r.s.projects[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, p)
		}
	}
	sortProjects(out)
	return out, nil
}

func (r *ProjectRepository) Create(_ context.Context, in entity.ProjectInput) (*entity.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	p := entity.Project{
		ID: r.s.nextID("projects"), Title: in.Title, Description: in.Description,
		Category: in.Category, Skills: cloneSlice(in.Skills), PersonaIDs: cloneSlice(in.PersonaIDs),
		DateStart: in.DateStart, DateEnd: in.DateEnd, DemoLink: in.DemoLink, RepoLink: in.RepoLink,
		Image: in.Image, Highlight: in.Highlight, Visible: in.Visible, Order: in.Order,
		Collaborators: cloneSlice(in.Collaborators), CreatedAt: now, UpdatedAt: now,
	}
	r.s.projects[p.ID] = p
	return &p, nil
}

func (r *ProjectRepository) Update(_ context.Context, id int64, in entity.ProjectPatch) (*entity.Project, error) {
	if in.Skills.Set && len(in.Skills.Value) == 0 {
		return nil, apperror.Validation("Project must have at least one skill.")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	changed := false
	changed = applyPtr(&p.Title, in.Title) || changed
	changed = applyOpt(&p.Description, in.Description) || changed
	changed = applyPtr(&p.Category, in.Category) || changed
	changed = applyArray(&p.Skills, in.Skills) || changed
	changed = applyArray(&p.PersonaIDs, in.PersonaIDs) || changed
	changed = applyOpt(&p.DateStart, in.DateStart) || changed
	changed = applyOpt(&p.DateEnd, in.DateEnd) || changed
	changed = applyOpt(&p.DemoLink, in.DemoLink) || changed
	changed = applyOpt(&p.RepoLink, in.RepoLink) || changed
	changed = applyOpt(&p.Image, in.Image) || changed
	changed = applyPtr(&p.Highlight, in.Highlight) || changed
	changed = applyPtr(&p.Visible, in.Visible) || changed
	changed = applyOpt(&p.Order, in.Order) || changed
	changed = applyArray(&p.Collaborators, in.Collaborators) || changed
	if !changed {
		return nil, emptyPatch()
	}
	if !ok {
		return nil, apperror.NotFound("Project not found")
	}
	p.UpdatedAt = r.s.now()
	r.s.projects[id] = p
	return &p, nil
}

func (r *ProjectRepository) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return apperror.NotFound("Project not found")
	}
	delete(r.s.projects, id)
	return nil
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
