package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/go-portfolio-api/internal/domain/repository"
)

// ProjectIndex is a full-text index over projects.
type ProjectIndex interface {
	Index(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id int64) error
	// Search returns matching project ids, best match first.
	Search(ctx context.Context, q string, size int) ([]int64, error)
}

// ProjectView is a project with its skill and persona references resolved.
type ProjectView struct {
	entity.Project
	SkillNames []entity.SkillRef `json:"skill_names"`
	Personas   []entity.Persona  `json:"personas"`
}

type ProjectService struct {
	Repo     repo.ProjectRepository
	Skills   repo.SkillRepository
	Personas repo.PersonaRepository
	Timeline TimelineMirror
	Index    ProjectIndex
	Logger   *logrus.Logger
}

func NewProjectService(r repo.ProjectRepository, skills repo.SkillRepository, personas repo.PersonaRepository,
	tl TimelineMirror, index ProjectIndex, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Repo: r, Skills: skills, Personas: personas, Timeline: tl, Index: index, Logger: logger}
}

func (s *ProjectService) List(ctx context.Context, f repo.ProjectFilter) ([]ProjectView, error) {
	projects, err := s.Repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, projects)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*ProjectView, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, []entity.Project{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Search looks projects up in the index, or by a title and description
// substring match when there is no index. Only visible projects match.
func (s *ProjectService) Search(ctx context.Context, q string, size int) ([]ProjectView, error) {
	q = strings.TrimSpace(q)
	if size <= 0 || size > 50 {
		size = 10
	}
	visible := true
	if q == "" {
		return s.List(ctx, repo.ProjectFilter{Visible: &visible, Limit: size})
	}
	if s.Index == nil {
		return s.scan(ctx, q, size)
	}
	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		s.Logger.WithError(err).WithField("q", q).Warn("project search failed, scanning instead")
		return s.scan(ctx, q, size)
	}
	found, err := s.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entity.Project, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	ordered := make([]entity.Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && p.Visible {
			ordered = append(ordered, p)
		}
	}
	return s.enrich(ctx, ordered)
}

func (s *ProjectService) scan(ctx context.Context, q string, size int) ([]ProjectView, error) {
	visible := true
	all, err := s.Repo.FindAll(ctx, repo.ProjectFilter{Visible: &visible})
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := []entity.Project{}
	for _, p := range all {
		text := strings.ToLower(p.Title + " " + p.Category)
		if p.Description != nil {
			text += " " + strings.ToLower(*p.Description)
		}
		if strings.Contains(text, needle) {
			out = append(out, p)
			if len(out) == size {
				break
			}
		}
	}
	return s.enrich(ctx, out)
}

func (s *ProjectService) Create(ctx context.Context, in entity.ProjectInput) (*entity.Project, error) {
	p, err := s.Repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, p)
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id int64, patch entity.ProjectPatch) (*entity.Project, error) {
	p, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, p)
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Remove(ctx, id); err != nil {
		return err
	}
	dropMirror(ctx, s.Timeline, s.Logger, ProviderProject, ProjectEventID(id))
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("project_id", id).Warn("project unindex failed")
		}
	}
	return nil
}

func (s *ProjectService) afterWrite(ctx context.Context, p *entity.Project) {
	syncMirror(ctx, s.Timeline, s.Logger, SourceProject, ProviderProject, ProjectEventID(p.ID), p)
	if s.Index != nil {
		if err := s.Index.Index(ctx, p); err != nil {
			s.Logger.WithError(err).WithField("project_id", p.ID).Warn("project index failed")
		}
	}
}

// enrich resolves skill names and personas with one lookup per table.
// Dangling references are skipped.
func (s *ProjectService) enrich(ctx context.Context, projects []entity.Project) ([]ProjectView, error) {
	var skillIDs, personaIDs []int64
	for _, p := range projects {
		skillIDs = append(skillIDs, p.Skills...)
		personaIDs = append(personaIDs, p.PersonaIDs...)
	}
	skills, err := s.Skills.FindByIDs(ctx, skillIDs)
	if err != nil {
		return nil, err
	}
	personas, err := s.Personas.FindByIDs(ctx, personaIDs)
	if err != nil {
		return nil, err
	}
	skillByID := make(map[int64]entity.Skill, len(skills))
	for _, sk := range skills {
		skillByID[sk.ID] = sk
	}
	personaByID := make(map[int64]entity.Persona, len(personas))
	for _, p := range personas {
		personaByID[p.ID] = p
	}

	out := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		v := ProjectView{Project: p, SkillNames: []entity.SkillRef{}, Personas: []entity.Persona{}}
		for _, id := range p.Skills {
			if sk, ok := skillByID[id]; ok {
				v.SkillNames = append(v.SkillNames, entity.SkillRef{ID: sk.ID, Name: sk.Name})
			}
		}
		for _, id := range p.PersonaIDs {
			if ps, ok := personaByID[id]; ok {
				v.Personas = append(v.Personas, ps)
			}
		}
		out = append(out, v)
	}
	return out, nil
}
