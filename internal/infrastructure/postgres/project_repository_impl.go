package postgres

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

const projectColumns = `id, title, description, category, skills, persona_ids,
	date_start::text AS date_start, date_end::text AS date_end, demo_link, repo_link, image,
	highlight, visible, "order", collaborators, created_at, updated_at`

const projectNotFound = "Project not found"

type ProjectRepository struct {
	db *Gateway
}

func NewProjectRepository(db *Gateway) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func buildProjectList(f repository.ProjectFilter) (string, []any) {
	w := &clause{}
	if f.Visible != nil {
		w.add("visible = ?", *f.Visible)
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.SkillID != nil {
		w.add("? = ANY(skills)", *f.SkillID)
	}
	if f.PersonaID != nil {
		w.add("? = ANY(persona_ids)", *f.PersonaID)
	}
	sql := `SELECT ` + projectColumns + ` FROM projects` + w.where() +
		` ORDER BY "order" ASC NULLS LAST, id DESC`
	if f.Limit > 0 {
		sql += ` LIMIT ` + w.next(f.Limit)
	}
	if f.Offset > 0 {
		sql += ` OFFSET ` + w.next(f.Offset)
	}
	return sql, w.args
}

func (r *ProjectRepository) FindAll(ctx context.Context, f repository.ProjectFilter) ([]entity.Project, error) {
	sql, args := buildProjectList(f)
	out := []entity.Project{}
	if err := r.db.Execute(ctx, &out, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*entity.Project, error) {
	p := &entity.Project{}
	if err := r.db.ExecuteRequired(ctx, projectNotFound, p,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) FindByIDs(ctx context.Context, ids []int64) ([]entity.Project, error) {
	out := []entity.Project{}
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.Execute(ctx, &out, `SELECT `+projectColumns+` FROM projects WHERE id = ANY($1)
		ORDER BY "order" ASC NULLS LAST, id DESC`, ids)
	return out, err
}

func (r *ProjectRepository) Create(ctx context.Context, in entity.ProjectInput) (*entity.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &entity.Project{}
	err := r.db.ExecuteRequired(ctx, projectNotFound, p, `
		INSERT INTO projects
			(title, description, category, skills, persona_ids, date_start, date_end,
			 demo_link, repo_link, image, highlight, visible, "order", collaborators)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+projectColumns,
		in.Title, in.Description, in.Category, nonNil(in.Skills), nonNil(in.PersonaIDs),
		in.DateStart, in.DateEnd, in.DemoLink, in.RepoLink, in.Image, in.Highlight, in.Visible,
		in.Order, nonNil(in.Collaborators))
	if err != nil {
		return nil, err
	}
	return p, nil
}

func buildProjectUpdate(id int64, p entity.ProjectPatch) (string, []any, error) {
	if p.Skills.Set && len(p.Skills.Value) == 0 {
		return "", nil, apperror.Validation("Project must have at least one skill.")
	}
	s := &clause{}
	setPtr(s, "title = ?", p.Title)
	setOpt(s, "description = ?", p.Description)
	setPtr(s, "category = ?", p.Category)
	arrayOpt(s, "skills = ?", p.Skills)
	arrayOpt(s, "persona_ids = ?", p.PersonaIDs)
	setOpt(s, "date_start = ?::date", p.DateStart)
	setOpt(s, "date_end = ?::date", p.DateEnd)
	setOpt(s, "demo_link = ?", p.DemoLink)
	setOpt(s, "repo_link = ?", p.RepoLink)
	setOpt(s, "image = ?", p.Image)
	setPtr(s, "highlight = ?", p.Highlight)
	setPtr(s, "visible = ?", p.Visible)
	setOpt(s, `"order" = ?`, p.Order)
	arrayOpt(s, "collaborators = ?", p.Collaborators)
	if s.empty() {
		return "", nil, apperror.Validation("No updatable fields provided.")
	}
	sql := `UPDATE projects SET ` + s.set() + `, updated_at = NOW() WHERE id = ` + s.next(id) +
		` RETURNING ` + projectColumns
	return sql, s.args, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id int64, p entity.ProjectPatch) (*entity.Project, error) {
	sql, args, err := buildProjectUpdate(id, p)
	if err != nil {
		return nil, err
	}
	out := &entity.Project{}
	if err := r.db.ExecuteRequired(ctx, projectNotFound, out, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectRepository) Remove(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound(projectNotFound)
	}
	return nil
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
