package postgres

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

const skillColumns = `id, name, category, level, years, active, superpower, persona_ids, icon,
	cert_link, project_links, "order", created_at, updated_at`

const skillNotFound = "Skill not found"

type SkillRepository struct {
	db *Gateway
}

func NewSkillRepository(db *Gateway) *SkillRepository {
	return &SkillRepository{db: db}
}

func buildSkillList(f repository.SkillFilter) (string, []any) {
	w := &clause{}
	if f.Active != nil {
		w.add("active = ?", *f.Active)
	}
	if f.Superpower != nil {
		w.add("superpower = ?", *f.Superpower)
	}
	if f.PersonaID != nil {
		w.add("? = ANY(persona_ids)", *f.PersonaID)
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.Level != "" {
		w.add("level = ?", f.Level)
	}
	return `SELECT ` + skillColumns + ` FROM skills` + w.where() +
		` ORDER BY "order" ASC NULLS LAST, id ASC`, w.args
}

func (r *SkillRepository) FindAll(ctx context.Context, f repository.SkillFilter) ([]entity.Skill, error) {
	sql, args := buildSkillList(f)
	out := []entity.Skill{}
	if err := r.db.Execute(ctx, &out, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SkillRepository) FindByID(ctx context.Context, id int64) (*entity.Skill, error) {
	s := &entity.Skill{}
	found, err := r.db.ExecuteOne(ctx, s, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
	if err != nil || !found {
		return nil, err
	}
	return s, nil
}

func (r *SkillRepository) FindByIDs(ctx context.Context, ids []int64) ([]entity.Skill, error) {
	out := []entity.Skill{}
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.Execute(ctx, &out, `SELECT `+skillColumns+` FROM skills WHERE id = ANY($1)
		ORDER BY "order" ASC NULLS LAST, id ASC`, ids)
	return out, err
}

func (r *SkillRepository) Create(ctx context.Context, in entity.SkillInput) (*entity.Skill, error) {
	s := &entity.Skill{}
	err := r.db.ExecuteRequired(ctx, skillNotFound, s, `
		INSERT INTO skills
			(name, category, level, years, active, superpower, persona_ids, icon, cert_link,
			 project_links, "order")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+skillColumns,
		in.Name, in.Category, in.Level, in.Years, in.Active, in.Superpower, nonNil(in.PersonaIDs),
		in.Icon, in.CertLink, nonNil(in.ProjectLinks), in.Order)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func buildSkillUpdate(id int64, p entity.SkillPatch) (string, []any, error) {
	s := &clause{}
	setPtr(s, "name = ?", p.Name)
	setPtr(s, "category = ?", p.Category)
	setPtr(s, "level = ?", p.Level)
	setPtr(s, "years = ?", p.Years)
	setPtr(s, "active = ?", p.Active)
	setPtr(s, "superpower = ?", p.Superpower)
	arrayOpt(s, "persona_ids = ?", p.PersonaIDs)
	setOpt(s, "icon = ?", p.Icon)
	setOpt(s, "cert_link = ?", p.CertLink)
	arrayOpt(s, "project_links = ?", p.ProjectLinks)
	setOpt(s, `"order" = ?`, p.Order)
	if s.empty() {
		return "", nil, apperror.Validation("No updatable fields provided.")
	}
	sql := `UPDATE skills SET ` + s.set() + `, updated_at = NOW() WHERE id = ` + s.next(id) +
		` RETURNING ` + skillColumns
	return sql, s.args, nil
}

func (r *SkillRepository) Update(ctx context.Context, id int64, p entity.SkillPatch) (*entity.Skill, error) {
	sql, args, err := buildSkillUpdate(id, p)
	if err != nil {
		return nil, err
	}
	out := &entity.Skill{}
	if err := r.db.ExecuteRequired(ctx, skillNotFound, out, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SkillRepository) Remove(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound(skillNotFound)
	}
	return nil
}

var _ repository.SkillRepository = (*SkillRepository)(nil)
