package postgres

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

const personaColumns = `id, title, type, period, summary, description, motivation, icon,
	accent_color, cta, is_active, availability, "order", created_at, updated_at`

const personaNotFound = "Persona not found."

type PersonaRepository struct {
	db *Gateway
}

func NewPersonaRepository(db *Gateway) *PersonaRepository {
	return &PersonaRepository{db: db}
}

func buildPersonaList(f repository.PersonaFilter) (string, []any) {
	w := &clause{}
	if f.Active != nil {
		w.add("is_active = ?", *f.Active)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	return `SELECT ` + personaColumns + ` FROM personas` + w.where() +
		` ORDER BY "order" ASC NULLS LAST, id ASC`, w.args
}

func (r *PersonaRepository) FindAll(ctx context.Context, f repository.PersonaFilter) ([]entity.Persona, error) {
	sql, args := buildPersonaList(f)
	out := []entity.Persona{}
	if err := r.db.Execute(ctx, &out, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PersonaRepository) FindByID(ctx context.Context, id int64) (*entity.Persona, error) {
	p := &entity.Persona{}
	found, err := r.db.ExecuteOne(ctx, p, `SELECT `+personaColumns+` FROM personas WHERE id = $1`, id)
	if err != nil || !found {
		return nil, err
	}
	return p, nil
}

func (r *PersonaRepository) FindByIDs(ctx context.Context, ids []int64) ([]entity.Persona, error) {
	out := []entity.Persona{}
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.Execute(ctx, &out, `SELECT `+personaColumns+` FROM personas WHERE id = ANY($1)
		ORDER BY "order" ASC NULLS LAST, id ASC`, ids)
	return out, err
}

func (r *PersonaRepository) Create(ctx context.Context, in entity.PersonaInput) (*entity.Persona, error) {
	p := &entity.Persona{}
	err := r.db.ExecuteRequired(ctx, personaNotFound, p, `
		INSERT INTO personas
			(title, type, period, summary, description, motivation, icon, accent_color, cta,
			 is_active, availability, "order")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+personaColumns,
		in.Title, in.Type, in.Period, in.Summary, in.Description, in.Motivation, in.Icon,
		in.AccentColor, in.CTA, in.IsActive, in.Availability, in.Order)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func buildPersonaUpdate(id int64, p entity.PersonaPatch) (string, []any, error) {
	s := &clause{}
	setPtr(s, "title = ?", p.Title)
	setPtr(s, "type = ?", p.Type)
	setOpt(s, "period = ?", p.Period)
	setOpt(s, "summary = ?", p.Summary)
	setOpt(s, "description = ?", p.Description)
	setOpt(s, "motivation = ?", p.Motivation)
	setOpt(s, "icon = ?", p.Icon)
	setOpt(s, "accent_color = ?", p.AccentColor)
	setOpt(s, "cta = ?", p.CTA)
	setPtr(s, "is_active = ?", p.IsActive)
	setPtr(s, "availability = ?", p.Availability)
	setOpt(s, `"order" = ?`, p.Order)
	if s.empty() {
		return "", nil, apperror.Validation("No updatable fields provided.")
	}
	sql := `UPDATE personas SET ` + s.set() + `, updated_at = NOW() WHERE id = ` + s.next(id) +
		` RETURNING ` + personaColumns
	return sql, s.args, nil
}

func (r *PersonaRepository) Update(ctx context.Context, id int64, p entity.PersonaPatch) (*entity.Persona, error) {
	sql, args, err := buildPersonaUpdate(id, p)
	if err != nil {
		return nil, err
	}
	out := &entity.Persona{}
	if err := r.db.ExecuteRequired(ctx, personaNotFound, out, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PersonaRepository) Remove(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM personas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound(personaNotFound)
	}
	return nil
}

func (r *PersonaRepository) DeactivateAll(ctx context.Context, exceptID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE personas SET is_active = FALSE, updated_at = NOW()
		WHERE is_active = TRUE AND id <> $1`, exceptID)
	return err
}

func (r *PersonaRepository) SetActive(ctx context.Context, id int64) (*entity.Persona, error) {
	p := &entity.Persona{}
	err := r.db.ExecuteRequired(ctx, personaNotFound, p, `
		UPDATE personas SET is_active = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING `+personaColumns, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

var _ repository.PersonaRepository = (*PersonaRepository)(nil)
