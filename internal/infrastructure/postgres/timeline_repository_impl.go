package postgres

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

const timelineColumns = `id, type, title, date_start::text AS date_start, date_end::text AS date_end,
	description, persona_id, skill_ids, icon, proof_link, source, provider, provider_event_id,
	source_name, source_url, visible, automated, reviewed, "order", origin, created_at, updated_at`

const timelineNotFound = "Timeline event not found."

// timelineInsert is shared by Create and UpsertByProviderEvent.
const timelineInsert = `
	INSERT INTO timeline
		(type, title, date_start, date_end, description, persona_id, skill_ids, icon, proof_link,
		 source, provider, provider_event_id, source_name, source_url, visible, automated,
		 reviewed, "order", origin)
	VALUES ($1, $2, $3::date, $4::date, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		$17, $18, $19)`

type TimelineRepository struct {
	db *Gateway
}

func NewTimelineRepository(db *Gateway) *TimelineRepository {
	return &TimelineRepository{db: db}
}

func timelineArgs(in entity.TimelineInput) []any {
	return []any{
		in.Type, in.Title, in.DateStart, in.DateEnd, in.Description, in.PersonaID,
		nonNil(in.SkillIDs), in.Icon, in.ProofLink, in.Source, in.Provider, in.ProviderEventID,
		in.SourceName, in.SourceURL, in.Visible, in.Automated, in.Reviewed, in.Order, in.Origin,
	}
}

func buildTimelineList(f repository.TimelineFilter) (string, []any) {
	w := &clause{}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.Visible != nil {
		w.add("visible = ?", *f.Visible)
	}
	if f.Reviewed != nil {
		w.add("reviewed = ?", *f.Reviewed)
	}
	if f.Automated != nil {
		w.add("automated = ?", *f.Automated)
	}
	if f.SkillID != nil {
		w.add("? = ANY(skill_ids)", *f.SkillID)
	}
	if f.PersonaID != nil {
		w.add("persona_id = ?", *f.PersonaID)
	}
	if f.Provider != "" {
		w.add("provider = ?", f.Provider)
	}
	if f.Origin != "" {
		w.add("origin = ?", f.Origin)
	}
	return `SELECT ` + timelineColumns + ` FROM timeline` + w.where() +
		` ORDER BY "order" ASC NULLS LAST, date_start DESC, id DESC`, w.args
}

func (r *TimelineRepository) FindAll(ctx context.Context, f repository.TimelineFilter) ([]entity.TimelineEvent, error) {
	sql, args := buildTimelineList(f)
	out := []entity.TimelineEvent{}
	if err := r.db.Execute(ctx, &out, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TimelineRepository) FindByID(ctx context.Context, id int64) (*entity.TimelineEvent, error) {
	ev := &entity.TimelineEvent{}
	found, err := r.db.ExecuteOne(ctx, ev, `SELECT `+timelineColumns+` FROM timeline WHERE id = $1`, id)
	if err != nil || !found {
		return nil, err
	}
	return ev, nil
}

func (r *TimelineRepository) FindByProviderEvent(ctx context.Context, provider, providerEventID string) (*entity.TimelineEvent, error) {
	ev := &entity.TimelineEvent{}
	found, err := r.db.ExecuteOne(ctx, ev, `SELECT `+timelineColumns+` FROM timeline
		WHERE provider = $1 AND provider_event_id = $2`, provider, providerEventID)
	if err != nil || !found {
		return nil, err
	}
	return ev, nil
}

func (r *TimelineRepository) Create(ctx context.Context, in entity.TimelineInput) (*entity.TimelineEvent, error) {
	ev := &entity.TimelineEvent{}
	err := r.db.ExecuteRequired(ctx, timelineNotFound, ev,
		timelineInsert+` RETURNING `+timelineColumns, timelineArgs(in)...)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// UpsertByProviderEvent relies on the unique index over
// (provider, provider_event_id); the conflicting row keeps its id.
func (r *TimelineRepository) UpsertByProviderEvent(ctx context.Context, in entity.TimelineInput) (*entity.TimelineEvent, error) {
	if in.Provider == nil || in.ProviderEventID == nil {
		return nil, apperror.Validation("Missing provider or provider_event_id.")
	}
	ev := &entity.TimelineEvent{}
	err := r.db.ExecuteRequired(ctx, timelineNotFound, ev, timelineInsert+`
		ON CONFLICT (provider, provider_event_id) DO UPDATE SET
			type = EXCLUDED.type,
			title = EXCLUDED.title,
			date_start = EXCLUDED.date_start,
			date_end = EXCLUDED.date_end,
			description = EXCLUDED.description,
			persona_id = EXCLUDED.persona_id,
			skill_ids = EXCLUDED.skill_ids,
			icon = EXCLUDED.icon,
			proof_link = EXCLUDED.proof_link,
			source = EXCLUDED.source,
			source_name = EXCLUDED.source_name,
			source_url = EXCLUDED.source_url,
			visible = EXCLUDED.visible,
			automated = EXCLUDED.automated,
			reviewed = EXCLUDED.reviewed,
			"order" = EXCLUDED."order",
			origin = EXCLUDED.origin,
			updated_at = NOW()
		RETURNING `+timelineColumns, timelineArgs(in)...)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func buildTimelineUpdate(id int64, p entity.TimelinePatch) (string, []any, error) {
	s := &clause{}
	setPtr(s, "type = ?", p.Type)
	setPtr(s, "title = ?", p.Title)
	setPtr(s, "date_start = ?::date", p.DateStart)
	setOpt(s, "date_end = ?::date", p.DateEnd)
	setOpt(s, "description = ?", p.Description)
	setOpt(s, "persona_id = ?", p.PersonaID)
	arrayOpt(s, "skill_ids = ?", p.SkillIDs)
	setOpt(s, "icon = ?", p.Icon)
	setOpt(s, "proof_link = ?", p.ProofLink)
	setPtr(s, "source = ?", p.Source)
	setOpt(s, "provider = ?", p.Provider)
	setOpt(s, "provider_event_id = ?", p.ProviderEventID)
	setOpt(s, "source_name = ?", p.SourceName)
	setOpt(s, "source_url = ?", p.SourceURL)
	setPtr(s, "visible = ?", p.Visible)
	setPtr(s, "automated = ?", p.Automated)
	setPtr(s, "reviewed = ?", p.Reviewed)
	setOpt(s, `"order" = ?`, p.Order)
	if s.empty() {
		return "", nil, apperror.Validation("No updatable fields provided.")
	}
	sql := `UPDATE timeline SET ` + s.set() + `, updated_at = NOW() WHERE id = ` + s.next(id) +
		` RETURNING ` + timelineColumns
	return sql, s.args, nil
}

func (r *TimelineRepository) Update(ctx context.Context, id int64, p entity.TimelinePatch) (*entity.TimelineEvent, error) {
	sql, args, err := buildTimelineUpdate(id, p)
	if err != nil {
		return nil, err
	}
	out := &entity.TimelineEvent{}
	if err := r.db.ExecuteRequired(ctx, timelineNotFound, out, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TimelineRepository) Remove(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM timeline WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound(timelineNotFound)
	}
	return nil
}

var _ repository.TimelineRepository = (*TimelineRepository)(nil)
