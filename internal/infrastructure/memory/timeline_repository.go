package memory

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

type TimelineRepository struct{ s *Store }

func (r *TimelineRepository) FindAll(_ context.Context, f repository.TimelineFilter) ([]entity.TimelineEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.TimelineEvent{}
	for _, ev := range r.s.timeline {
		switch {
		case f.Type != "" && ev.Type != f.Type,
			f.Visible != nil && ev.Visible != *f.Visible,
			f.Reviewed != nil && ev.Reviewed != *f.Reviewed,
			f.Automated != nil && ev.Automated != *f.Automated,
			f.SkillID != nil && !contains(ev.SkillIDs, *f.SkillID),
			f.PersonaID != nil && (ev.PersonaID == nil || *ev.PersonaID != *f.PersonaID),
			f.Provider != "" && (ev.Provider == nil || *ev.Provider != f.Provider),
			f.Origin != "" && ev.Origin != f.Origin:
			continue
		}
		out = append(out, ev)
	}
	// ISO dates compare correctly as strings.
	sortByOrder(out, func(ev entity.TimelineEvent) *int { return ev.Order },
		func(a, b entity.TimelineEvent) bool {
			if a.DateStart != b.DateStart {
				return a.DateStart > b.DateStart
			}
			return a.ID > b.ID
		})
	return out, nil
}

func (r *TimelineRepository) FindByID(_ context.Context, id int64) (*entity.TimelineEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ev, ok := r.s.timeline[id]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func (r *TimelineRepository) findByProviderEvent(provider, providerEventID string) (entity.TimelineEvent, bool) {
	for _, ev := range r.s.timeline {
		if ev.Provider != nil && ev.ProviderEventID != nil &&
			*ev.Provider == provider && *ev.ProviderEventID == providerEventID {
			return ev, true
		}
	}
	return entity.TimelineEvent{}, false
}

func (r *TimelineRepository) FindByProviderEvent(_ context.Context, provider, providerEventID string) (*entity.TimelineEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ev, ok := r.findByProviderEvent(provider, providerEventID)
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func fromInput(ev *entity.TimelineEvent, in entity.TimelineInput) {
	ev.Type, ev.Title, ev.DateStart, ev.DateEnd = in.Type, in.Title, in.DateStart, in.DateEnd
	ev.Description, ev.PersonaID, ev.SkillIDs = in.Description, in.PersonaID, cloneSlice(in.SkillIDs)
	ev.Icon, ev.ProofLink, ev.Source = in.Icon, in.ProofLink, in.Source
	ev.Provider, ev.ProviderEventID = in.Provider, in.ProviderEventID
	ev.SourceName, ev.SourceURL = in.SourceName, in.SourceURL
	ev.Visible, ev.Automated, ev.Reviewed = in.Visible, in.Automated, in.Reviewed
	ev.Order, ev.Origin = in.Order, in.Origin
}

func (r *TimelineRepository) conflicts(id int64, provider, providerEventID *string) bool {
	if provider == nil || providerEventID == nil {
		return false
	}
	other, ok := r.findByProviderEvent(*provider, *providerEventID)
	return ok && other.ID != id
}

func (r *TimelineRepository) Create(_ context.Context, in entity.TimelineInput) (*entity.TimelineEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.conflicts(0, in.Provider, in.ProviderEventID) {
		return nil, apperror.Conflict("A timeline event already exists for this provider event.")
	}
	now := r.s.now()
	ev := entity.TimelineEvent{ID: r.s.nextID("timeline"), CreatedAt: now, UpdatedAt: now}
	fromInput(&ev, in)
	r.s.timeline[ev.ID] = ev
	return &ev, nil
}

func (r *TimelineRepository) UpsertByProviderEvent(_ context.Context, in entity.TimelineInput) (*entity.TimelineEvent, error) {
	if in.Provider == nil || in.ProviderEventID == nil {
		return nil, apperror.Validation("Missing provider or provider_event_id.")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	ev, ok := r.findByProviderEvent(*in.Provider, *in.ProviderEventID)
	if !ok {
		ev = entity.TimelineEvent{ID: r.s.nextID("timeline"), CreatedAt: now}
	}
	fromInput(&ev, in)
	ev.UpdatedAt = now
	r.s.timeline[ev.ID] = ev
	return &ev, nil
}

func (r *TimelineRepository) Update(_ context.Context, id int64, in entity.TimelinePatch) (*entity.TimelineEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ev, ok := r.s.timeline[id]
	changed := false
	changed = applyPtr(&ev.Type, in.Type) || changed
	changed = applyPtr(&ev.Title, in.Title) || changed
	changed = applyPtr(&ev.DateStart, in.DateStart) || changed
	changed = applyOpt(&ev.DateEnd, in.DateEnd) || changed
	changed = applyOpt(&ev.Description, in.Description) || changed
	changed = applyOpt(&ev.PersonaID, in.PersonaID) || changed
	changed = applyArray(&ev.SkillIDs, in.SkillIDs) || changed
	changed = applyOpt(&ev.Icon, in.Icon) || changed
	changed = applyOpt(&ev.ProofLink, in.ProofLink) || changed
	changed = applyPtr(&ev.Source, in.Source) || changed
	changed = applyOpt(&ev.Provider, in.Provider) || changed
	changed = applyOpt(&ev.ProviderEventID, in.ProviderEventID) || changed
	changed = applyOpt(&ev.SourceName, in.SourceName) || changed
	changed = applyOpt(&ev.SourceURL, in.SourceURL) || changed
	changed = applyPtr(&ev.Visible, in.Visible) || changed
	changed = applyPtr(&ev.Automated, in.Automated) || changed
	changed = applyPtr(&ev.Reviewed, in.Reviewed) || changed
	changed = applyOpt(&ev.Order, in.Order) || changed
	if !changed {
		return nil, emptyPatch()
	}
	if !ok {
		return nil, apperror.NotFound("Timeline event not found.")
	}
	if r.conflicts(id, ev.Provider, ev.ProviderEventID) {
		return nil, apperror.Conflict("A timeline event already exists for this provider event.")
	}
	ev.UpdatedAt = r.s.now()
	r.s.timeline[id] = ev
	return &ev, nil
}

func (r *TimelineRepository) Remove(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.timeline[id]; !ok {
		return apperror.NotFound("Timeline event not found.")
	}
	delete(r.s.timeline, id)
	return nil
}

var _ repository.TimelineRepository = (*TimelineRepository)(nil)
