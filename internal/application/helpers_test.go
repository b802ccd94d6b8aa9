package application

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store    *memory.Store
	timeline *TimelineService
	personas *PersonaService
	skills   *SkillService
	projects *ProjectService
}

func newFixture() *fixture {
	st := memory.NewStore()
	log := helpers.NewDiscardLogger()
	tl := NewTimelineService(st.Timeline(), st, log)
	tl.Now = func() time.Time { return fixedNow }
	return &fixture{
		store:    st,
		timeline: tl,
		personas: NewPersonaService(st.Personas(), st, tl, log),
		skills:   NewSkillService(st.Skills(), st, tl, log),
		projects: NewProjectService(st.Projects(), st.Skills(), st.Personas(), tl, nil, log),
	}
}

func (f *fixture) allTimeline() []entity.TimelineEvent {
	out, _ := f.timeline.List(context.Background(), repo.TimelineFilter{})
	return out
}

// failingMirror stands in for a timeline that is down.
type failingMirror struct{ calls int }

func (m *failingMirror) Upsert(context.Context, string, any) (*entity.TimelineEvent, error) {
	m.calls++
	return nil, errors.New("timeline unavailable")
}

func (m *failingMirror) RemoveMirror(context.Context, string, string) error {
	m.calls++
	return errors.New("timeline unavailable")
}
