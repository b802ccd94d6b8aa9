package application

import (
	"context"
	"testing"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

func analyst() entity.PersonaInput {
	return entity.PersonaInput{
		Title: "Analyst", Type: entity.PersonaCurrent, IsActive: true,
		Icon: ptr("x"), CTA: ptr("hire me"), Availability: entity.AvailabilityOpen,
	}
}

func activeCount(t *testing.T, s *PersonaService) []entity.Persona {
	t.Helper()
	active, err := s.List(context.Background(), true, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return active
}

func TestSingleActivePersona(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.personas.Create(ctx, analyst())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := activeCount(t, f.personas); len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("public = %+v", got)
	}

	in := analyst()
	in.Title = "Architect"
	second, _ := f.personas.Create(ctx, in)
	got := activeCount(t, f.personas)
	if len(got) != 1 || got[0].ID != second.ID {
		t.Fatalf("public = %+v", got)
	}
	reloaded, _ := f.personas.Get(ctx, first.ID)
	if reloaded.IsActive {
		t.Fatal("first persona still active")
	}

	if _, err := f.personas.Update(ctx, first.ID, entity.PersonaPatch{IsActive: ptr(true)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := activeCount(t, f.personas); len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("after update public = %+v", got)
	}

	if _, err := f.personas.SetActive(ctx, second.ID); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if got := activeCount(t, f.personas); len(got) != 1 || got[0].ID != second.ID {
		t.Fatalf("after set-active public = %+v", got)
	}
}

func TestSetActiveMissingKeepsCurrent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	current, err := f.personas.Create(ctx, analyst())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.personas.SetActive(ctx, 999); !apperror.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	got := activeCount(t, f.personas)
	if len(got) != 1 || got[0].ID != current.ID {
		t.Fatalf("active = %+v, want only %d", got, current.ID)
	}
}

func TestPersonaMirrorLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, _ := f.personas.Create(ctx, analyst())
	other, _ := f.skills.Create(ctx, entity.SkillInput{Name: "Go", Category: "Backend", Level: "Expert"})

	ev, err := f.timeline.FindByProviderEvent(ctx, ProviderPersona, PersonaEventID(p.ID))
	if err != nil || ev.Title != "Analyst" {
		t.Fatalf("mirror = %+v, %v", ev, err)
	}

	if _, err := f.personas.Update(ctx, p.ID, entity.PersonaPatch{Title: ptr("Lead")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	ev2, _ := f.timeline.FindByProviderEvent(ctx, ProviderPersona, PersonaEventID(p.ID))
	if ev2.ID != ev.ID || ev2.Title != "Lead" {
		t.Fatalf("mirror after update = %+v", ev2)
	}

	if err := f.personas.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows := f.allTimeline()
	if len(rows) != 1 || *rows[0].ProviderEventID != SkillEventID(other.ID) {
		t.Fatalf("rows after delete = %+v", rows)
	}
}

func TestPersonaSurvivesMirrorFailure(t *testing.T) {
	st := newFixture().store
	m := &failingMirror{}
	s := NewPersonaService(st.Personas(), st, m, helpers.NewDiscardLogger())
	ctx := context.Background()

	p, err := s.Create(ctx, analyst())
	if err != nil || p == nil {
		t.Fatalf("create failed with broken mirror: %v", err)
	}
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete failed with broken mirror: %v", err)
	}
	if m.calls != 2 {
		t.Fatalf("mirror calls = %d", m.calls)
	}
}

func TestPersonaNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.personas.Get(context.Background(), 99)
	if err == nil || err.Error() != "Persona not found." {
		t.Fatalf("err = %v", err)
	}
}
