package application

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

func projectInput(skills ...int64) entity.ProjectInput {
	return entity.ProjectInput{
		Title: "Folio", Category: "Web", Image: ptr("/storage/projects/1-1.png"),
		Skills: skills, Visible: true, DateStart: ptr("2024-01-15"),
	}
}

func TestProjectRequiresSkill(t *testing.T) {
	f := newFixture()
	_, err := f.projects.Create(context.Background(), projectInput())
	if !apperror.IsValidation(err) || err.Error() != "Project must have at least one skill." {
		t.Fatalf("err = %v", err)
	}
	in := projectInput(1)
	in.Image = nil
	_, err = f.projects.Create(context.Background(), in)
	if !apperror.IsValidation(err) || err.Error() != "Missing required fields: title, category, image" {
		t.Fatalf("err = %v", err)
	}
	if len(f.allTimeline()) != 0 {
		t.Fatal("failed create must not mirror")
	}
}

func TestProjectEnrichment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	goSkill, _ := f.skills.Create(ctx, entity.SkillInput{Name: "Go", Category: "Backend", Level: "Expert"})
	persona, _ := f.personas.Create(ctx, analyst())

	in := projectInput(goSkill.ID, 999)
	in.PersonaIDs = []int64{persona.ID}
	p, err := f.projects.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := f.projects.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(view.SkillNames, []entity.SkillRef{{ID: goSkill.ID, Name: "Go"}}) {
		t.Fatalf("skill_names = %+v", view.SkillNames)
	}
	if len(view.Personas) != 1 || view.Personas[0].Title != "Analyst" {
		t.Fatalf("personas = %+v", view.Personas)
	}

	list, _ := f.projects.List(ctx, repository.ProjectFilter{SkillID: &goSkill.ID})
	if len(list) != 1 || list[0].ID != p.ID {
		t.Fatalf("list = %+v", list)
	}
}

func TestProjectMirrorFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in := projectInput(1)
	in.RepoLink = ptr("https://github.com/me/folio")
	p, _ := f.projects.Create(ctx, in)

	ev, err := f.timeline.FindByProviderEvent(ctx, "portfolio", "project-1")
	if err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if ev.Type != "project" || *ev.SourceName != "Internal: Project Portfolio" || !ev.Reviewed || !ev.Automated {
		t.Fatalf("mirror = %+v", ev)
	}
	if *ev.ProofLink != "https://github.com/me/folio" || *ev.Icon != *p.Image || ev.DateStart != "2024-01-15" {
		t.Fatalf("mirror = %+v", ev)
	}

	if err := f.projects.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.allTimeline()) != 0 {
		t.Fatal("mirror not removed")
	}
	if _, err := f.projects.Get(ctx, p.ID); !apperror.IsNotFound(err) {
		t.Fatalf("get after delete err = %v", err)
	}
}

type fakeIndex struct {
	ids     []int64
	err     error
	indexed []int64
	deleted []int64
}

func (x *fakeIndex) Index(_ context.Context, p *entity.Project) error {
	x.indexed = append(x.indexed, p.ID)
	return nil
}

func (x *fakeIndex) Delete(_ context.Context, id int64) error {
	x.deleted = append(x.deleted, id)
	return nil
}

func (x *fakeIndex) Search(context.Context, string, int) ([]int64, error) { return x.ids, x.err }

func TestProjectSearch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.projects.Create(ctx, projectInput(1))
	hiddenIn := projectInput(1)
	hiddenIn.Visible = false
	hidden, _ := f.projects.Create(ctx, hiddenIn)
	otherIn := projectInput(1)
	otherIn.Title = "Shop"
	other, _ := f.projects.Create(ctx, otherIn)

	idx := &fakeIndex{ids: []int64{other.ID, hidden.ID, a.ID}}
	s := NewProjectService(f.store.Projects(), f.store.Skills(), f.store.Personas(), nil, idx, helpers.NewDiscardLogger())
	got, err := s.Search(ctx, "anything", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].ID != other.ID || got[1].ID != a.ID {
		t.Fatalf("search = %+v", got)
	}

	idx.err = errors.New("es down")
	got, err = s.Search(ctx, "shop", 10)
	if err != nil || len(got) != 1 || got[0].ID != other.ID {
		t.Fatalf("fallback search = %+v, %v", got, err)
	}

	if _, err := s.Update(ctx, a.ID, entity.ProjectPatch{Title: ptr("Folio 2")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !reflect.DeepEqual(idx.indexed, []int64{a.ID}) || !reflect.DeepEqual(idx.deleted, []int64{a.ID}) {
		t.Fatalf("index calls = %v / %v", idx.indexed, idx.deleted)
	}
}
