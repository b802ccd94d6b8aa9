package application

import (
	"context"
	"reflect"
	"testing"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

func TestSkillPartialUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.skills.Create(ctx, entity.SkillInput{
		Name: "Go", Category: "Backend", Level: "Expert", Years: 3, Active: true,
		Superpower: true, PersonaIDs: []int64{1, 2}, Icon: ptr("go.svg"),
		ProjectLinks: []string{"https://a.example"}, Order: ptr(2),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.skills.Update(ctx, created.ID, entity.SkillPatch{Years: ptr(5)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := *created
	want.Years = 5
	want.UpdatedAt = updated.UpdatedAt
	if !reflect.DeepEqual(*updated, want) {
		t.Fatalf("got %+v\nwant %+v", *updated, want)
	}
}

func TestSkillEmptyPatch(t *testing.T) {
	f := newFixture()
	sk, _ := f.skills.Create(context.Background(), entity.SkillInput{Name: "Go", Category: "Backend", Level: "Expert"})
	_, err := f.skills.Update(context.Background(), sk.ID, entity.SkillPatch{})
	if !apperror.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
}

func TestSkillFiltersAndOrdering(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	mk := func(name string, order *int, personas ...int64) {
		_, _ = f.skills.Create(ctx, entity.SkillInput{Name: name, Category: "Backend", Level: "Expert", Active: true, Order: order, PersonaIDs: personas})
	}
	mk("nil-order", nil, 1)
	mk("second", ptr(2), 1)
	mk("first", ptr(1))

	all, _ := f.skills.List(ctx, repository.SkillFilter{})
	var names []string
	for _, s := range all {
		names = append(names, s.Name)
	}
	if !reflect.DeepEqual(names, []string{"first", "second", "nil-order"}) {
		t.Fatalf("order = %v", names)
	}
	persona := int64(1)
	of, _ := f.skills.List(ctx, repository.SkillFilter{PersonaID: &persona})
	if len(of) != 2 {
		t.Fatalf("persona filter = %d rows", len(of))
	}
}

func TestSkillReorder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.skills.Create(ctx, entity.SkillInput{Name: "A", Category: "Backend", Level: "Expert"})
	b, _ := f.skills.Create(ctx, entity.SkillInput{Name: "B", Category: "Backend", Level: "Expert", Order: ptr(9)})

	out, err := f.skills.Reorder(ctx, []SkillOrder{{ID: a.ID, Order: ptr(1)}, {ID: b.ID}})
	if err != nil || len(out) != 2 {
		t.Fatalf("reorder = %v, %v", out, err)
	}
	if *out[0].Order != 1 || out[1].Order != nil {
		t.Fatalf("orders = %v %v", out[0].Order, out[1].Order)
	}
}

func TestSkillReorderIsAllOrNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.skills.Create(ctx, entity.SkillInput{Name: "A", Category: "Backend", Level: "Expert", Order: ptr(3)})

	_, err := f.skills.Reorder(ctx, []SkillOrder{{ID: a.ID, Order: ptr(7)}, {ID: 999}})
	if !apperror.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	got, err := f.skills.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Order == nil || *got.Order != 3 {
		t.Fatalf("order = %v, want 3", got.Order)
	}
}

func TestSkillDeleteRemovesOnlyItsMirror(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.skills.Create(ctx, entity.SkillInput{Name: "A", Category: "Backend", Level: "Expert"})
	b, _ := f.skills.Create(ctx, entity.SkillInput{Name: "B", Category: "Backend", Level: "Expert"})
	if err := f.skills.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows := f.allTimeline()
	if len(rows) != 1 || *rows[0].ProviderEventID != SkillEventID(b.ID) {
		t.Fatalf("rows = %+v", rows)
	}
	if err := f.skills.Delete(ctx, a.ID); !apperror.IsNotFound(err) {
		t.Fatalf("second delete err = %v", err)
	}
}
