package application

import (
	"testing"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

func TestNormalizeIdentity(t *testing.T) {
	tests := []struct {
		sourceType   string
		src          any
		wantProvider string
		wantEventID  string
		wantType     string
	}{
		{SourcePersona, entity.Persona{ID: 1, Title: "A", Period: ptr("2024")}, "internal", "persona-1", "persona"},
		{SourceSkill, &entity.Skill{ID: 2, Name: "Go"}, "skill-matrix", "skill-2", "skill"},
		{SourceProject, entity.Project{ID: 3, Title: "P"}, "portfolio", "project-3", "project"},
		{SourceGitHubRelease, entity.GitHubRelease{ID: 4, TagName: "v1"}, "github", "github-release-4", "release"},
		{"talk", ExternalItem{ID: "5", Title: "GopherCon"}, "talk", "talk-5", "talk"},
		{"blog", ExternalItem{ID: "6", Provider: "devto", Title: "Post"}, "devto", "blog-6", "blog"},
	}
	for _, tt := range tests {
		t.Run(tt.sourceType, func(t *testing.T) {
			in, err := Normalize(tt.sourceType, tt.src, fixedNow)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if *in.Provider != tt.wantProvider || *in.ProviderEventID != tt.wantEventID || in.Type != tt.wantType {
				t.Fatalf("got %s/%s/%s", *in.Provider, *in.ProviderEventID, in.Type)
			}
			if in.Origin != entity.OriginMirrored || !in.Automated || in.SkillIDs == nil {
				t.Fatalf("mirror flags = %+v", in)
			}
		})
	}
}

func TestNormalizePersonaDate(t *testing.T) {
	in, _ := Normalize(SourcePersona, entity.Persona{ID: 1, Title: "A", Period: ptr("2024-08"), Summary: ptr("Data")}, fixedNow)
	if in.DateStart != "2024-08-01" || *in.Description != "Data" || *in.PersonaID != 1 {
		t.Fatalf("got %+v", in)
	}
	in, _ = Normalize(SourcePersona, entity.Persona{ID: 1, Title: "A"}, fixedNow)
	if in.DateStart != "2025-03-14" {
		t.Fatalf("date = %s", in.DateStart)
	}
}

func TestNormalizeRejectsMismatchedSource(t *testing.T) {
	for _, c := range []struct {
		typ string
		src any
	}{
		{SourcePersona, entity.Skill{}},
		{SourceProject, (*entity.Project)(nil)},
		{"", ExternalItem{}},
		{"talk", 42},
	} {
		if _, err := Normalize(c.typ, c.src, fixedNow); !apperror.IsValidation(err) {
			t.Fatalf("%s/%T: err = %v", c.typ, c.src, err)
		}
	}
}
