package application

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

// Source types understood by Normalize.
const (
	SourcePersona       = "persona"
	SourceSkill         = "skill"
	SourceProject       = "project"
	SourceGitHubRelease = "github_release"
)

// Providers of mirrored rows.
const (
	ProviderPersona   = "internal"
	ProviderSkill     = "skill-matrix"
	ProviderProject   = "portfolio"
	ProviderGitHub    = "github"
	projectSourceName = "Internal: Project Portfolio"
)

// ExternalItem is any other source: it is mirrored under its own type.
type ExternalItem struct {
	ID          string
	Provider    string
	Title       string
	Description string
	Date        string
	URL         string
	Icon        string
}

func PersonaEventID(id int64) string { return "persona-" + strconv.FormatInt(id, 10) }
func SkillEventID(id int64) string   { return "skill-" + strconv.FormatInt(id, 10) }
func ProjectEventID(id int64) string { return "project-" + strconv.FormatInt(id, 10) }
func GitHubReleaseEventID(id int64) string {
	return "github-release-" + strconv.FormatInt(id, 10)
}

// Normalize maps a source entity to the timeline row that mirrors it.
// It is pure: the same source and now always give the same row.
func Normalize(sourceType string, src any, now time.Time) (entity.TimelineInput, error) {
	switch sourceType {
	case SourcePersona:
		p, ok := deref[entity.Persona](src)
		if !ok {
			break
		}
		return normalizePersona(p, now), nil
	case SourceSkill:
		s, ok := deref[entity.Skill](src)
		if !ok {
			break
		}
		return normalizeSkill(s, now), nil
	case SourceProject:
		p, ok := deref[entity.Project](src)
		if !ok {
			break
		}
		return normalizeProject(p, now), nil
	case SourceGitHubRelease:
		r, ok := deref[entity.GitHubRelease](src)
		if !ok {
			break
		}
		return normalizeRelease(r, now), nil
	default:
		item, ok := deref[ExternalItem](src)
		if !ok || strings.TrimSpace(sourceType) == "" {
			break
		}
		return normalizeExternal(sourceType, item, now), nil
	}
	return entity.TimelineInput{}, apperror.Validation(fmt.Sprintf("Unsupported timeline source %q (%T).", sourceType, src))
}

func deref[T any](src any) (T, bool) {
	switch v := src.(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(vals ...*string) *string {
	for _, v := range vals {
		if v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	return nil
}

func mirrored(in entity.TimelineInput, provider, eventID string) entity.TimelineInput {
	in.Provider, in.ProviderEventID = &provider, &eventID
	in.Origin = entity.OriginMirrored
	in.Automated = true
	if in.SkillIDs == nil {
		in.SkillIDs = []int64{}
	}
	return in
}

func normalizePersona(p entity.Persona, now time.Time) entity.TimelineInput {
	period := ""
	if p.Period != nil {
		period = *p.Period
	}
	id := p.ID
	return mirrored(entity.TimelineInput{
		Type:        SourcePersona,
		Title:       p.Title,
		DateStart:   NormalizeDate(period, now),
		Description: firstNonEmpty(p.Summary, p.Description),
		PersonaID:   &id,
		Icon:        p.Icon,
		Source:      entity.SourceInternal,
		SourceName:  strPtr("Internal: Personas"),
		Visible:     true,
		Reviewed:    true,
		Order:       p.Order,
	}, ProviderPersona, PersonaEventID(p.ID))
}

func normalizeSkill(s entity.Skill, now time.Time) entity.TimelineInput {
	desc := fmt.Sprintf("%s · %s", s.Level, s.Category)
	if s.Years > 0 {
		desc = fmt.Sprintf("%s · %s · %d yrs", s.Level, s.Category, s.Years)
	}
	date := now
	if !s.CreatedAt.IsZero() {
		date = s.CreatedAt
	}
	return mirrored(entity.TimelineInput{
		Type:        SourceSkill,
		Title:       s.Name,
		DateStart:   date.UTC().Format(isoDate),
		Description: &desc,
		SkillIDs:    []int64{s.ID},
		Icon:        s.Icon,
		ProofLink:   s.CertLink,
		Source:      entity.SourceInternal,
		SourceName:  strPtr("Internal: Skill Matrix"),
		Visible:     s.Active,
		Reviewed:    true,
		Order:       s.Order,
	}, ProviderSkill, SkillEventID(s.ID))
}

func normalizeProject(p entity.Project, now time.Time) entity.TimelineInput {
	var persona *int64
	if len(p.PersonaIDs) > 0 {
		id := p.PersonaIDs[0]
		persona = &id
	}
	return mirrored(entity.TimelineInput{
		Type:        SourceProject,
		Title:       p.Title,
		DateStart:   dateOrToday(p.DateStart, now),
		DateEnd:     p.DateEnd,
		Description: p.Description,
		PersonaID:   persona,
		SkillIDs:    append([]int64{}, p.Skills...),
		Icon:        p.Image,
		ProofLink:   firstNonEmpty(p.DemoLink, p.RepoLink),
		Source:      entity.SourcePortfolio,
		SourceName:  strPtr(projectSourceName),
		Visible:     p.Visible,
		Reviewed:    true,
		Order:       p.Order,
	}, ProviderProject, ProjectEventID(p.ID))
}

func normalizeRelease(r entity.GitHubRelease, now time.Time) entity.TimelineInput {
	date := now
	if r.PublishedAt != nil {
		date = r.PublishedAt.UTC()
	}
	title := r.Name
	if strings.TrimSpace(title) == "" {
		title = r.TagName
	}
	if r.Repository != "" {
		title = r.Repository + " " + title
	}
	sourceName := "GitHub"
	if r.Repository != "" {
		sourceName = "GitHub: " + r.Repository
	}
	return mirrored(entity.TimelineInput{
		Type:        "release",
		Title:       title,
		DateStart:   date.Format(isoDate),
		Description: strPtr(r.Body),
		ProofLink:   strPtr(r.HTMLURL),
		Source:      entity.SourceExternal,
		SourceName:  &sourceName,
		SourceURL:   strPtr(r.HTMLURL),
		Visible:     !r.Draft && !r.Prerelease,
	}, ProviderGitHub, GitHubReleaseEventID(r.ID))
}

func normalizeExternal(sourceType string, item ExternalItem, now time.Time) entity.TimelineInput {
	provider := item.Provider
	if provider == "" {
		provider = sourceType
	}
	return mirrored(entity.TimelineInput{
		Type:        sourceType,
		Title:       item.Title,
		DateStart:   NormalizeDate(item.Date, now),
		Description: strPtr(item.Description),
		Icon:        strPtr(item.Icon),
		ProofLink:   strPtr(item.URL),
		Source:      entity.SourceExternal,
		SourceName:  strPtr(provider),
		SourceURL:   strPtr(item.URL),
		Visible:     true,
	}, provider, sourceType+"-"+item.ID)
}
