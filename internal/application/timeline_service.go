package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/validation"
)

// TimelineDraft is an admin-authored timeline row. Nil flags and an empty
// source take their defaults.
type TimelineDraft struct {
	Type            string
	Title           string
	DateStart       string
	DateEnd         *string
	Description     *string
	PersonaID       *int64
	SkillIDs        []int64
	Icon            *string
	ProofLink       *string
	Source          string
	Provider        *string
	ProviderEventID *string
	SourceName      *string
	SourceURL       *string
	Visible         *bool
	Automated       *bool
	Reviewed        *bool
	Order           *int
}

// TimelineMirror is what entity services need to keep their mirror rows in sync.
type TimelineMirror interface {
	Upsert(ctx context.Context, sourceType string, src any) (*entity.TimelineEvent, error)
	RemoveMirror(ctx context.Context, provider, providerEventID string) error
}

type TimelineService struct {
	Repo   repo.TimelineRepository
	Tx     repo.Transactor
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewTimelineService(r repo.TimelineRepository, tx repo.Transactor, logger *logrus.Logger) *TimelineService {
	return &TimelineService{Repo: r, Tx: tx, Logger: logger, Now: time.Now}
}

var _ TimelineMirror = (*TimelineService)(nil)

// sanitizeURL drops anything that is not an absolute http(s) URL.
func sanitizeURL(u *string) *string {
	if u == nil || !validation.IsHTTPURL(*u) {
		return nil
	}
	return u
}

func sanitizeURLOpt(o entity.Optional[string]) entity.Optional[string] {
	if o.Set && !o.Null && !validation.IsHTTPURL(o.Value) {
		return entity.Null[string]()
	}
	return o
}

func sanitizeInput(in entity.TimelineInput) entity.TimelineInput {
	in.ProofLink = sanitizeURL(in.ProofLink)
	in.SourceURL = sanitizeURL(in.SourceURL)
	if in.SkillIDs == nil {
		in.SkillIDs = []int64{}
	}
	if in.Source == "" {
		in.Source = entity.SourceInternal
	}
	return in
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func (s *TimelineService) List(ctx context.Context, f repo.TimelineFilter) ([]entity.TimelineEvent, error) {
	return s.Repo.FindAll(ctx, f)
}

func (s *TimelineService) Get(ctx context.Context, id int64) (*entity.TimelineEvent, error) {
	ev, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, apperror.NotFound("Timeline event not found.")
	}
	return ev, nil
}

// FindByProviderEvent is the idempotence lookup; a miss is NotFound.
func (s *TimelineService) FindByProviderEvent(ctx context.Context, provider, providerEventID string) (*entity.TimelineEvent, error) {
	if provider == "" || providerEventID == "" {
		return nil, apperror.Validation("Missing provider or provider_event_id.")
	}
	ev, err := s.Repo.FindByProviderEvent(ctx, provider, providerEventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, apperror.NotFound("Timeline event not found for provider.")
	}
	return ev, nil
}

func (s *TimelineService) Create(ctx context.Context, d TimelineDraft) (*entity.TimelineEvent, error) {
	in := sanitizeInput(entity.TimelineInput{
		Type:            d.Type,
		Title:           d.Title,
		DateStart:       d.DateStart,
		DateEnd:         d.DateEnd,
		Description:     d.Description,
		PersonaID:       d.PersonaID,
		SkillIDs:        d.SkillIDs,
		Icon:            d.Icon,
		ProofLink:       d.ProofLink,
		Source:          d.Source,
		Provider:        d.Provider,
		ProviderEventID: d.ProviderEventID,
		SourceName:      d.SourceName,
		SourceURL:       d.SourceURL,
		Visible:         boolOr(d.Visible, true),
		Automated:       boolOr(d.Automated, false),
		Reviewed:        boolOr(d.Reviewed, false),
		Order:           d.Order,
		Origin:          entity.OriginManual,
	})
	return s.Repo.Create(ctx, in)
}

// Update applies an admin edit. The identity of a mirrored row
// (provider, provider_event_id) is kept whatever the patch says.
func (s *TimelineService) Update(ctx context.Context, id int64, p entity.TimelinePatch) (*entity.TimelineEvent, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Origin == entity.OriginMirrored {
		if p.Provider.Set || p.ProviderEventID.Set {
			s.Logger.WithField("timeline_id", id).Info("ignoring identity change on mirrored timeline event")
		}
		p.Provider = entity.Optional[string]{}
		p.ProviderEventID = entity.Optional[string]{}
	}
	p.ProofLink = sanitizeURLOpt(p.ProofLink)
	p.SourceURL = sanitizeURLOpt(p.SourceURL)
	if p.SkillIDs.Set && p.SkillIDs.Null {
		p.SkillIDs = entity.Some([]int64{})
	}
	return s.Repo.Update(ctx, id, p)
}

func (s *TimelineService) Remove(ctx context.Context, id int64) error {
	return s.Repo.Remove(ctx, id)
}

// Upsert mirrors src into the timeline: the row keyed by its
// (provider, provider_event_id) is created or overwritten in place.
func (s *TimelineService) Upsert(ctx context.Context, sourceType string, src any) (*entity.TimelineEvent, error) {
	in, err := Normalize(sourceType, src, s.Now())
	if err != nil {
		return nil, err
	}
	return s.Repo.UpsertByProviderEvent(ctx, sanitizeInput(in))
}

// RemoveMirror deletes the mirror row if there is one.
func (s *TimelineService) RemoveMirror(ctx context.Context, provider, providerEventID string) error {
	ev, err := s.Repo.FindByProviderEvent(ctx, provider, providerEventID)
	if err != nil {
		return err
	}
	if ev == nil {
		return nil
	}
	err = s.Repo.Remove(ctx, ev.ID)
	if apperror.IsNotFound(err) {
		return nil
	}
	return err
}

// ImportGitHubReleases upserts every release in one transaction.
func (s *TimelineService) ImportGitHubReleases(ctx context.Context, releases []entity.GitHubRelease) ([]entity.TimelineEvent, error) {
	out := make([]entity.TimelineEvent, 0, len(releases))
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		for i := range releases {
			ev, err := s.Upsert(ctx, SourceGitHubRelease, releases[i])
			if err != nil {
				return fmt.Errorf("import release %d: %w", releases[i].ID, err)
			}
			out = append(out, *ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
