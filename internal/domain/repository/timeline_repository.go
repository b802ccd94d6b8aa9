package repository

import (
	"context"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
)

type TimelineFilter struct {
	Type      string
	Visible   *bool
	Reviewed  *bool
	Automated *bool
	SkillID   *int64
	PersonaID *int64
	Provider  string
	Origin    string
}

type TimelineRepository interface {
	FindAll(ctx context.Context, f TimelineFilter) ([]entity.TimelineEvent, error)
	FindByID(ctx context.Context, id int64) (*entity.TimelineEvent, error)
	FindByProviderEvent(ctx context.Context, provider, providerEventID string) (*entity.TimelineEvent, error)
	Create(ctx context.Context, in entity.TimelineInput) (*entity.TimelineEvent, error)
	Update(ctx context.Context, id int64, p entity.TimelinePatch) (*entity.TimelineEvent, error)
	Remove(ctx context.Context, id int64) error
	// UpsertByProviderEvent inserts the row or overwrites the one holding
	// the same (provider, provider_event_id), keeping its id.
	UpsertByProviderEvent(ctx context.Context, in entity.TimelineInput) (*entity.TimelineEvent, error)
}

// Transactor runs fn so that every repository call made with the ctx it
// receives belongs to one transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
