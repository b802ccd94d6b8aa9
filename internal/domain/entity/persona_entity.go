package entity

import "time"

const (
	PersonaCurrent = "current"
	PersonaPast    = "past"
	PersonaGoal    = "goal"

	AvailabilityOpen       = "open"
	AvailabilityConsulting = "consulting"
	AvailabilityClosed     = "closed"
)

// Persona is one professional identity shown on the public site.
// At most one persona is active at a time.
type Persona struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Type         string    `db:"type" json:"type"`
	Period       *string   `db:"period" json:"period"`
	Summary      *string   `db:"summary" json:"summary"`
	Description  *string   `db:"description" json:"description"`
	Motivation   *string   `db:"motivation" json:"motivation"`
	Icon         *string   `db:"icon" json:"icon"`
	AccentColor  *string   `db:"accent_color" json:"accent_color"`
	CTA          *string   `db:"cta" json:"cta"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	Availability string    `db:"availability" json:"availability"`
	Order        *int      `db:"order" json:"order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type PersonaInput struct {
	Title        string
	Type         string
	Period       *string
	Summary      *string
	Description  *string
	Motivation   *string
	Icon         *string
	AccentColor  *string
	CTA          *string
	IsActive     bool
	Availability string
	Order        *int
}

// PersonaPatch carries only the fields present in an update request.
// Non-nullable columns use plain pointers, nullable ones Optional.
type PersonaPatch struct {
	Title        *string
	Type         *string
	Period       Optional[string]
	Summary      Optional[string]
	Description  Optional[string]
	Motivation   Optional[string]
	Icon         Optional[string]
	AccentColor  Optional[string]
	CTA          Optional[string]
	IsActive     *bool
	Availability *string
	Order        Optional[int]
}

func (p PersonaPatch) Activates() bool { return p.IsActive != nil && *p.IsActive }
