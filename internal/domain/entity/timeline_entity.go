package entity

import "time"

// Origin tells an admin-authored timeline row apart from one mirrored
// from another entity.
const (
	OriginManual   = "manual"
	OriginMirrored = "mirrored"
)

const (
	SourceInternal  = "internal"
	SourceExternal  = "external"
	SourcePortfolio = "portfolio"
)

// TimelineEvent is a row of the aggregated timeline. (Provider,
// ProviderEventID) identifies the source of a mirrored row.
type TimelineEvent struct {
	ID              int64     `db:"id" json:"id"`
	Type            string    `db:"type" json:"type"`
	Title           string    `db:"title" json:"title"`
	DateStart       string    `db:"date_start" json:"date_start"`
	DateEnd         *string   `db:"date_end" json:"date_end"`
	Description     *string   `db:"description" json:"description"`
	PersonaID       *int64    `db:"persona_id" json:"persona_id"`
	SkillIDs        []int64   `db:"skill_ids" json:"skill_ids"`
	Icon            *string   `db:"icon" json:"icon"`
	ProofLink       *string   `db:"proof_link" json:"proof_link"`
	Source          string    `db:"source" json:"source"`
	Provider        *string   `db:"provider" json:"provider"`
	ProviderEventID *string   `db:"provider_event_id" json:"provider_event_id"`
	SourceName      *string   `db:"source_name" json:"source_name"`
	SourceURL       *string   `db:"source_url" json:"source_url"`
	Visible         bool      `db:"visible" json:"visible"`
	Automated       bool      `db:"automated" json:"automated"`
	Reviewed        bool      `db:"reviewed" json:"reviewed"`
	Order           *int      `db:"order" json:"order"`
	Origin          string    `db:"origin" json:"origin"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// TimelineInput is a complete timeline row before it is stored. It is
// also the shape produced when another entity is normalized into the
// timeline.
type TimelineInput struct {
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
	Visible         bool
	Automated       bool
	Reviewed        bool
	Order           *int
	Origin          string
}

type TimelinePatch struct {
	Type            *string
	Title           *string
	DateStart       *string
	DateEnd         Optional[string]
	Description     Optional[string]
	PersonaID       Optional[int64]
	SkillIDs        Optional[[]int64]
	Icon            Optional[string]
	ProofLink       Optional[string]
	Source          *string
	Provider        Optional[string]
	ProviderEventID Optional[string]
	SourceName      Optional[string]
	SourceURL       Optional[string]
	Visible         *bool
	Automated       *bool
	Reviewed        *bool
	Order           Optional[int]
}

// GitHubRelease is the subset of the GitHub releases API payload the
// timeline imports.
type GitHubRelease struct {
	ID          int64      `json:"id"`
	TagName     string     `json:"tag_name"`
	Name        string     `json:"name"`
	Body        string     `json:"body"`
	HTMLURL     string     `json:"html_url"`
	Repository  string     `json:"repository"`
	Draft       bool       `json:"draft"`
	Prerelease  bool       `json:"prerelease"`
	PublishedAt *time.Time `json:"published_at"`
}
