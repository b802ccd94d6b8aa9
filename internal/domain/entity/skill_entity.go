package entity

import "time"

var (
	SkillCategories = []string{"Frontend", "Backend", "Security", "Cloud", "DevOps", "Database", "Soft Skill", "Other"}
	SkillLevels     = []string{"Expert", "Proficient", "Intermediate", "Learning", "Interested"}
)

// Skill is one row of the skill matrix. PersonaIDs are weak references.
type Skill struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Category     string    `db:"category" json:"category"`
	Level        string    `db:"level" json:"level"`
	Years        int       `db:"years" json:"years"`
	Active       bool      `db:"active" json:"active"`
	Superpower   bool      `db:"superpower" json:"superpower"`
	PersonaIDs   []int64   `db:"persona_ids" json:"persona_ids"`
	Icon         *string   `db:"icon" json:"icon"`
	CertLink     *string   `db:"cert_link" json:"cert_link"`
	ProjectLinks []string  `db:"project_links" json:"project_links"`
	Order        *int      `db:"order" json:"order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type SkillInput struct {
	Name         string
	Category     string
	Level        string
	Years        int
	Active       bool
	Superpower   bool
	PersonaIDs   []int64
	Icon         *string
	CertLink     *string
	ProjectLinks []string
	Order        *int
}

type SkillPatch struct {
	Name         *string
	Category     *string
	Level        *string
	Years        *int
	Active       *bool
	Superpower   *bool
	PersonaIDs   Optional[[]int64]
	Icon         Optional[string]
	CertLink     Optional[string]
	ProjectLinks Optional[[]string]
	Order        Optional[int]
}

// SkillRef is the short form of a skill embedded in project responses.
type SkillRef struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
