package entity

import (
	"strings"
	"time"

	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

type Collaborator struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	ProfileLink string `json:"profile_link,omitempty"`
}

// Project is a gallery entry. Skills and PersonaIDs are weak references;
// Image is a storage path or URL.
type Project struct {
	ID            int64          `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Description   *string        `db:"description" json:"description"`
	Category      string         `db:"category" json:"category"`
	Skills        []int64        `db:"skills" json:"skills"`
	PersonaIDs    []int64        `db:"persona_ids" json:"persona_ids"`
	DateStart     *string        `db:"date_start" json:"date_start"`
	DateEnd       *string        `db:"date_end" json:"date_end"`
	DemoLink      *string        `db:"demo_link" json:"demo_link"`
	RepoLink      *string        `db:"repo_link" json:"repo_link"`
	Image         *string        `db:"image" json:"image"`
	Highlight     bool           `db:"highlight" json:"highlight"`
	Visible       bool           `db:"visible" json:"visible"`
	Order         *int           `db:"order" json:"order"`
	Collaborators []Collaborator `db:"collaborators" json:"collaborators"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

type ProjectInput struct {
	Title         string
	Description   *string
	Category      string
	Skills        []int64
	PersonaIDs    []int64
	DateStart     *string
	DateEnd       *string
	DemoLink      *string
	RepoLink      *string
	Image         *string
	Highlight     bool
	Visible       bool
	Order         *int
	Collaborators []Collaborator
}

// Validate enforces the minimum a stored project needs.
func (in ProjectInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Category) == "" ||
		in.Image == nil || strings.TrimSpace(*in.Image) == "" {
		return apperror.Validation("Missing required fields: title, category, image")
	}
	if len(in.Skills) < 1 {
		return apperror.Validation("Project must have at least one skill.")
	}
	return nil
}

type ProjectPatch struct {
	Title         *string
	Description   Optional[string]
	Category      *string
	Skills        Optional[[]int64]
	PersonaIDs    Optional[[]int64]
	DateStart     Optional[string]
	DateEnd       Optional[string]
	DemoLink      Optional[string]
	RepoLink      Optional[string]
	Image         Optional[string]
	Highlight     *bool
	Visible       *bool
	Order         Optional[int]
	Collaborators Optional[[]Collaborator]
}
