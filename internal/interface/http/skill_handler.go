package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/internal/application"
	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/pkg/response"
)

type SkillHandler struct {
	Svc    *application.SkillService
	Errors *middleware.ErrorResponder
}

func NewSkillHandler(svc *application.SkillService, errs *middleware.ErrorResponder) *SkillHandler {
	return &SkillHandler{Svc: svc, Errors: errs}
}

type skillRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=100"`
	Category     string   `json:"category" binding:"required,skillcategory"`
	Level        string   `json:"level" binding:"required,skilllevel"`
	Years        int      `json:"years" binding:"gte=0"`
	Active       *bool    `json:"active"`
	Superpower   bool     `json:"superpower"`
	PersonaIDs   []int64  `json:"persona_ids"`
	Icon         *string  `json:"icon" binding:"omitempty,max=255"`
	CertLink     *string  `json:"cert_link" binding:"omitempty,max=255"`
	ProjectLinks []string `json:"project_links"`
	Order        *int     `json:"order"`
}

type skillPatchRequest struct {
	Name         *string                   `json:"name" binding:"omitempty,min=2,max=100"`
	Category     *string                   `json:"category" binding:"omitempty,skillcategory"`
	Level        *string                   `json:"level" binding:"omitempty,skilllevel"`
	Years        *int                      `json:"years" binding:"omitempty,gte=0"`
	Active       *bool                     `json:"active"`
	Superpower   *bool                     `json:"superpower"`
	PersonaIDs   entity.Optional[[]int64]  `json:"persona_ids"`
	Icon         entity.Optional[string]   `json:"icon" binding:"omitempty,max=255"`
	CertLink     entity.Optional[string]   `json:"cert_link" binding:"omitempty,max=255"`
	ProjectLinks entity.Optional[[]string] `json:"project_links"`
	Order        entity.Optional[int]      `json:"order"`
}

type reorderRequest struct {
	Items []application.SkillOrder `json:"items" binding:"required,min=1,dive"`
}

// List GET /api/skills?active=&superpower=&personaId=&category=&level=
func (h *SkillHandler) List(c *gin.Context) {
	personaID, err := queryInt64(c, "personaId")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	skills, err := h.Svc.List(c.Request.Context(), repo.SkillFilter{
		Active:     queryBool(c, "active"),
		Superpower: queryBool(c, "superpower"),
		PersonaID:  personaID,
		Category:   c.Query("category"),
		Level:      c.Query("level"),
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orEmpty(skills))
}

func (h *SkillHandler) Get(c *gin.Context) {
	id, err := pathID(c, "skill")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	sk, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sk)
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req skillRequest
	if err := bindJSON(c, &req); err != nil {
		h.Errors.Write(c, err)
		return
	}
	sk, err := h.Svc.Create(c.Request.Context(), entity.SkillInput{
		Name:         req.Name,
		Category:     req.Category,
		Level:        req.Level,
		Years:        req.Years,
		Active:       boolOr(req.Active, true),
		Superpower:   req.Superpower,
		PersonaIDs:   orEmpty(req.PersonaIDs),
		Icon:         req.Icon,
		CertLink:     req.CertLink,
		ProjectLinks: orEmpty(req.ProjectLinks),
		Order:        req.Order,
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, sk)
}

func (h *SkillHandler) Update(c *gin.Context) {
	id, err := pathID(c, "skill")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	var req skillPatchRequest
	if err := bindJSON(c, &req); err != nil {
		h.Errors.Write(c, err)
		return
	}
	sk, err := h.Svc.Update(c.Request.Context(), id, entity.SkillPatch{
		Name:         req.Name,
		Category:     req.Category,
		Level:        req.Level,
		Years:        req.Years,
		Active:       req.Active,
		Superpower:   req.Superpower,
		PersonaIDs:   req.PersonaIDs,
		Icon:         req.Icon,
		CertLink:     req.CertLink,
		ProjectLinks: req.ProjectLinks,
		Order:        req.Order,
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sk)
}

// Reorder POST /api/skills/reorder {"items":[{"id":1,"order":0}]}
func (h *SkillHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := bindJSON(c, &req); err != nil {
		h.Errors.Write(c, err)
		return
	}
	skills, err := h.Svc.Reorder(c.Request.Context(), req.Items)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, skills)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "skill")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}
