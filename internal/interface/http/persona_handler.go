package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/internal/application"
	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/pkg/response"
)

type PersonaHandler struct {
	Svc    *application.PersonaService
	Errors *middleware.ErrorResponder
}

func NewPersonaHandler(svc *application.PersonaService, errs *middleware.ErrorResponder) *PersonaHandler {
	return &PersonaHandler{Svc: svc, Errors: errs}
}

type personaRequest struct {
	Title        string  `json:"title" binding:"required,max=100"`
	Type         string  `json:"type" binding:"required,personatype"`
	Period       *string `json:"period" binding:"omitempty,max=50"`
	Summary      *string `json:"summary" binding:"omitempty,max=255"`
	Description  *string `json:"description"`
	Motivation   *string `json:"motivation" binding:"omitempty,max=255"`
	Icon         *string `json:"icon" binding:"required,min=1,max=255"`
	AccentColor  *string `json:"accent_color" binding:"omitempty,max=15"`
	CTA          *string `json:"cta" binding:"required,min=1,max=255"`
	IsActive     bool    `json:"is_active"`
	Availability string  `json:"availability" binding:"required,availability"`
	Order        *int    `json:"order"`
}

func (r personaRequest) input() entity.PersonaInput {
	return entity.PersonaInput{
		Title:        r.Title,
		Type:         r.Type,
		Period:       r.Period,
		Summary:      r.Summary,
		Description:  r.Description,
		Motivation:   r.Motivation,
		Icon:         r.Icon,
		AccentColor:  r.AccentColor,
		CTA:          r.CTA,
		IsActive:     r.IsActive,
		Availability: r.Availability,
		Order:        r.Order,
	}
}

type personaPatchRequest struct {
	Title        *string                 `json:"title" binding:"omitempty,min=1,max=100"`
	Type         *string                 `json:"type" binding:"omitempty,personatype"`
	Period       entity.Optional[string] `json:"period" binding:"omitempty,max=50"`
	Summary      entity.Optional[string] `json:"summary" binding:"omitempty,max=255"`
	Description  entity.Optional[string] `json:"description"`
	Motivation   entity.Optional[string] `json:"motivation" binding:"omitempty,max=255"`
	Icon         entity.Optional[string] `json:"icon" binding:"omitempty,max=255"`
	AccentColor  entity.Optional[string] `json:"accent_color" binding:"omitempty,max=15"`
	CTA          entity.Optional[string] `json:"cta" binding:"omitempty,max=255"`
	IsActive     *bool                   `json:"is_active"`
	Availability *string                 `json:"availability" binding:"omitempty,availability"`
	Order        entity.Optional[int]    `json:"order"`
}

func (r personaPatchRequest) patch() entity.PersonaPatch {
	return entity.PersonaPatch{
		Title:        r.Title,
		Type:         r.Type,
		Period:       r.Period,
		Summary:      r.Summary,
		Description:  r.Description,
		Motivation:   r.Motivation,
		Icon:         r.Icon,
		AccentColor:  r.AccentColor,
		CTA:          r.CTA,
		IsActive:     r.IsActive,
		Availability: r.Availability,
		Order:        r.Order,
	}
}

// Public GET /api/personas/public
func (h *PersonaHandler) Public(c *gin.Context) {
	h.list(c, true)
}

// List GET /api/personas?type=
func (h *PersonaHandler) List(c *gin.Context) {
	h.list(c, false)
}

func (h *PersonaHandler) list(c *gin.Context, public bool) {
	personas, err := h.Svc.List(c.Request.Context(), public, c.Query("type"))
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orEmpty(personas))
}

func (h *PersonaHandler) Get(c *gin.Context) {
	id, err := pathID(c, "persona")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func (h *PersonaHandler) Create(c *gin.Context) {
	var req personaRequest
	if err := bindJSON(c, &req); err != nil {
		h.Errors.Write(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

// Update PATCH|PUT /api/personas/:id
func (h *PersonaHandler) Update(c *gin.Context) {
	id, err := pathID(c, "persona")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	if _, err := h.Svc.Get(c.Request.Context(), id); err != nil {
		h.Errors.Write(c, err)
		return
	}
	var req personaPatchRequest
	if err := bindJSON(c, &req); err != nil {
		h.Errors.Write(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func (h *PersonaHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "persona")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.NoContent(c)
}

// SetActive POST /api/personas/:id/set-active
func (h *PersonaHandler) SetActive(c *gin.Context) {
	id, err := pathID(c, "persona")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	p, err := h.Svc.SetActive(c.Request.Context(), id)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}
