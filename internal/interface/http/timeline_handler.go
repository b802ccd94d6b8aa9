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

type TimelineHandler struct {
	Svc    *application.TimelineService
	Errors *middleware.ErrorResponder
}

func NewTimelineHandler(svc *application.TimelineService, errs *middleware.ErrorResponder) *TimelineHandler {
	return &TimelineHandler{Svc: svc, Errors: errs}
}

type timelineRequest struct {
	Type            string  `json:"type" binding:"required,max=32"`
	Title           string  `json:"title" binding:"required,max=256"`
	DateStart       string  `json:"date_start" binding:"required,datetime=2006-01-02"`
	DateEnd         *string `json:"date_end" binding:"omitempty,datetime=2006-01-02"`
	Description     *string `json:"description"`
	PersonaID       *int64  `json:"persona_id" binding:"omitempty,gt=0"`
	SkillIDs        []int64 `json:"skill_ids"`
	Icon            *string `json:"icon" binding:"omitempty,max=255"`
	ProofLink       *string `json:"proof_link" binding:"omitempty,max=1024"`
	Source          string  `json:"source" binding:"omitempty,max=32"`
	Provider        *string `json:"provider" binding:"omitempty,max=64"`
	ProviderEventID *string `json:"provider_event_id" binding:"omitempty,max=128"`
	SourceName      *string `json:"source_name" binding:"omitempty,max=128"`
	SourceURL       *string `json:"source_url" binding:"omitempty,max=1024"`
	Visible         *bool   `json:"visible"`
	Automated       *bool   `json:"automated"`
	Reviewed        *bool   `json:"reviewed"`
	Order           *int    `json:"order"`
}

type timelinePatchRequest struct {
	Type            *string                  `json:"type" binding:"omitempty,min=1,max=32"`
	Title           *string                  `json:"title" binding:"omitempty,min=1,max=256"`
	DateStart       *string                  `json:"date_start" binding:"omitempty,datetime=2006-01-02"`
	DateEnd         entity.Optional[string]  `json:"date_end" binding:"omitempty,datetime=2006-01-02"`
	Description     entity.Optional[string]  `json:"description"`
	PersonaID       entity.Optional[int64]   `json:"persona_id" binding:"omitempty,gt=0"`
	SkillIDs        entity.Optional[[]int64] `json:"skill_ids"`
	Icon            entity.Optional[string]  `json:"icon" binding:"omitempty,max=255"`
	ProofLink       entity.Optional[string]  `json:"proof_link" binding:"omitempty,max=1024"`
	Source          *string                  `json:"source" binding:"omitempty,min=1,max=32"`
	Provider        entity.Optional[string]  `json:"provider" binding:"omitempty,max=64"`
	ProviderEventID entity.Optional[string]  `json:"provider_event_id" binding:"omitempty,max=128"`
	SourceName      entity.Optional[string]  `json:"source_name" binding:"omitempty,max=128"`
	SourceURL       entity.Optional[string]  `json:"source_url" binding:"omitempty,max=1024"`
	Visible         *bool                    `json:"visible"`
	Automated       *bool                    `json:"automated"`
	Reviewed        *bool                    `json:"reviewed"`
	Order           entity.Optional[int]     `json:"order"`
}

type importReleasesRequest struct {
	Releases []entity.GitHubRelease `json:"releases" binding:"required,min=1"`
}

// List GET /api/timeline?type=&visible=&reviewed=&automated=&skillId=&personaId=&provider=&origin=
func (h *TimelineHandler) List(c *gin.Context) {
	f := repo.TimelineFilter{
		Type:      c.Query("type"),
		Visible:   queryBool(c, "visible"),
		Reviewed:  queryBool(c, "reviewed"),
		Automated: queryBool(c, "automated"),
		Provider:  c.Query("provider"),
		Origin:    c.Query("origin"),
	}
	var err error
	if f.SkillID, err = queryInt64(c, "skillId"); err != nil {
		h.Errors.Write(c, err)
		return
	}
	if f.PersonaID, err = queryInt64(c, "personaId"); err != nil {
		h.Errors.Write(c, err)
		return
	}
	events, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusOK, orEmpty(events))
}

// ByProviderEvent GET /api/timeline/by-provider/event?provider=&provider_event_id=
func (h *TimelineHandler) ByProviderEvent(c *gin.Context) {
	ev, err := h.Svc.FindByProviderEvent(c.Request.Context(), c.Query("provider"), c.Query("provider_event_id"))
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusOK, ev)
}

func (h *TimelineHandler) Get(c *gin.Context) {
	id, err := pathID(c, "timeline event")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	ev, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusOK, ev)
}

func (h *TimelineHandler) Create(c *gin.Context) {
	var req timelineRequest
	if err := bindJSON(c, &req); err != nil {
		h.Errors.Write(c, err)
		return
	}
	ev, err := h.Svc.Create(c.Request.Context(), application.TimelineDraft{
		Type:            req.Type,
		Title:           req.Title,
		DateStart:       req.DateStart,
		DateEnd:         req.DateEnd,
		Description:     req.Description,
		PersonaID:       req.PersonaID,
		SkillIDs:        req.SkillIDs,
		Icon:            req.Icon,
		ProofLink:       req.ProofLink,
		Source:          req.Source,
		Provider:        req.Provider,
		ProviderEventID: req.ProviderEventID,
		SourceName:      req.SourceName,
		SourceURL:       req.SourceURL,
		Visible:         req.Visible,
		Automated:       req.Automated,
		Reviewed:        req.Reviewed,
		Order:           req.Order,
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusCreated, ev)
}

func (h *TimelineHandler) Update(c *gin.Context) {
	id, err := pathID(c, "timeline event")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	var req timelinePatchRequest
	if err := bindJSON(c, &req); err != nil {
		h.Errors.Write(c, err)
		return
	}
	ev, err := h.Svc.Update(c.Request.Context(), id, entity.TimelinePatch{
		Type:            req.Type,
		Title:           req.Title,
		DateStart:       req.DateStart,
		DateEnd:         req.DateEnd,
		Description:     req.Description,
		PersonaID:       req.PersonaID,
		SkillIDs:        req.SkillIDs,
		Icon:            req.Icon,
		ProofLink:       req.ProofLink,
		Source:          req.Source,
		Provider:        req.Provider,
		ProviderEventID: req.ProviderEventID,
		SourceName:      req.SourceName,
		SourceURL:       req.SourceURL,
		Visible:         req.Visible,
		Automated:       req.Automated,
		Reviewed:        req.Reviewed,
		Order:           req.Order,
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusOK, ev)
}

func (h *TimelineHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "timeline event")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), id); err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.NoContent(c)
}

// ImportGitHub POST /api/timeline/import/github {"releases":[...]}
func (h *TimelineHandler) ImportGitHub(c *gin.Context) {
	var req importReleasesRequest
	if err := bindJSON(c, &req); err != nil {
		h.Errors.Write(c, err)
		return
	}
	events, err := h.Svc.ImportGitHubReleases(c.Request.Context(), req.Releases)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusOK, events)
}
