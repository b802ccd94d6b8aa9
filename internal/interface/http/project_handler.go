package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/internal/application"
	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/response"
	"github.com/oksasatya/go-portfolio-api/pkg/validation"
)

type ProjectHandler struct {
	Svc    *application.ProjectService
	Errors *middleware.ErrorResponder
}

func NewProjectHandler(svc *application.ProjectService, errs *middleware.ErrorResponder) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Errors: errs}
}

// projectPayload serves create and update. Required fields of a new
// project are checked by the store.
type projectPayload struct {
	Title         *string                              `json:"title" binding:"omitempty,max=255"`
	Description   entity.Optional[string]              `json:"description"`
	Category      *string                              `json:"category" binding:"omitempty,max=64"`
	Skills        entity.Optional[[]int64]             `json:"skills"`
	PersonaIDs    entity.Optional[[]int64]             `json:"persona_ids"`
	DateStart     entity.Optional[string]              `json:"date_start" binding:"omitempty,datetime=2006-01-02"`
	DateEnd       entity.Optional[string]              `json:"date_end" binding:"omitempty,datetime=2006-01-02"`
	DemoLink      entity.Optional[string]              `json:"demo_link" binding:"omitempty,max=1024"`
	RepoLink      entity.Optional[string]              `json:"repo_link" binding:"omitempty,max=1024"`
	Image         entity.Optional[string]              `json:"image" binding:"omitempty,max=1024"`
	Highlight     *bool                                `json:"highlight"`
	Visible       *bool                                `json:"visible"`
	Order         entity.Optional[int]                 `json:"order"`
	Collaborators entity.Optional[[]entity.Collaborator] `json:"collaborators"`
}

func (p projectPayload) input() entity.ProjectInput {
	in := entity.ProjectInput{
		Description:   p.Description.Ptr(),
		Skills:        orEmpty(p.Skills.Value),
		PersonaIDs:    orEmpty(p.PersonaIDs.Value),
		DateStart:     p.DateStart.Ptr(),
		DateEnd:       p.DateEnd.Ptr(),
		DemoLink:      p.DemoLink.Ptr(),
		RepoLink:      p.RepoLink.Ptr(),
		Image:         p.Image.Ptr(),
		Highlight:     boolOr(p.Highlight, false),
		Visible:       boolOr(p.Visible, true),
		Order:         p.Order.Ptr(),
		Collaborators: orEmpty(p.Collaborators.Value),
	}
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	return in
}

func (p projectPayload) patch() entity.ProjectPatch {
	return entity.ProjectPatch{
		Title:         p.Title,
		Description:   p.Description,
		Category:      p.Category,
		Skills:        p.Skills,
		PersonaIDs:    p.PersonaIDs,
		DateStart:     p.DateStart,
		DateEnd:       p.DateEnd,
		DemoLink:      p.DemoLink,
		RepoLink:      p.RepoLink,
		Image:         p.Image,
		Highlight:     p.Highlight,
		Visible:       p.Visible,
		Order:         p.Order,
		Collaborators: p.Collaborators,
	}
}

// Fields that may arrive as JSON text inside a form value or a JSON string.
var projectArrayFields = []string{"skills", "persona_ids", "collaborators"}

var projectBoolFields = map[string]bool{"highlight": true, "visible": true}

// readProjectPayload accepts a JSON body or a multipart form. Form values
// are all strings, so they are converted to the JSON shape first.
func readProjectPayload(c *gin.Context) (projectPayload, error) {
	raw := map[string]json.RawMessage{}
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			return projectPayload{}, apperror.Validation("Invalid multipart form.")
		}
		for key, vals := range c.Request.MultipartForm.Value {
			if len(vals) == 0 {
				continue
			}
			raw[key] = formValue(key, vals[0])
		}
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return projectPayload{}, err
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &raw); err != nil {
				return projectPayload{}, apperror.Validation(validationFailed, validation.ToDetails(err)...)
			}
		}
		for _, key := range projectArrayFields {
			if v, ok := raw[key]; ok && len(v) > 0 && v[0] == '"' {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					return projectPayload{}, apperror.Validation(validationFailed, validation.ToDetails(err)...)
				}
				raw[key] = arrayText(s)
			}
		}
	}
	if path, ok := middleware.UploadedFile(c); ok {
		img, err := json.Marshal(path)
		if err != nil {
			return projectPayload{}, err
		}
		raw["image"] = img
	}

	var p projectPayload
	merged, err := json.Marshal(raw)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(merged, &p); err != nil {
		return p, apperror.Validation(validationFailed, validation.ToDetails(err)...)
	}
	return p, validate(&p)
}

// arrayText keeps s when it is a JSON array and falls back to [].
func arrayText(s string) json.RawMessage {
	var items []json.RawMessage
	if json.Unmarshal([]byte(s), &items) != nil {
		return json.RawMessage("[]")
	}
	return json.RawMessage(s)
}

func formValue(key, v string) json.RawMessage {
	for _, f := range projectArrayFields {
		if f == key {
			return arrayText(v)
		}
	}
	switch {
	case projectBoolFields[key]:
		if v == "true" || v == "1" || v == "on" {
			return json.RawMessage("true")
		}
		return json.RawMessage("false")
	case key == "order":
		if _, err := strconv.Atoi(v); err != nil {
			return json.RawMessage("null")
		}
		return json.RawMessage(v)
	case v == "" && (key == "date_start" || key == "date_end"):
		return json.RawMessage("null")
	}
	b, _ := json.Marshal(v)
	return b
}

// List GET /api/projects?visible=&category=&skillId=&personaId=&limit=&offset=
func (h *ProjectHandler) List(c *gin.Context) {
	f := repo.ProjectFilter{Visible: queryBool(c, "visible"), Category: c.Query("category")}
	var err error
	if f.SkillID, err = queryInt64(c, "skillId"); err != nil {
		h.Errors.Write(c, err)
		return
	}
	if f.PersonaID, err = queryInt64(c, "personaId"); err != nil {
		h.Errors.Write(c, err)
		return
	}
	if f.Limit, err = queryInt(c, "limit"); err != nil {
		h.Errors.Write(c, err)
		return
	}
	if f.Offset, err = queryInt(c, "offset"); err != nil {
		h.Errors.Write(c, err)
		return
	}
	projects, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusOK, orEmpty(projects))
}

// Search GET /api/projects/search?q=&size=
func (h *ProjectHandler) Search(c *gin.Context) {
	size, err := queryInt(c, "size")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	projects, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusOK, orEmpty(projects))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := pathID(c, "project")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusOK, p)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	payload, err := readProjectPayload(c)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), payload.input())
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusCreated, p)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := pathID(c, "project")
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	payload, err := readProjectPayload(c)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, payload.patch())
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Data(c, http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "project")
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
