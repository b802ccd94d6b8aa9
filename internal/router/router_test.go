package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-portfolio-api/config"
	"github.com/oksasatya/go-portfolio-api/internal/application"
	"github.com/oksasatya/go-portfolio-api/internal/container"
	"github.com/oksasatya/go-portfolio-api/internal/router"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
	"github.com/oksasatya/go-portfolio-api/pkg/response"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct horse battery"
)

type server struct {
	t      *testing.T
	engine *gin.Engine
	token  string
	dir    string
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	helpers.BcryptCost = bcrypt.MinCost

	dir := t.TempDir()
	cfg := &config.Config{
		AppName:        "portfolio-api",
		Env:            "test",
		DBDriver:       "memory",
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		LoginRateLimit: 10,
		StorageDriver:  "disk",
		StorageDir:     dir,
		UploadMaxBytes: 1 << 20,
	}
	c, err := container.New(context.Background(), cfg, helpers.NewDiscardLogger())
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	t.Cleanup(c.Close)

	hash, err := helpers.HashPassword(adminPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, _, err := c.Repos.Users.Upsert(context.Background(), adminEmail, hash, "admin", false); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	s := &server{t: t, engine: router.NewEngine(c), dir: dir}
	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": adminPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", w.Code, w.Body)
	}
	var login struct {
		AccessToken string `json:"accessToken"`
	}
	s.decode(w, &login)
	if login.AccessToken == "" {
		t.Fatal("login returned no token")
	}
	s.token = login.AccessToken
	return s
}

func (s *server) request(req *http.Request) *httptest.ResponseRecorder {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *server) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.request(req)
}

func (s *server) decode(w *httptest.ResponseRecorder, dst any) {
	s.t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		s.t.Fatalf("decode %s: %v", w.Body, err)
	}
}

func (s *server) expect(w *httptest.ResponseRecorder, status int) {
	s.t.Helper()
	if w.Code != status {
		s.t.Fatalf("status = %d, want %d; body=%s", w.Code, status, w.Body)
	}
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

type idOnly struct {
	ID int64 `json:"id"`
}

func (s *server) createPersona(title string, active bool) int64 {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/personas", map[string]any{
		"title":        title,
		"type":         "current",
		"icon":         "rocket",
		"accent_color": "#ff0055",
		"cta":          "Say hi",
		"availability": "open",
		"is_active":    active,
	})
	s.expect(w, http.StatusCreated)
	var p idOnly
	s.decode(w, &p)
	return p.ID
}

func (s *server) createSkill(name string) int64 {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/skills", map[string]any{
		"name":     name,
		"category": "Backend",
		"level":    "Expert",
		"years":    3,
	})
	s.expect(w, http.StatusCreated)
	var sk idOnly
	s.decode(w, &sk)
	return sk.ID
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newServer(t)
	s.token = ""

	wrongPassword := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": "not the password"})
	unknownUser := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@example.com", "password": "not the password"})

	s.expect(wrongPassword, http.StatusUnauthorized)
	s.expect(unknownUser, http.StatusUnauthorized)
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("bodies differ:\n%s\n%s", wrongPassword.Body, unknownUser.Body)
	}

	malformed := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email", "password": "x"})
	s.expect(malformed, http.StatusBadRequest)
	var body response.ErrorBody
	s.decode(malformed, &body)
	if body.Error != "Invalid credentials format." {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	me := s.do(http.MethodGet, "/api/auth/me", nil)
	s.expect(me, http.StatusOK)

	s.token = ""
	s.expect(s.do(http.MethodGet, "/api/personas", nil), http.StatusUnauthorized)
	s.expect(s.do(http.MethodPost, "/api/skills", map[string]any{"name": "Go"}), http.StatusUnauthorized)
	s.expect(s.do(http.MethodGet, "/api/skills", nil), http.StatusOK)

	s.token = "garbage"
	s.expect(s.do(http.MethodGet, "/api/auth/me", nil), http.StatusUnauthorized)
}

func TestUnknownRoute(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/api/nope", nil)
	s.expect(w, http.StatusNotFound)
	var body response.ErrorBody
	s.decode(w, &body)
	if body.Error != "Route not found" {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestPersonaSingleActive(t *testing.T) {
	s := newServer(t)
	first := s.createPersona("Engineer", true)
	second := s.createPersona("Founder", true)

	publicTitles := func() []int64 {
		t.Helper()
		w := s.do(http.MethodGet, "/api/personas/public", nil)
		s.expect(w, http.StatusOK)
		var got []idOnly
		s.decode(w, &got)
		ids := make([]int64, 0, len(got))
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		return ids
	}

	if got := publicTitles(); len(got) != 1 || got[0] != second {
		t.Fatalf("active personas = %v, want [%d]", got, second)
	}

	s.expect(s.do(http.MethodPost, idPath("/api/personas", first)+"/set-active", nil), http.StatusOK)
	if got := publicTitles(); len(got) != 1 || got[0] != first {
		t.Fatalf("active personas = %v, want [%d]", got, first)
	}

	s.expect(s.do(http.MethodPatch, idPath("/api/personas", second), map[string]any{"is_active": true}), http.StatusOK)
	if got := publicTitles(); len(got) != 1 || got[0] != second {
		t.Fatalf("active personas = %v, want [%d]", got, second)
	}

	s.expect(s.do(http.MethodDelete, idPath("/api/personas", second), nil), http.StatusNoContent)
	s.expect(s.do(http.MethodGet, idPath("/api/personas", second), nil), http.StatusNotFound)
}

func TestPersonaActivationScenario(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, "/api/personas", map[string]any{
		"title":        "Analyst",
		"type":         "current",
		"is_active":    true,
		"icon":         "x",
		"cta":          "hire me",
		"availability": "open",
	})
	s.expect(w, http.StatusCreated)
	var analyst idOnly
	s.decode(w, &analyst)

	pub := s.do(http.MethodGet, "/api/personas/public", nil)
	s.expect(pub, http.StatusOK)
	var public []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	s.decode(pub, &public)
	if len(public) != 1 || public[0].Title != "Analyst" {
		t.Fatalf("public personas = %+v", public)
	}

	s.createPersona("Founder", true)
	got := s.do(http.MethodGet, idPath("/api/personas", analyst.ID), nil)
	s.expect(got, http.StatusOK)
	var first struct {
		IsActive bool `json:"is_active"`
	}
	s.decode(got, &first)
	if first.IsActive {
		t.Fatal("first persona still active")
	}
}

func TestPersonaValidation(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, "/api/personas", map[string]any{"title": "x", "type": "someday"})
	s.expect(w, http.StatusBadRequest)
	var body response.ErrorBody
	s.decode(w, &body)
	if body.Code != "VALIDATION_ERROR" || len(body.Errors) == 0 {
		t.Fatalf("body = %+v", body)
	}
}

func TestSkillPartialUpdate(t *testing.T) {
	s := newServer(t)
	id := s.createSkill("Go")

	w := s.do(http.MethodPatch, idPath("/api/skills", id), map[string]any{"years": 5})
	s.expect(w, http.StatusOK)
	var sk struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Years    int    `json:"years"`
		Active   bool   `json:"active"`
	}
	s.decode(w, &sk)
	if sk.Name != "Go" || sk.Category != "Backend" || sk.Years != 5 || !sk.Active {
		t.Fatalf("skill = %+v", sk)
	}

	s.expect(s.do(http.MethodPatch, idPath("/api/skills", id), map[string]any{"level": "Godlike"}), http.StatusBadRequest)

	// the mirror follows the skill
	mirror := s.do(http.MethodGet, "/api/timeline/by-provider/event?provider="+application.ProviderSkill+
		"&provider_event_id="+application.SkillEventID(id), nil)
	s.expect(mirror, http.StatusOK)

	del := s.do(http.MethodDelete, idPath("/api/skills", id), nil)
	s.expect(del, http.StatusOK)
	if !strings.Contains(del.Body.String(), `"success":true`) {
		t.Fatalf("delete body = %s", del.Body)
	}
	s.expect(s.do(http.MethodGet, idPath("/api/skills", id), nil), http.StatusNotFound)
}

func TestProjectRequiresSkill(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodPost, "/api/projects", map[string]any{
		"title":    "Portfolio",
		"category": "Web",
		"image":    "/storage/projects/a.png",
		"skills":   []int64{},
	})
	s.expect(w, http.StatusBadRequest)
	var body response.ErrorBody
	s.decode(w, &body)
	if body.Error != "Project must have at least one skill." {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestProjectMultipartCreate(t *testing.T) {
	s := newServer(t)
	skill := s.createSkill("Go")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":      "Portfolio API",
		"category":   "Backend",
		"skills":     "[" + strconv.FormatInt(skill, 10) + "]",
		"highlight":  "on",
		"order":      "not-a-number",
		"date_start": "2024-03-01",
		"date_end":   "",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("field: %v", err)
		}
	}
	fw, err := mw.CreateFormFile("image", "shot.png")
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	_, _ = fw.Write(pngHeader)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/projects", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.request(req)
	s.expect(w, http.StatusCreated)

	var created struct {
		Data struct {
			ID        int64   `json:"id"`
			Image     string  `json:"image"`
			Skills    []int64 `json:"skills"`
			Highlight bool    `json:"highlight"`
			Visible   bool    `json:"visible"`
			Order     *int    `json:"order"`
			DateStart *string `json:"date_start"`
			DateEnd   *string `json:"date_end"`
		} `json:"data"`
	}
	s.decode(w, &created)
	p := created.Data
	if !strings.HasPrefix(p.Image, container.StoragePrefix+"/") || !strings.HasSuffix(p.Image, ".png") {
		t.Fatalf("image = %q", p.Image)
	}
	if len(p.Skills) != 1 || p.Skills[0] != skill || !p.Highlight || !p.Visible || p.Order != nil {
		t.Fatalf("project = %+v", p)
	}
	if p.DateStart == nil || *p.DateStart != "2024-03-01" || p.DateEnd != nil {
		t.Fatalf("dates = %v %v", p.DateStart, p.DateEnd)
	}

	s.expect(s.do(http.MethodGet, p.Image, nil), http.StatusOK)

	get := s.do(http.MethodGet, idPath("/api/projects", p.ID), nil)
	s.expect(get, http.StatusOK)
	var view struct {
		Data struct {
			SkillNames []struct {
				Name string `json:"name"`
			} `json:"skill_names"`
		} `json:"data"`
	}
	s.decode(get, &view)
	if len(view.Data.SkillNames) != 1 || view.Data.SkillNames[0].Name != "Go" {
		t.Fatalf("skill names = %+v", view.Data.SkillNames)
	}

	s.expect(s.do(http.MethodDelete, idPath("/api/projects", p.ID), nil), http.StatusNoContent)
	s.expect(s.do(http.MethodGet, idPath("/api/projects", p.ID), nil), http.StatusNotFound)
}

func TestProjectRejectedCreateLeavesNoImage(t *testing.T) {
	s := newServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "Portfolio API")
	_ = mw.WriteField("category", "Backend")
	_ = mw.WriteField("skills", "[]")
	fw, err := mw.CreateFormFile("image", "shot.png")
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	_, _ = fw.Write(pngHeader)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/projects", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	s.expect(s.request(req), http.StatusBadRequest)

	entries, err := os.ReadDir(filepath.Join(s.dir, "projects"))
	if err != nil {
		t.Fatalf("read storage: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("storage holds %d files after a rejected create", len(entries))
	}
}

func TestOverlongFieldsAreRejected(t *testing.T) {
	s := newServer(t)
	id := s.createSkill("Go")
	long := strings.Repeat("x", 101)

	cases := []struct {
		name   string
		method string
		path   string
		body   map[string]any
	}{
		{"skill name", http.MethodPost, "/api/skills", map[string]any{
			"name": long, "category": "Backend", "level": "Expert", "years": 1,
		}},
		{"skill patch name", http.MethodPatch, idPath("/api/skills", id), map[string]any{"name": long}},
		{"persona title", http.MethodPost, "/api/personas", map[string]any{
			"title": long, "type": "current", "icon": "rocket", "cta": "Say hi", "availability": "open",
		}},
		{"persona icon", http.MethodPost, "/api/personas", map[string]any{
			"title": "Engineer", "type": "current", "icon": strings.Repeat("x", 256), "cta": "Say hi", "availability": "open",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s.t = t
			w := s.do(tc.method, tc.path, tc.body)
			s.expect(w, http.StatusBadRequest)
			var body response.ErrorBody
			s.decode(w, &body)
			if body.Code != "VALIDATION_ERROR" {
				t.Fatalf("body = %+v", body)
			}
		})
	}
	s.t = t

	get := s.do(http.MethodGet, idPath("/api/skills", id), nil)
	s.expect(get, http.StatusOK)
	if !strings.Contains(get.Body.String(), `"name":"Go"`) {
		t.Fatalf("skill changed: %s", get.Body)
	}
}

func TestTimelineLifecycle(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/timeline", map[string]any{
		"type":              "certification",
		"title":             "Cloud Architect",
		"date_start":        "2024-01-02",
		"proof_link":        "not a url",
		"provider":          "coursera",
		"provider_event_id": "cert-1",
	})
	s.expect(w, http.StatusCreated)
	var created struct {
		Data struct {
			ID        int64   `json:"id"`
			ProofLink *string `json:"proof_link"`
			Origin    string  `json:"origin"`
			Visible   bool    `json:"visible"`
		} `json:"data"`
	}
	s.decode(w, &created)
	ev := created.Data
	if ev.ProofLink != nil || ev.Origin != "manual" || !ev.Visible {
		t.Fatalf("event = %+v", ev)
	}

	dup := s.do(http.MethodPost, "/api/timeline", map[string]any{
		"type":              "certification",
		"title":             "Cloud Architect again",
		"date_start":        "2024-01-02",
		"provider":          "coursera",
		"provider_event_id": "cert-1",
	})
	s.expect(dup, http.StatusConflict)

	found := s.do(http.MethodGet, "/api/timeline/by-provider/event?provider=coursera&provider_event_id=cert-1", nil)
	s.expect(found, http.StatusOK)
	var byProvider struct {
		Data idOnly `json:"data"`
	}
	s.decode(found, &byProvider)
	if byProvider.Data.ID != ev.ID {
		t.Fatalf("by provider id = %d, want %d", byProvider.Data.ID, ev.ID)
	}
	s.expect(s.do(http.MethodGet, "/api/timeline/by-provider/event?provider=coursera", nil), http.StatusBadRequest)

	upd := s.do(http.MethodPatch, idPath("/api/timeline", ev.ID), map[string]any{"proof_link": "https://example.com/cert"})
	s.expect(upd, http.StatusOK)
	var updated struct {
		Data struct {
			ProofLink *string `json:"proof_link"`
			Title     string  `json:"title"`
		} `json:"data"`
	}
	s.decode(upd, &updated)
	if updated.Data.ProofLink == nil || *updated.Data.ProofLink != "https://example.com/cert" || updated.Data.Title != "Cloud Architect" {
		t.Fatalf("updated = %+v", updated.Data)
	}

	s.expect(s.do(http.MethodDelete, idPath("/api/timeline", ev.ID), nil), http.StatusNoContent)
	s.expect(s.do(http.MethodGet, idPath("/api/timeline", ev.ID), nil), http.StatusNotFound)
}

func TestImportGitHubReleasesIsIdempotent(t *testing.T) {
	s := newServer(t)
	body := map[string]any{"releases": []map[string]any{{
		"id":           42,
		"tag_name":     "v1.0.0",
		"name":         "First release",
		"html_url":     "https://github.com/acme/tool/releases/tag/v1.0.0",
		"repository":   "acme/tool",
		"published_at": "2024-05-06T10:00:00Z",
	}}}

	s.expect(s.do(http.MethodPost, "/api/timeline/import/github", body), http.StatusOK)
	s.expect(s.do(http.MethodPost, "/api/timeline/import/github", body), http.StatusOK)

	w := s.do(http.MethodGet, "/api/timeline?provider="+application.ProviderGitHub, nil)
	s.expect(w, http.StatusOK)
	var list struct {
		Data []idOnly `json:"data"`
	}
	s.decode(w, &list)
	if len(list.Data) != 1 {
		t.Fatalf("github events = %d, want 1", len(list.Data))
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
