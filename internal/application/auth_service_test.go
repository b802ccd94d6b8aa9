package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
	"github.com/oksasatya/go-portfolio-api/pkg/mailer"
)

type fakePublisher struct {
	jobs []mailer.EmailJob
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if job, ok := body.(mailer.EmailJob); ok {
		p.jobs = append(p.jobs, job)
	}
	return p.err
}

func newAuth(t *testing.T, pub Publisher) (*AuthService, *memory.UserRepository, *entity.User) {
	t.Helper()
	users := memory.NewStore().Users()
	hash, err := helpers.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, _, _ := users.Upsert(context.Background(), "admin@example.com", hash, entity.RoleAdmin, false)
	s := NewAuthService(users, helpers.NewJWTManager("secret", 2*time.Hour), pub, "", helpers.NewDiscardLogger())
	return s, users, u
}

func TestLoginSuccess(t *testing.T) {
	pub := &fakePublisher{}
	s, _, u := newAuth(t, pub)
	res, err := s.Login(context.Background(), "admin@example.com", "correct horse", LoginMeta{IP: "1.2.3.4"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.ID != u.ID || res.User.LastLogin == nil {
		t.Fatalf("user = %+v", res.User)
	}
	claims, err := s.Verify(res.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != u.ID || claims.Email != u.Email || claims.Role != entity.RoleAdmin {
		t.Fatalf("claims = %+v", claims)
	}
	if len(pub.jobs) != 1 || pub.jobs[0].To != "admin@example.com" || pub.jobs[0].Data["ip"] != "1.2.3.4" {
		t.Fatalf("jobs = %+v", pub.jobs)
	}
	me, err := s.Me(context.Background(), claims)
	if err != nil || me.Email != "admin@example.com" {
		t.Fatalf("me = %+v, %v", me, err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s, users, u := newAuth(t, nil)
	ctx := context.Background()

	_, wrongPass := s.Login(ctx, "admin@example.com", "nope", LoginMeta{})
	_, noUser := s.Login(ctx, "ghost@example.com", "nope", LoginMeta{})
	users.SetActive(u.ID, false)
	_, inactive := s.Login(ctx, "admin@example.com", "correct horse", LoginMeta{})

	for _, err := range []error{wrongPass, noUser, inactive} {
		ae, ok := apperror.As(err)
		if !ok || ae.Status != 401 || ae.Message != "Invalid email or password." || ae.Code != apperror.CodeUnauthorized {
			t.Fatalf("err = %#v", err)
		}
	}
}

func TestLoginIgnoresPublishFailure(t *testing.T) {
	s, _, _ := newAuth(t, &fakePublisher{err: errors.New("amqp closed")})
	if _, err := s.Login(context.Background(), "admin@example.com", "correct horse", LoginMeta{}); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s, _, _ := newAuth(t, nil)
	_, err := s.Verify("garbage")
	ae, ok := apperror.As(err)
	if !ok || ae.Message != "Invalid or expired token" {
		t.Fatalf("err = %v", err)
	}
}

func TestSeedUser(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memory.NewStore().Users(), helpers.NewJWTManager("s", time.Hour), nil, "", helpers.NewDiscardLogger())

	u, created, err := svc.SeedUser(ctx, " Admin@Example.com ", "password123", "", false)
	if err != nil || !created {
		t.Fatalf("seed: created=%v err=%v", created, err)
	}
	if u.Email != "admin@example.com" || u.Role != "admin" {
		t.Fatalf("seeded user = %+v", u)
	}

	_, created, err = svc.SeedUser(ctx, "admin@example.com", "another-pass", "admin", false)
	if err != nil || created {
		t.Fatalf("second seed without force: created=%v err=%v", created, err)
	}
	if _, err := svc.Login(ctx, "admin@example.com", "another-pass", LoginMeta{}); err == nil {
		t.Fatal("password changed without force")
	}

	if _, _, err := svc.SeedUser(ctx, "admin@example.com", "another-pass", "admin", true); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login(ctx, "admin@example.com", "another-pass", LoginMeta{}); err != nil {
		t.Fatalf("login after forced reseed: %v", err)
	}

	if _, _, err := svc.SeedUser(ctx, "x@y.z", "short", "", false); !apperror.IsValidation(err) {
		t.Fatalf("short password err = %v", err)
	}
}

func TestLoginMatchesSeededEmailAnyCase(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()
	svc := NewAuthService(users, helpers.NewJWTManager("s", time.Hour), nil, "", helpers.NewDiscardLogger())

	if _, _, err := svc.SeedUser(ctx, "Admin@Example.com", "password123", "", false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// the store compares exactly, like the users.email unique index
	if u, _ := users.GetByEmail(ctx, "Admin@Example.com"); u != nil {
		t.Fatalf("store matched a differently cased email: %+v", u)
	}
	for _, email := range []string{"Admin@Example.com", " ADMIN@example.com ", "admin@example.com"} {
		if _, err := svc.Login(ctx, email, "password123", LoginMeta{}); err != nil {
			t.Fatalf("login %q: %v", email, err)
		}
	}
}
