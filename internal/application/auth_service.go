package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
	"github.com/oksasatya/go-portfolio-api/pkg/mailer"
)

const invalidCredentials = "Invalid email or password."

// dummyHash is compared against when the account does not exist so both
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, _ := helpers.HashPassword("not-a-real-password")
	return h
})

// Publisher queues a JSON message.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// LoginMeta describes where a login came from.
type LoginMeta struct {
	IP        string
	UserAgent string
}

type LoginResult struct {
	AccessToken string       `json:"accessToken"`
	User        *entity.User `json:"user"`
}

type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Mail   Publisher
	Notify string
	Logger *logrus.Logger
}

// NewAuthService builds the service. mail may be nil; notify overrides the
// recipient of login notifications (empty sends them to the user).
func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, mail Publisher, notify string, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Mail: mail, Notify: notify, Logger: logger}
}

// Emails are stored lowercased; lookups are exact.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the credentials and issues a token. Every failure is the
// same Unauthorized error.
func (s *AuthService) Login(ctx context.Context, email, password string, meta LoginMeta) (*LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		helpers.PasswordMatches(dummyHash(), password)
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	if !helpers.PasswordMatches(u.HashedPassword, password) || !u.IsActive {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	token, _, err := s.JWT.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, err
	}
	if err := s.Repo.TouchLastLogin(ctx, u.ID); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("update last_login failed")
	} else {
		now := time.Now()
		u.LastLogin = &now
	}
	s.notifyLogin(ctx, u, meta)
	return &LoginResult{AccessToken: token, User: u}, nil
}

// Verify checks a bearer token's signature and expiry.
func (s *AuthService) Verify(token string) (*helpers.Claims, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token").Wrap(err)
	}
	return claims, nil
}

// Me returns the account behind verified claims.
func (s *AuthService) Me(ctx context.Context, claims *helpers.Claims) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	return u, nil
}

func (s *AuthService) notifyLogin(ctx context.Context, u *entity.User, meta LoginMeta) {
	if s.Mail == nil {
		return
	}
	to := s.Notify
	if to == "" {
		to = u.Email
	}
	job := mailer.EmailJob{
		To:       to,
		Template: mailer.TemplateLoginNotification,
		Data: map[string]any{
			"email":      u.Email,
			"ip":         meta.IP,
			"user_agent": meta.UserAgent,
			"time":       time.Now().UTC().Format(time.RFC1123),
		},
	}
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Mail.PublishJSON(c, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue login notification failed")
	}
}

// SeedUser creates an account, or with overwrite resets the password,
// role and active flag of an existing one. created is false when the
// email was already taken.
func (s *AuthService) SeedUser(ctx context.Context, email, password, role string, overwrite bool) (*entity.User, bool, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 8 {
		return nil, false, apperror.Validation("Email and a password of at least 8 characters are required.")
	}
	if role == "" {
		role = entity.RoleAdmin
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	return s.Repo.Upsert(ctx, email, hash, role, overwrite)
}
