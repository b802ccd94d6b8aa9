package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-portfolio-api/internal/interface/http"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	// Limiter guards the login endpoint; nil leaves it unlimited.
	Limiter gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, limiter gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Limiter: limiter}
}

// LoginLimiter allows max login attempts per minute per client IP.
func LoginLimiter(counter middleware.Counter, max int, logger *logrus.Logger) gin.HandlerFunc {
	return middleware.RateLimit(counter, max, time.Minute, middleware.KeyByIPAndRoute("rl:login"), nil, logger)
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	login := []gin.HandlerFunc{m.Handler.Login}
	if m.Limiter != nil {
		login = append([]gin.HandlerFunc{m.Limiter}, login...)
	}
	rg.POST("/auth/login", login...)

	auth := rg.Group("/auth", middleware.RequireRole(m.JWT))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/logout", m.Handler.Logout)
	}
}
