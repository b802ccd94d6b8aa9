package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-portfolio-api/internal/interface/http"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

type PersonaModule struct {
	Handler *handlers.PersonaHandler
	JWT     *helpers.JWTManager
}

func NewPersonaModule(h *handlers.PersonaHandler, jwt *helpers.JWTManager) *PersonaModule {
	return &PersonaModule{Handler: h, JWT: jwt}
}

func (m *PersonaModule) Register(rg *gin.RouterGroup) {
	rg.GET("/personas/public", m.Handler.Public)

	admin := rg.Group("/personas", middleware.RequireRole(m.JWT, entity.RoleAdmin))
	{
		admin.GET("", m.Handler.List)
		admin.GET("/:id", m.Handler.Get)
		admin.POST("", m.Handler.Create)
		admin.PATCH("/:id", m.Handler.Update)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.POST("/:id/set-active", m.Handler.SetActive)
	}
}
