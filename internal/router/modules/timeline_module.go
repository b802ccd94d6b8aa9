package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-portfolio-api/internal/interface/http"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

type TimelineModule struct {
	Handler *handlers.TimelineHandler
	JWT     *helpers.JWTManager
}

func NewTimelineModule(h *handlers.TimelineHandler, jwt *helpers.JWTManager) *TimelineModule {
	return &TimelineModule{Handler: h, JWT: jwt}
}

func (m *TimelineModule) Register(rg *gin.RouterGroup) {
	rg.GET("/timeline/by-provider/event", m.Handler.ByProviderEvent)
	rg.GET("/timeline", m.Handler.List)
	rg.GET("/timeline/:id", m.Handler.Get)

	admin := rg.Group("/timeline", middleware.RequireRole(m.JWT, entity.RoleAdmin))
	{
		admin.POST("", m.Handler.Create)
		admin.POST("/import/github", m.Handler.ImportGitHub)
		admin.PATCH("/:id", m.Handler.Update)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
