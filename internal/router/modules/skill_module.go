package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-portfolio-api/internal/interface/http"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

type SkillModule struct {
	Handler *handlers.SkillHandler
	JWT     *helpers.JWTManager
}

func NewSkillModule(h *handlers.SkillHandler, jwt *helpers.JWTManager) *SkillModule {
	return &SkillModule{Handler: h, JWT: jwt}
}

func (m *SkillModule) Register(rg *gin.RouterGroup) {
	rg.GET("/skills", m.Handler.List)
	rg.GET("/skills/:id", m.Handler.Get)

	admin := rg.Group("/skills", middleware.RequireRole(m.JWT, entity.RoleAdmin))
	{
		admin.POST("", m.Handler.Create)
		admin.POST("/reorder", m.Handler.Reorder)
		admin.PATCH("/:id", m.Handler.Update)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
