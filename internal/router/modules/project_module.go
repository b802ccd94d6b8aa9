package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	handlers "github.com/oksasatya/go-portfolio-api/internal/interface/http"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

type ProjectModule struct {
	Handler *handlers.ProjectHandler
	JWT     *helpers.JWTManager
	Upload  *middleware.Upload
}

func NewProjectModule(h *handlers.ProjectHandler, jwt *helpers.JWTManager, upload *middleware.Upload) *ProjectModule {
	return &ProjectModule{Handler: h, JWT: jwt, Upload: upload}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", m.Handler.List)
	rg.GET("/projects/search", m.Handler.Search)
	rg.GET("/projects/:id", m.Handler.Get)

	admin := rg.Group("/projects", middleware.RequireRole(m.JWT, entity.RoleAdmin))
	{
		admin.POST("", m.Upload.Handle(), m.Handler.Create)
		admin.PATCH("/:id", m.Upload.Handle(), m.Handler.Update)
		admin.PUT("/:id", m.Upload.Handle(), m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
