package router

import (
	"github.com/oksasatya/go-portfolio-api/internal/application"
	"github.com/oksasatya/go-portfolio-api/internal/container"
	handlers "github.com/oksasatya/go-portfolio-api/internal/interface/http"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/internal/router/modules"
)

// Services are the application services behind the HTTP modules.
type Services struct {
	Auth     *application.AuthService
	Personas *application.PersonaService
	Skills   *application.SkillService
	Projects *application.ProjectService
	Timeline *application.TimelineService
}

// BuildServices wires the application layer from the container.
func BuildServices(c *container.Container) Services {
	r := c.Repos
	timeline := application.NewTimelineService(r.Timeline, r.Tx, c.Logger)
	return Services{
		Auth:     application.NewAuthService(r.Users, c.JWT, c.Mail, c.Config.AdminNotifyEmail, c.Logger),
		Personas: application.NewPersonaService(r.Personas, r.Tx, timeline, c.Logger),
		Skills:   application.NewSkillService(r.Skills, r.Tx, timeline, c.Logger),
		Projects: application.NewProjectService(r.Projects, r.Skills, r.Personas, timeline, c.ProjectIndex, c.Logger),
		Timeline: timeline,
	}
}

// InitModules builds every feature module and adds it to the registry.
// Call once during startup, before RegisterAll.
func InitModules(reg *Registry, c *container.Container, errs *middleware.ErrorResponder) Services {
	handlers.SetupValidation()
	svc := BuildServices(c)

	var counter middleware.Counter
	if c.Redis != nil {
		counter = middleware.RedisCounter{RDB: c.Redis}
	}
	upload := &middleware.Upload{
		Store:    c.Storage,
		Field:    "image",
		MaxBytes: c.Config.UploadMaxBytes,
		Errors:   errs,
	}

	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, errs), c.JWT,
		modules.LoginLimiter(counter, c.Config.LoginRateLimit, c.Logger)))
	reg.Add(modules.NewPersonaModule(handlers.NewPersonaHandler(svc.Personas, errs), c.JWT))
	reg.Add(modules.NewSkillModule(handlers.NewSkillHandler(svc.Skills, errs), c.JWT))
	reg.Add(modules.NewProjectModule(handlers.NewProjectHandler(svc.Projects, errs), c.JWT, upload))
	reg.Add(modules.NewTimelineModule(handlers.NewTimelineHandler(svc.Timeline, errs), c.JWT))
	if c.Config.MetricsEnabled {
		reg.Add(modules.NewMetricsModule())
	}
	return svc
}
