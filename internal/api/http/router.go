package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/jobify-service/internal/api/http/handlers"
	"github.com/spec-kit/jobify-service/internal/auth"
	"github.com/spec-kit/jobify-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Users   *handlers.UsersHandler
	Jobs    *handlers.JobsHandler
	Guards  auth.Guards
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Every route's gates are listed next to it.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Banner)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	self := cfg.Guards.Self("email")
	privileged := cfg.Guards.Privileged()

	api := app.Group("/api/v1")

	// public
	api.Post("/jwt", cfg.Auth.IssueToken)
	api.Post("/user", cfg.Users.Register)
	api.Get("/publishedJobs", cfg.Jobs.Published)
	api.Get("/latestJobs", cfg.Jobs.Latest)
	api.Get("/jobDetails/:id", cfg.Jobs.Details)

	// token + own identity
	api.Get("/users/:email", self, cfg.Users.Get)
	api.Patch("/updateUser/:email", self, cfg.Users.UpdateProfile)
	api.Get("/superAdmin/:email", self, cfg.Auth.CheckSuperAdmin)
	api.Get("/admin/:email", self, cfg.Auth.CheckAdmin)

	// token + admin or superAdmin
	api.Get("/allUsers", privileged, cfg.Users.List)
	api.Patch("/updateStatus/:id", privileged, cfg.Users.UpdateStatus)
	api.Patch("/updateRole/:id", privileged, cfg.Users.UpdateRole)
	api.Post("/addJob", privileged, cfg.Jobs.Create)
	api.Get("/allJobs", privileged, cfg.Jobs.List)
	api.Patch("/updateJobStatus/:id", privileged, cfg.Jobs.UpdateStatus)
	api.Delete("/deleteJob/:id", privileged, cfg.Jobs.Delete)
}
