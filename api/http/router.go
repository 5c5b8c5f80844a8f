package http

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"github.com/VaibhavKawatra/copy-job-tracker/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Jobs   *handlers.JobHandler
	AI     *handlers.AIHandler
	Health *handlers.HealthHandler
}

// Register wires all HTTP routes onto given Fiber app. authMW guards every
// route except health, register and login.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Job tracker API is running")
	})
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", h.Health.Health)
	api.Get("/ready", h.Health.Ready)

	a := api.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Put("/change-password", authMW, h.Auth.ChangePassword)

	jobs := api.Group("/jobs", authMW)
	jobs.Get("/", h.Jobs.List)
	jobs.Post("/", h.Jobs.Create)
	jobs.Get("/stats", h.Jobs.Stats)
	jobs.Get("/:id", h.Jobs.Get)
	jobs.Put("/:id", h.Jobs.Update)
	jobs.Delete("/:id", h.Jobs.Delete)

	ai := api.Group("/ai", authMW)
	ai.Post("/analyze", h.AI.Analyze)
	ai.Post("/analyze-file", h.AI.AnalyzeFile)
}
