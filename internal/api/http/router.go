package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-records/internal/api/http/handlers"
	"github.com/spec-kit/student-records/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Students *handlers.StudentsHandler
	Admin    *handlers.AdminHandler
	Gate     *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Registration, login and logout are
// public; everything else under /university runs through the gate first and
// a role guard second.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	university := app.Group("/university")
	university.Post("/register", cfg.Auth.Register)
	university.Post("/login", cfg.Auth.Login)
	university.Get("/logout", cfg.Auth.Logout)

	admin := university.Group("/admin", cfg.Gate.Handle, auth.RequireAdmin())
	admin.Patch("/marks/:studentID/:subjectID", cfg.Admin.UpdateMark)
	admin.Patch("/marks/:studentID", cfg.Admin.BulkUpdateMarks)
	admin.Get("/:id", cfg.Admin.GetStudent)
	admin.Patch("/:id", cfg.Admin.UpdateStudent)

	university.Get("/", cfg.Gate.Handle, auth.RequireAdmin(), cfg.Admin.ListStudents)
	university.Get("/:studentID", cfg.Gate.Handle, auth.RequireStudent(), cfg.Students.GetOwnRecord)
}
