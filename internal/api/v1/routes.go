package v1

import (
	"github.com/gofiber/fiber/v2"

	"todolist/internal/api/v1/handlers"
	"todolist/internal/config"
	"todolist/internal/middleware"
)

func RegisterRoutes(app *fiber.App, deps *config.Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens, deps.Validate)
	userHandler := handlers.NewUserHandler(deps.Users, deps.Validate)
	adminHandler := handlers.NewAdminHandler(deps.Admin, deps.Validate)
	taskHandler := handlers.NewTaskHandler(deps.Tasks, deps.Validate)

	useToken := middleware.UseToken(deps.Tokens, deps.Users)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", useToken, authHandler.Logout)

	// User
	userRoutes := api.Group("/users", useToken)
	userRoutes.Get("/me", userHandler.Me)
	userRoutes.Get("/:id", userHandler.GetUser)
	userRoutes.Put("/:id", userHandler.UpdateUser)

	// Admin
	adminRoutes := api.Group("/admin", useToken, middleware.RequireRole("ADMIN"))
	adminRoutes.Get("/users", adminHandler.ListUsers)
	adminRoutes.Post("/users", adminHandler.AddUser)
	adminRoutes.Delete("/users/:id", adminHandler.DeleteUser)

	// Task
	taskRoutes := api.Group("/tasks", useToken)
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Get("/:id", taskHandler.GetTask)
	taskRoutes.Put("/:id", taskHandler.UpdateTask)
	taskRoutes.Patch("/:id/toggle", taskHandler.ToggleTask)
	taskRoutes.Delete("/:id", taskHandler.DeleteTask)
}
