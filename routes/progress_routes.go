package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillpath-app/backend/handlers"
	"github.com/skillpath-app/backend/middleware"
)

func ProgressRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	progress := api.Group("/progress", middleware.Protected())
	progress.Post("", handlers.UpdateProgress)
	progress.Get("/users/:userId", handlers.GetUserProgress)
}
