package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillpath-app/backend/handlers"
	"github.com/skillpath-app/backend/middleware"
)

func ResourceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	resources := api.Group("/resources", middleware.Protected())
	resources.Post("", handlers.ShareResource)
	resources.Get("/roadmaps/:roadmapId", handlers.ListRoadmapResources)
}
