package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillpath-app/backend/handlers"
	"github.com/skillpath-app/backend/middleware"
)

func RoadmapRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	roadmaps := api.Group("/roadmaps", middleware.Protected())
	roadmaps.Post("", handlers.CreateRoadmap)
	roadmaps.Get("", handlers.ListMyRoadmaps)
	roadmaps.Get("/:roadmapId", handlers.GetRoadmap)
	roadmaps.Post("/check-week-completion", handlers.CheckWeekCompletion)
	roadmaps.Post("/check-roadmap-completion", handlers.CheckRoadmapCompletion)

	curator := api.Group("/roadmaps", middleware.Protected(), middleware.CuratorRequired())
	curator.Post("/:roadmapId/steps", handlers.AddRoadmapStep)
}
