package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillpath-app/backend/handlers"
	"github.com/skillpath-app/backend/middleware"
)

func SkillRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/skills", handlers.ListSkills)

	curator := api.Group("/skills", middleware.Protected(), middleware.CuratorRequired())
	curator.Post("", handlers.CreateSkill)

	admin := api.Group("/skills", middleware.Protected(), middleware.AdminRequired())
	admin.Delete("/:skillId", handlers.DeleteSkill)
}
