package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillpath-app/backend/handlers"
	"github.com/skillpath-app/backend/middleware"
)

func GamificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	gamification := api.Group("/gamification")
	gamification.Get("/leaderboard", handlers.GetLeaderboard)
	gamification.Get("/achievements", handlers.GetAchievementsCatalog)

	protected := api.Group("/gamification", middleware.Protected())
	protected.Post("/award", handlers.AwardActivity)
	protected.Get("/users/:userId", handlers.GetUserGamification)
	protected.Get("/certificates/me", handlers.ListMyCertificates)
}
