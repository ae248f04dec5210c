package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillpath-app/backend/handlers"
	"github.com/skillpath-app/backend/middleware"
)

func DiscussionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	discussions := api.Group("/discussions", middleware.Protected())
	discussions.Post("", handlers.CreateDiscussion)
	discussions.Get("/roadmaps/:roadmapId", handlers.ListDiscussions)
	discussions.Post("/:discussionId/replies", handlers.CreateReply)
	discussions.Patch("/replies/:replyId/helpful", handlers.MarkReplyHelpful)
}
