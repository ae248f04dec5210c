package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
	"github.com/skillpath-app/backend/services"
)

type CreateDiscussionRequest struct {
	RoadmapID string `json:"roadmap_id" validate:"required,uuid"`
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

func CreateDiscussion(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateDiscussionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	roadmapID, _ := uuid.Parse(req.RoadmapID)
	discussion := models.Discussion{
		RoadmapID: roadmapID,
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := database.DB.Create(&discussion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create discussion"})
	}

	reward := awardParticipation(userID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"discussion": discussion, "reward": reward})
}

func ListDiscussions(c *fiber.Ctx) error {
	roadmapID := c.Params("roadmapId")

	var discussions []models.Discussion
	err := database.DB.Preload("Replies").
		Where("roadmap_id = ?", roadmapID).
		Order("created_at desc").
		Find(&discussions).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list discussions"})
	}

	return c.JSON(discussions)
}

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required"`
}

func CreateReply(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	discussionID, err := uuid.Parse(c.Params("discussionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid discussion id"})
	}

	var req CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var discussion models.Discussion
	if err := database.DB.First(&discussion, "id = ?", discussionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Discussion not found"})
	}

	reply := models.DiscussionReply{
		DiscussionID: discussionID,
		UserID:       userID,
		Content:      req.Content,
	}
	if err := database.DB.Create(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create reply"})
	}

	reward := awardParticipation(userID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"reply": reply, "reward": reward})
}

// MarkReplyHelpful lets the discussion author flag a reply; the reply's
// author earns a help_peer award. Marking is idempotent per reply.
func MarkReplyHelpful(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	replyID, err := uuid.Parse(c.Params("replyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reply id"})
	}

	var reply models.DiscussionReply
	if err := database.DB.First(&reply, "id = ?", replyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reply not found"})
	}

	var discussion models.Discussion
	if err := database.DB.First(&discussion, "id = ?", reply.DiscussionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Discussion not found"})
	}
	if discussion.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the discussion author can mark replies as helpful"})
	}
	if reply.UserID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot mark your own reply as helpful"})
	}

	if reply.IsHelpful {
		return c.JSON(reply)
	}

	reply.IsHelpful = true
	if err := database.DB.Save(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark reply as helpful"})
	}

	if _, err := services.AwardActivity(services.AwardInput{
		UserID:       reply.UserID,
		ActivityType: services.ActivityHelpPeer,
	}); err != nil {
		log.Printf("🔥 Failed to award help_peer to user %s: %v", reply.UserID, err)
	}

	return c.JSON(reply)
}

func awardParticipation(userID uuid.UUID) *services.AwardResult {
	reward, err := services.AwardActivity(services.AwardInput{
		UserID:       userID,
		ActivityType: services.ActivityParticipateDiscussion,
	})
	if err != nil {
		log.Printf("🔥 Failed to award participate_discussion to user %s: %v", userID, err)
		return nil
	}
	return reward
}
