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

type ShareResourceRequest struct {
	RoadmapID   string `json:"roadmap_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description"`
}

func ShareResource(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req ShareResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	roadmapID, _ := uuid.Parse(req.RoadmapID)
	var roadmap models.Roadmap
	if err := database.DB.First(&roadmap, "id = ?", roadmapID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Roadmap not found"})
	}

	resource := models.Resource{
		RoadmapID:   roadmapID,
		SharedByID:  userID,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
	}
	if err := database.DB.Create(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to share resource"})
	}

	reward, err := services.AwardActivity(services.AwardInput{
		UserID:       userID,
		ActivityType: services.ActivityShareResource,
		RoadmapID:    &roadmapID,
	})
	if err != nil {
		log.Printf("🔥 Failed to award share_resource to user %s: %v", userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"resource": resource, "reward": reward})
}

func ListRoadmapResources(c *fiber.Ctx) error {
	roadmapID := c.Params("roadmapId")

	var resources []models.Resource
	err := database.DB.Where("roadmap_id = ?", roadmapID).
		Order("created_at desc").
		Find(&resources).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list resources"})
	}

	return c.JSON(resources)
}
