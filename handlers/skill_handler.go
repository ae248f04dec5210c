package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
	"gorm.io/gorm"
)

type SkillRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    *string `json:"category"`
}

func CreateSkill(c *fiber.Ctx) error {
	var req SkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	skill := models.Skill{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := database.DB.Create(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Skill already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create skill"})
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

func ListSkills(c *fiber.Ctx) error {
	var skills []models.Skill
	database.DB.Order("name asc").Find(&skills)
	return c.JSON(skills)
}

// DeleteSkill removes a skill that no roadmap references.
func DeleteSkill(c *fiber.Ctx) error {
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid skill id"})
	}

	var skill models.Skill
	if err := database.DB.First(&skill, "id = ?", skillID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}

	var roadmapCount int64
	if err := database.DB.Model(&models.Roadmap{}).Where("skill_id = ?", skillID).Count(&roadmapCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete skill"})
	}
	if roadmapCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Skill is in use by existing roadmaps"})
	}

	if err := database.DB.Delete(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete skill"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
