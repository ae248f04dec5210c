package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
	"github.com/skillpath-app/backend/services"
	"gorm.io/gorm"
)

type CreateRoadmapRequest struct {
	SkillID       string `json:"skill_id" validate:"required,uuid"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,min=1,max=52"`
	Steps         []struct {
		WeekNumber  int    `json:"week_number" validate:"required,min=1"`
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	} `json:"steps" validate:"dive"`
}

func CreateRoadmap(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateRoadmapRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	skillID, _ := uuid.Parse(req.SkillID)
	var skill models.Skill
	if err := database.DB.First(&skill, "id = ?", skillID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}

	roadmap := models.Roadmap{
		UserID:        userID,
		SkillID:       skillID,
		DurationWeeks: req.DurationWeeks,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&roadmap).Error; err != nil {
			return err
		}
		for i, s := range req.Steps {
			step := models.RoadmapStep{
				RoadmapID:   roadmap.ID,
				WeekNumber:  s.WeekNumber,
				Title:       s.Title,
				Description: s.Description,
				Sequence:    i,
			}
			if err := tx.Create(&step).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create roadmap"})
	}

	return c.Status(fiber.StatusCreated).JSON(roadmap)
}

func ListMyRoadmaps(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var roadmaps []models.Roadmap
	if err := database.DB.Preload("Skill").Where("user_id = ?", userID).Find(&roadmaps).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list roadmaps"})
	}

	return c.JSON(fiber.Map{"roadmaps": roadmaps})
}

func GetRoadmap(c *fiber.Ctx) error {
	roadmapID := c.Params("roadmapId")

	var roadmap models.Roadmap
	err := database.DB.Preload("Skill").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number asc, sequence asc")
		}).
		First(&roadmap, "id = ?", roadmapID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Roadmap not found"})
	}

	return c.JSON(roadmap)
}

type AddStepRequest struct {
	WeekNumber  int    `json:"week_number" validate:"required,min=1"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Sequence    int    `json:"sequence"`
}

func AddRoadmapStep(c *fiber.Ctx) error {
	roadmapID, err := uuid.Parse(c.Params("roadmapId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid roadmap id"})
	}

	var req AddStepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var roadmap models.Roadmap
	if err := database.DB.First(&roadmap, "id = ?", roadmapID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Roadmap not found"})
	}

	step := models.RoadmapStep{
		RoadmapID:   roadmapID,
		WeekNumber:  req.WeekNumber,
		Title:       req.Title,
		Description: req.Description,
		Sequence:    req.Sequence,
	}
	if err := database.DB.Create(&step).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create step"})
	}

	return c.Status(fiber.StatusCreated).JSON(step)
}

type CheckWeekCompletionRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	RoadmapID  string `json:"roadmap_id" validate:"required,uuid"`
	WeekNumber int    `json:"week_number" validate:"required,min=1"`
}

func CheckWeekCompletion(c *fiber.Ctx) error {
	var req CheckWeekCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required parameters"})
	}

	userID, _ := uuid.Parse(req.UserID)
	roadmapID, _ := uuid.Parse(req.RoadmapID)

	status, err := services.CheckWeekCompletion(userID, roadmapID, req.WeekNumber)
	if err != nil {
		if errors.Is(err, services.ErrNoStepsFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No steps found for this week"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check week completion"})
	}

	return c.JSON(status)
}

type CheckRoadmapCompletionRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	RoadmapID string `json:"roadmap_id" validate:"required,uuid"`
}

func CheckRoadmapCompletion(c *fiber.Ctx) error {
	var req CheckRoadmapCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required parameters"})
	}

	userID, _ := uuid.Parse(req.UserID)
	roadmapID, _ := uuid.Parse(req.RoadmapID)

	status, err := services.CheckRoadmapCompletion(userID, roadmapID)
	if err != nil {
		if errors.Is(err, services.ErrNoStepsFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No steps found for this roadmap"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check roadmap completion"})
	}

	return c.JSON(status)
}
