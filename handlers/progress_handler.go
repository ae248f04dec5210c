package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
	"gorm.io/gorm"
)

type UpdateProgressRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	StepID string `json:"step_id" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=in_progress completed"`
}

// UpdateProgress upserts the per-(user, step) progress record. Clients that
// mark a step completed must award complete_step before calling the
// week/roadmap completion checks, so the checks see current progress.
func UpdateProgress(c *fiber.Ctx) error {
	var req UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID, _ := uuid.Parse(req.UserID)
	stepID, _ := uuid.Parse(req.StepID)

	var step models.RoadmapStep
	if err := database.DB.First(&step, "id = ?", stepID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Step not found"})
	}

	var existing models.UserStepProgress
	err := database.DB.Where("user_id = ? AND step_id = ?", userID, stepID).First(&existing).Error
	if err == nil {
		existing.Status = req.Status
		if err := database.DB.Save(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update progress"})
		}
		return c.JSON(fiber.Map{"message": "Progress updated"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update progress"})
	}

	record := models.UserStepProgress{
		UserID: userID,
		StepID: stepID,
		Status: req.Status,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record progress"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Progress recorded"})
}

type ProgressRow struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	StepID     uuid.UUID `json:"step_id"`
	Status     string    `json:"status"`
	StepTitle  string    `json:"step_title"`
	WeekNumber int       `json:"week_number"`
	RoadmapID  uuid.UUID `json:"roadmap_id"`
}

func GetUserProgress(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var rows []ProgressRow
	err = database.DB.Model(&models.UserStepProgress{}).
		Select("user_step_progresses.id", "user_step_progresses.user_id", "user_step_progresses.step_id",
			"user_step_progresses.status", "roadmap_steps.title as step_title",
			"roadmap_steps.week_number", "roadmap_steps.roadmap_id").
		Joins("JOIN roadmap_steps ON user_step_progresses.step_id = roadmap_steps.id").
		Where("user_step_progresses.user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get progress"})
	}

	return c.JSON(fiber.Map{"user_id": userID, "progress": rows})
}
