package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillpath-app/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/progress", UpdateProgress)
	app.Get("/api/v1/progress/users/:userId", GetUserProgress)
	return app
}

func seedStep(t *testing.T, db *gorm.DB) models.RoadmapStep {
	t.Helper()

	skill := models.Skill{Name: "Data Engineering " + uuid.NewString()}
	require.NoError(t, db.Create(&skill).Error)

	roadmap := models.Roadmap{UserID: uuid.New(), SkillID: skill.ID, DurationWeeks: 1}
	require.NoError(t, db.Create(&roadmap).Error)

	step := models.RoadmapStep{RoadmapID: roadmap.ID, WeekNumber: 1, Title: "Learn SQL", Sequence: 0}
	require.NoError(t, db.Create(&step).Error)
	return step
}

func TestUpdateProgress_CreateThenUpdate(t *testing.T) {
	db := setupTestDB(t)
	app := newProgressApp()
	step := seedStep(t, db)
	userID := uuid.New()

	req := jsonRequest(t, http.MethodPost, "/api/v1/progress", fiber.Map{
		"user_id": userID.String(),
		"step_id": step.ID.String(),
		"status":  models.StepStatusInProgress,
	})
	resp := performRequest(t, app, req)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = jsonRequest(t, http.MethodPost, "/api/v1/progress", fiber.Map{
		"user_id": userID.String(),
		"step_id": step.ID.String(),
		"status":  models.StepStatusCompleted,
	})
	resp = performRequest(t, app, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The upsert leaves a single row holding the latest status.
	var rows []models.UserStepProgress
	require.NoError(t, db.Where("user_id = ?", userID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StepStatusCompleted, rows[0].Status)
}

func TestUpdateProgress_InvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	app := newProgressApp()
	step := seedStep(t, db)

	req := jsonRequest(t, http.MethodPost, "/api/v1/progress", fiber.Map{
		"user_id": uuid.NewString(),
		"step_id": step.ID.String(),
		"status":  "abandoned",
	})
	resp := performRequest(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateProgress_UnknownStep(t *testing.T) {
	setupTestDB(t)
	app := newProgressApp()

	req := jsonRequest(t, http.MethodPost, "/api/v1/progress", fiber.Map{
		"user_id": uuid.NewString(),
		"step_id": uuid.NewString(),
		"status":  models.StepStatusCompleted,
	})
	resp := performRequest(t, app, req)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetUserProgress(t *testing.T) {
	db := setupTestDB(t)
	app := newProgressApp()
	step := seedStep(t, db)
	userID := uuid.New()

	progress := models.UserStepProgress{UserID: userID, StepID: step.ID, Status: models.StepStatusCompleted}
	require.NoError(t, db.Create(&progress).Error)

	req := jsonRequest(t, http.MethodGet, "/api/v1/progress/users/"+userID.String(), nil)
	resp := performRequest(t, app, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	rows := body["progress"].([]interface{})
	require.Len(t, rows, 1)

	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Learn SQL", row["step_title"])
	assert.Equal(t, float64(1), row["week_number"])
	assert.Equal(t, models.StepStatusCompleted, row["status"])
}
