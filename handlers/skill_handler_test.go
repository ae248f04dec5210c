package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillpath-app/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSkillApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/skills", CreateSkill)
	app.Get("/api/v1/skills", ListSkills)
	app.Delete("/api/v1/skills/:skillId", DeleteSkill)
	return app
}

func TestDeleteSkill(t *testing.T) {
	db := setupTestDB(t)
	app := newSkillApp()

	skill := models.Skill{Name: "Rust " + uuid.NewString()}
	require.NoError(t, db.Create(&skill).Error)

	req := jsonRequest(t, http.MethodDelete, "/api/v1/skills/"+skill.ID.String(), nil)
	resp := performRequest(t, app, req)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var count int64
	db.Model(&models.Skill{}).Where("id = ?", skill.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteSkill_NotFound(t *testing.T) {
	setupTestDB(t)
	app := newSkillApp()

	req := jsonRequest(t, http.MethodDelete, "/api/v1/skills/"+uuid.NewString(), nil)
	resp := performRequest(t, app, req)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteSkill_InUse(t *testing.T) {
	db := setupTestDB(t)
	app := newSkillApp()

	skill := models.Skill{Name: "Kubernetes " + uuid.NewString()}
	require.NoError(t, db.Create(&skill).Error)
	roadmap := models.Roadmap{UserID: uuid.New(), SkillID: skill.ID, DurationWeeks: 4}
	require.NoError(t, db.Create(&roadmap).Error)

	req := jsonRequest(t, http.MethodDelete, "/api/v1/skills/"+skill.ID.String(), nil)
	resp := performRequest(t, app, req)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var count int64
	db.Model(&models.Skill{}).Where("id = ?", skill.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
