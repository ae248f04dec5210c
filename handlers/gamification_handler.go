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

type AwardActivityRequest struct {
	UserID       string                 `json:"user_id" validate:"required,uuid"`
	ActivityType string                 `json:"activity_type" validate:"required"`
	StepID       *string                `json:"step_id,omitempty"`
	RoadmapID    *string                `json:"roadmap_id,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

func AwardActivity(c *fiber.Ctx) error {
	var req AwardActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user_id"})
	}

	input := services.AwardInput{
		UserID:       userID,
		ActivityType: req.ActivityType,
		Metadata:     req.Metadata,
	}
	if req.StepID != nil {
		stepID, err := uuid.Parse(*req.StepID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid step_id"})
		}
		input.StepID = &stepID
	}
	if req.RoadmapID != nil {
		roadmapID, err := uuid.Parse(*req.RoadmapID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid roadmap_id"})
		}
		input.RoadmapID = &roadmapID
	}

	result, err := services.AwardActivity(input)
	if err != nil {
		if errors.Is(err, services.ErrMissingUser) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user_id"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gamification update failed"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Gamification updated successfully",
		"data":    result,
	})
}

func GetUserGamification(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var profile models.GamificationProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No profile yet: the user simply has not earned anything.
			return c.JSON(fiber.Map{
				"success": true,
				"data": fiber.Map{
					"xp":                0,
					"badge":             services.BadgeLevels[0].Name,
					"next_badge":        services.BadgeLevels[1].Name,
					"xp_to_next_badge":  services.BadgeLevels[1].MinXP,
					"badge_progress":    0,
					"recent_activities": []models.ActivityLog{},
					"achievements":      []models.UserAchievement{},
					"streak":            0,
				},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve gamification profile"})
	}

	nextBadge, xpToNext, badgeProgress := services.NextBadgeInfo(profile.XP, profile.Badge)

	var recentActivities []models.ActivityLog
	err = database.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(10).
		Find(&recentActivities).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve recent activities"})
	}

	var achievements []models.UserAchievement
	if err := database.DB.Where("user_id = ?", userID).Find(&achievements).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve achievements"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"xp":                profile.XP,
			"badge":             profile.Badge,
			"next_badge":        nextBadge,
			"xp_to_next_badge":  xpToNext,
			"badge_progress":    badgeProgress,
			"recent_activities": recentActivities,
			"achievements":      achievements,
			"streak":            profile.LoginStreak,
		},
	})
}

type LeaderboardEntry struct {
	UserID           uuid.UUID `json:"user_id"`
	FullName         string    `json:"full_name"`
	XP               int       `json:"xp"`
	Badge            string    `json:"badge"`
	Streak           int       `json:"streak"`
	Rank             int       `json:"rank"`
	AchievementCount int       `json:"achievement_count"`
}

func GetLeaderboard(c *fiber.Ctx) error {
	var entries []LeaderboardEntry
	err := database.DB.Model(&models.GamificationProfile{}).
		Select("gamification_profiles.user_id", "users.full_name", "gamification_profiles.xp",
			"gamification_profiles.badge", "gamification_profiles.login_streak as streak").
		Joins("JOIN users ON users.id = gamification_profiles.user_id").
		Order("gamification_profiles.xp desc").
		Limit(10).
		Find(&entries).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve leaderboard"})
	}

	userIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		userIDs = append(userIDs, entry.UserID)
	}

	type achievementCount struct {
		UserID uuid.UUID
		Count  int
	}
	var counts []achievementCount
	if len(userIDs) > 0 {
		database.DB.Model(&models.UserAchievement{}).
			Select("user_id", "count(achievement_id) as count").
			Where("user_id IN ?", userIDs).
			Group("user_id").
			Find(&counts)
	}

	countByUser := make(map[uuid.UUID]int, len(counts))
	for _, ac := range counts {
		countByUser[ac.UserID] = ac.Count
	}

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].AchievementCount = countByUser[entries[i].UserID]
	}

	return c.JSON(fiber.Map{"success": true, "data": entries})
}

func GetAchievementsCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": services.Achievements})
}

func ListMyCertificates(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var certificates []models.Certificate
	database.DB.Where("user_id = ?", userID).Find(&certificates)

	return c.JSON(certificates)
}
