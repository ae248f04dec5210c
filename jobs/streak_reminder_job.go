package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
	"github.com/skillpath-app/backend/notifications"
	"github.com/skillpath-app/backend/services"
)

const streakReminderMinStreak = 3

type reminderTarget struct {
	user   models.User
	streak int
}

// streaksAtRisk selects learners whose streak is worth protecting and who
// have not logged in yet today. "Today" uses the local calendar day, the
// same day boundary the streak logic itself applies.
func streaksAtRisk() ([]reminderTarget, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var profiles []models.GamificationProfile
	err := database.DB.
		Where("login_streak >= ?", streakReminderMinStreak).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	targets := []reminderTarget{}
	for _, profile := range profiles {
		var todayLogins int64
		err := database.DB.Model(&models.ActivityLog{}).
			Where("user_id = ? AND activity_type = ? AND created_at >= ?",
				profile.UserID, services.ActivityDailyLogin, startOfDay).
			Count(&todayLogins).Error
		if err != nil {
			log.Printf("Error checking today's logins for user %s: %v", profile.UserID, err)
			continue
		}
		if todayLogins > 0 {
			continue
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", profile.UserID).Error; err != nil {
			continue
		}

		targets = append(targets, reminderTarget{user: user, streak: profile.LoginStreak})
	}
	return targets, nil
}

// SendStreakReminders emails learners with a streak at risk. Scheduled daily
// in the evening.
func SendStreakReminders() {
	log.Println("Running job: SendStreakReminders...")

	targets, err := streaksAtRisk()
	if err != nil {
		log.Printf("Error loading profiles for streak reminders: %v", err)
		return
	}

	for _, target := range targets {
		emailSubject := fmt.Sprintf("Your %d-day streak is at risk!", target.streak)
		emailBody := fmt.Sprintf(
			"<h1>Don't break the chain</h1><p>Hi %s,</p><p>You've logged in %d days in a row. Log in before midnight to keep your streak alive.</p>",
			target.user.FullName,
			target.streak,
		)

		go notifications.SendEmail(target.user.FullName, target.user.Email, emailSubject, emailBody)
	}
}
