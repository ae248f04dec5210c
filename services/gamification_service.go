package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
	"github.com/skillpath-app/backend/websocket"
	"gorm.io/gorm"
)

type AwardInput struct {
	UserID       uuid.UUID
	ActivityType string
	StepID       *uuid.UUID
	RoadmapID    *uuid.UUID
	Metadata     map[string]interface{}
}

type UnlockedAchievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type AwardResult struct {
	XPEarned        int                   `json:"xp_earned"`
	TotalXP         int                   `json:"total_xp"`
	Badge           string                `json:"badge"`
	BadgeUpgraded   bool                  `json:"badge_upgraded"`
	Streak          int                   `json:"streak"`
	StreakUpdated   bool                  `json:"streak_updated"`
	NewAchievements []UnlockedAchievement `json:"new_achievements"`
}

var ErrMissingUser = errors.New("user_id is required")

// awardLocks serializes awards per user. Two concurrent awards for the same
// user must not both read the same profile XP before writing.
var awardLocks sync.Map

func lockForUser(userID uuid.UUID) *sync.Mutex {
	mu, _ := awardLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// AwardActivity converts a single learner action into XP, badge, streak and
// achievement updates. The profile write, ledger append and achievement
// unlocks commit in one transaction. An unrecognized activity type is not an
// error: it awards zero XP and still lands in the ledger.
func AwardActivity(input AwardInput) (*AwardResult, error) {
	if input.UserID == uuid.Nil {
		return nil, ErrMissingUser
	}

	mu := lockForUser(input.UserID)
	mu.Lock()
	defer mu.Unlock()

	return awardLocked(input)
}

// awardLocked runs the award transaction. The caller must hold the user's
// award lock.
func awardLocked(input AwardInput) (*AwardResult, error) {
	reward := xpRewards[input.ActivityType]
	result := &AwardResult{XPEarned: reward, NewAchievements: []UnlockedAchievement{}}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.GamificationProfile
		err := tx.Where("user_id = ?", input.UserID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.GamificationProfile{
				UserID: input.UserID,
				Badge:  BadgeLevels[0].Name,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		previousBadge := profile.Badge
		profile.XP += reward
		profile.Badge = DetermineBadge(profile.XP)

		if input.ActivityType == ActivityDailyLogin {
			streak, updated, err := nextLoginStreak(tx, input.UserID, profile.LoginStreak)
			if err != nil {
				return err
			}
			profile.LoginStreak = streak
			result.StreakUpdated = updated
		}
		result.Streak = profile.LoginStreak

		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		entry := models.ActivityLog{
			UserID:       input.UserID,
			ActivityType: input.ActivityType,
			XPEarned:     reward,
			StepID:       input.StepID,
			RoadmapID:    input.RoadmapID,
			Metadata:     input.Metadata,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		unlocked, err := unlockAchievements(tx, input.UserID, input.ActivityType, profile.XP)
		if err != nil {
			return err
		}

		result.TotalXP = profile.XP
		result.Badge = profile.Badge
		result.BadgeUpgraded = profile.Badge != previousBadge
		result.NewAchievements = unlocked
		return nil
	})
	if err != nil {
		return nil, err
	}

	websocket.Notify(input.UserID, "reward", result)
	return result, nil
}

// nextLoginStreak decides the streak for a daily_login award from the most
// recent prior daily_login ledger entry. Last login yesterday continues the
// streak, a repeat login today leaves it untouched, anything older resets it.
func nextLoginStreak(tx *gorm.DB, userID uuid.UUID, current int) (streak int, updated bool, err error) {
	var last models.ActivityLog
	err = tx.Where("user_id = ? AND activity_type = ?", userID, ActivityDailyLogin).
		Order("created_at desc").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, true, nil
	}
	if err != nil {
		return 0, false, err
	}

	now := time.Now()
	switch last.CreatedAt.Format("2006-01-02") {
	case now.AddDate(0, 0, -1).Format("2006-01-02"):
		return current + 1, true, nil
	case now.Format("2006-01-02"):
		return current, false, nil
	default:
		return 1, true, nil
	}
}

// unlockAchievements awards every definition the user now qualifies for and
// does not hold yet. The unique index on user_achievements absorbs the race
// where two concurrent awards both pass the existence check.
func unlockAchievements(tx *gorm.DB, userID uuid.UUID, activityType string, totalXP int) ([]UnlockedAchievement, error) {
	var activityCount int64
	err := tx.Model(&models.ActivityLog{}).
		Where("user_id = ? AND activity_type = ?", userID, activityType).
		Count(&activityCount).Error
	if err != nil {
		return nil, err
	}

	unlocked := []UnlockedAchievement{}
	for _, def := range Achievements {
		qualifies := false
		switch def.Condition {
		case ConditionXPMilestone:
			qualifies = totalXP >= def.Threshold
		case activityType:
			qualifies = activityCount >= int64(def.Threshold)
		}
		if !qualifies {
			continue
		}

		var existing models.UserAchievement
		err := tx.Where("user_id = ? AND achievement_id = ?", userID, def.ID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		award := models.UserAchievement{
			UserID:        userID,
			AchievementID: def.ID,
			EarnedAt:      time.Now(),
		}
		if err := tx.Create(&award).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, err
		}

		unlocked = append(unlocked, UnlockedAchievement{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
		})
	}
	return unlocked, nil
}
