package services

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNoStepsFound means the referenced roadmap or week has zero steps.
var ErrNoStepsFound = errors.New("no steps found")

type CompletionStatus struct {
	Completed          bool   `json:"completed"`
	AlreadyAwarded     bool   `json:"already_awarded,omitempty"`
	XPEarned           int    `json:"xp_earned,omitempty"`
	BadgeUpgraded      bool   `json:"badge_upgraded,omitempty"`
	CompletedSteps     int    `json:"completed_steps"`
	TotalSteps         int    `json:"total_steps"`
	ProgressPercentage int    `json:"progress_percentage"`
	Message            string `json:"message"`
}

// CheckWeekCompletion re-evaluates week completion from the progress records.
// Completion is detected, never cached: every call scans the week's steps.
// The complete_week award is one-time per (user, roadmap, week), deduplicated
// against the ledger via the week_number stored in the entry metadata.
func CheckWeekCompletion(userID, roadmapID uuid.UUID, weekNumber int) (*CompletionStatus, error) {
	var stepIDs []uuid.UUID
	err := database.DB.Model(&models.RoadmapStep{}).
		Where("roadmap_id = ? AND week_number = ?", roadmapID, weekNumber).
		Pluck("id", &stepIDs).Error
	if err != nil {
		return nil, err
	}
	if len(stepIDs) == 0 {
		return nil, ErrNoStepsFound
	}

	completedCount, err := countCompletedSteps(userID, stepIDs)
	if err != nil {
		return nil, err
	}

	status := &CompletionStatus{
		CompletedSteps:     completedCount,
		TotalSteps:         len(stepIDs),
		ProgressPercentage: progressPercentage(completedCount, len(stepIDs)),
	}

	if completedCount < len(stepIDs) {
		status.Message = "Week not yet completed"
		return status, nil
	}
	status.Completed = true

	// The dedup check and the award must not interleave with a concurrent
	// completion check for the same user.
	mu := lockForUser(userID)
	mu.Lock()
	defer mu.Unlock()

	var existing models.ActivityLog
	err = database.DB.
		Where("user_id = ? AND activity_type = ? AND roadmap_id = ?", userID, ActivityCompleteWeek, roadmapID).
		Where(datatypes.JSONQuery("metadata").Equals(weekNumber, "week_number")).
		First(&existing).Error
	if err == nil {
		status.AlreadyAwarded = true
		status.Message = "Week already completed"
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	award, err := awardLocked(AwardInput{
		UserID:       userID,
		ActivityType: ActivityCompleteWeek,
		RoadmapID:    &roadmapID,
		Metadata:     map[string]interface{}{"week_number": weekNumber},
	})
	if err != nil {
		return nil, err
	}

	status.XPEarned = award.XPEarned
	status.BadgeUpgraded = award.BadgeUpgraded
	status.Message = "Week completed! XP awarded."
	return status, nil
}

// CheckRoadmapCompletion is the week check scoped to every step of the
// roadmap. The dedup is a plain existence check, and the first completion
// also kicks off certificate generation.
func CheckRoadmapCompletion(userID, roadmapID uuid.UUID) (*CompletionStatus, error) {
	var stepIDs []uuid.UUID
	err := database.DB.Model(&models.RoadmapStep{}).
		Where("roadmap_id = ?", roadmapID).
		Pluck("id", &stepIDs).Error
	if err != nil {
		return nil, err
	}
	if len(stepIDs) == 0 {
		return nil, ErrNoStepsFound
	}

	completedCount, err := countCompletedSteps(userID, stepIDs)
	if err != nil {
		return nil, err
	}

	status := &CompletionStatus{
		CompletedSteps:     completedCount,
		TotalSteps:         len(stepIDs),
		ProgressPercentage: progressPercentage(completedCount, len(stepIDs)),
	}

	if completedCount < len(stepIDs) {
		status.Message = "Roadmap not yet completed"
		return status, nil
	}
	status.Completed = true

	mu := lockForUser(userID)
	mu.Lock()
	defer mu.Unlock()

	var existing models.ActivityLog
	err = database.DB.
		Where("user_id = ? AND activity_type = ? AND roadmap_id = ?", userID, ActivityCompleteRoadmap, roadmapID).
		First(&existing).Error
	if err == nil {
		status.AlreadyAwarded = true
		status.Message = "Roadmap already completed"
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	award, err := awardLocked(AwardInput{
		UserID:       userID,
		ActivityType: ActivityCompleteRoadmap,
		RoadmapID:    &roadmapID,
	})
	if err != nil {
		return nil, err
	}

	go GenerateRoadmapCertificate(userID, roadmapID)

	status.XPEarned = award.XPEarned
	status.BadgeUpgraded = award.BadgeUpgraded
	status.Message = "Roadmap completed! XP awarded."
	return status, nil
}

func countCompletedSteps(userID uuid.UUID, stepIDs []uuid.UUID) (int, error) {
	var count int64
	err := database.DB.Model(&models.UserStepProgress{}).
		Where("user_id = ? AND status = ?", userID, models.StepStatusCompleted).
		Where("step_id IN ?", stepIDs).
		Count(&count).Error
	return int(count), err
}

func progressPercentage(completed, total int) int {
	return int(math.Round(float64(completed) / float64(total) * 100))
}
