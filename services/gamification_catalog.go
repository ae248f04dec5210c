package services

import "math"

// Activity types recognized by the award engine. Unknown types are accepted
// and logged with zero XP.
const (
	ActivityCompleteStep          = "complete_step"
	ActivityCompleteWeek          = "complete_week"
	ActivityCompleteRoadmap       = "complete_roadmap"
	ActivityParticipateDiscussion = "participate_discussion"
	ActivityDailyLogin            = "daily_login"
	ActivityShareResource         = "share_resource"
	ActivityHelpPeer              = "help_peer"

	ConditionXPMilestone = "xp_milestone"
)

var xpRewards = map[string]int{
	ActivityCompleteStep:          10,
	ActivityCompleteWeek:          25,
	ActivityCompleteRoadmap:       100,
	ActivityParticipateDiscussion: 5,
	ActivityDailyLogin:            2,
	ActivityShareResource:         15,
	ActivityHelpPeer:              20,
}

type BadgeLevel struct {
	Name  string `json:"name"`
	MinXP int    `json:"min_xp"`
}

// BadgeLevels is ordered ascending by MinXP. The last tier is terminal.
var BadgeLevels = []BadgeLevel{
	{Name: "Beginner", MinXP: 0},
	{Name: "Explorer", MinXP: 50},
	{Name: "Apprentice", MinXP: 150},
	{Name: "Adept", MinXP: 300},
	{Name: "Expert", MinXP: 600},
	{Name: "Master", MinXP: 1000},
}

type AchievementDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Threshold   int    `json:"threshold"`
	Icon        string `json:"icon"`
}

var Achievements = []AchievementDef{
	{ID: "first_step", Name: "First Step", Description: "Complete your first learning step", Condition: ActivityCompleteStep, Threshold: 1, Icon: "Footprints"},
	{ID: "consistent_learner", Name: "Consistent Learner", Description: "Login for 7 consecutive days", Condition: ActivityDailyLogin, Threshold: 7, Icon: "Calendar"},
	{ID: "roadmap_master", Name: "Roadmap Master", Description: "Complete an entire learning roadmap", Condition: ActivityCompleteRoadmap, Threshold: 1, Icon: "Trophy"},
	{ID: "social_butterfly", Name: "Social Butterfly", Description: "Participate in 10 discussions", Condition: ActivityParticipateDiscussion, Threshold: 10, Icon: "MessageCircle"},
	{ID: "helping_hand", Name: "Helping Hand", Description: "Help 5 peers with their questions", Condition: ActivityHelpPeer, Threshold: 5, Icon: "HandHelping"},
	{ID: "resource_contributor", Name: "Resource Contributor", Description: "Share 3 learning resources with the community", Condition: ActivityShareResource, Threshold: 3, Icon: "Share2"},
	{ID: "xp_milestone_100", Name: "Century Club", Description: "Earn 100 XP points", Condition: ConditionXPMilestone, Threshold: 100, Icon: "Award"},
	{ID: "xp_milestone_500", Name: "High Achiever", Description: "Earn 500 XP points", Condition: ConditionXPMilestone, Threshold: 500, Icon: "Star"},
	{ID: "xp_milestone_1000", Name: "XP Legend", Description: "Earn 1000 XP points", Condition: ConditionXPMilestone, Threshold: 1000, Icon: "Zap"},
}

// DetermineBadge returns the highest tier whose minimum XP is <= xp.
func DetermineBadge(xp int) string {
	for i := len(BadgeLevels) - 1; i >= 0; i-- {
		if xp >= BadgeLevels[i].MinXP {
			return BadgeLevels[i].Name
		}
	}
	return BadgeLevels[0].Name
}

func badgeIndex(name string) int {
	for i, level := range BadgeLevels {
		if level.Name == name {
			return i
		}
	}
	return 0
}

// NextBadgeInfo reports the next tier name, the XP still missing to reach it
// and the progress through the current tier as a 0-100 integer. At the
// terminal tier it reports no next badge and 100% progress.
func NextBadgeInfo(xp int, badge string) (nextBadge *string, xpToNext int, progress int) {
	idx := badgeIndex(badge)
	if idx == len(BadgeLevels)-1 {
		return nil, 0, 100
	}

	next := BadgeLevels[idx+1]
	current := BadgeLevels[idx]
	span := next.MinXP - current.MinXP
	progress = int(math.Round(float64(xp-current.MinXP) / float64(span) * 100))
	if progress > 100 {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}
	return &next.Name, next.MinXP - xp, progress
}
