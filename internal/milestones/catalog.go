package milestones

import "github.com/julianstephens/soberly/internal/models"

// healthMilestones is ordered by ascending DaysRequired.
var healthMilestones = []models.HealthMilestone{
	{DaysRequired: 1, TitleKey: "health.milestone.day1.title", DescriptionKey: "health.milestone.day1.description", Icon: "❤️"},
	{DaysRequired: 3, TitleKey: "health.milestone.day3.title", DescriptionKey: "health.milestone.day3.description", Icon: "🌙"},
	{DaysRequired: 7, TitleKey: "health.milestone.week1.title", DescriptionKey: "health.milestone.week1.description", Icon: "🍃"},
	{DaysRequired: 14, TitleKey: "health.milestone.week2.title", DescriptionKey: "health.milestone.week2.description", Icon: "🛡️"},
	{DaysRequired: 30, TitleKey: "health.milestone.month1.title", DescriptionKey: "health.milestone.month1.description", Icon: "🧠"},
	{DaysRequired: 90, TitleKey: "health.milestone.month3.title", DescriptionKey: "health.milestone.month3.description", Icon: "💖"},
	{DaysRequired: 180, TitleKey: "health.milestone.month6.title", DescriptionKey: "health.milestone.month6.description", Icon: "⭐"},
	{DaysRequired: 365, TitleKey: "health.milestone.year1.title", DescriptionKey: "health.milestone.year1.description", Icon: "👑"},
}

// achievements is ordered by ascending DaysRequired.
var achievements = []models.Achievement{
	{DaysRequired: 1, TitleKey: "achievement.day1.title", DescriptionKey: "achievement.day1.description", Icon: "①", Color: "blue"},
	{DaysRequired: 3, TitleKey: "achievement.day3.title", DescriptionKey: "achievement.day3.description", Icon: "③", Color: "green"},
	{DaysRequired: 7, TitleKey: "achievement.week1.title", DescriptionKey: "achievement.week1.description", Icon: "⑦", Color: "purple"},
	{DaysRequired: 14, TitleKey: "achievement.week2.title", DescriptionKey: "achievement.week2.description", Icon: "⑭", Color: "orange"},
	{DaysRequired: 30, TitleKey: "achievement.month1.title", DescriptionKey: "achievement.month1.description", Icon: "🌟", Color: "yellow"},
	{DaysRequired: 60, TitleKey: "achievement.month2.title", DescriptionKey: "achievement.month2.description", Icon: "🔥", Color: "red"},
	{DaysRequired: 90, TitleKey: "achievement.month3.title", DescriptionKey: "achievement.month3.description", Icon: "⚡", Color: "cyan"},
	{DaysRequired: 180, TitleKey: "achievement.month6.title", DescriptionKey: "achievement.month6.description", Icon: "🎁", Color: "pink"},
	{DaysRequired: 365, TitleKey: "achievement.year1.title", DescriptionKey: "achievement.year1.description", Icon: "👑", Color: "gold"},
	{DaysRequired: 730, TitleKey: "achievement.year2.title", DescriptionKey: "achievement.year2.description", Icon: "🏆", Color: "silver"},
}

// HealthMilestones returns a copy of the health milestone catalog.
func HealthMilestones() []models.HealthMilestone {
	out := make([]models.HealthMilestone, len(healthMilestones))
	copy(out, healthMilestones)
	return out
}

// Achievements returns a copy of the achievement catalog.
func Achievements() []models.Achievement {
	out := make([]models.Achievement, len(achievements))
	copy(out, achievements)
	return out
}
