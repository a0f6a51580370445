package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

func TestBuildStatisticsEmpty(t *testing.T) {
	engine := NewEngine()
	stats := engine.BuildStatistics(nil, nil)
	require.NotNil(t, stats)
	assert.False(t, stats.HasData)
}

func TestBuildStatisticsOverview(t *testing.T) {
	now := time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC)
	engine := fixedEngine(now)

	attempts := []models.AttemptRecord{
		record("A", 8, 2, 2),
		record("A", 4, 6, 4),
		record("B", 3, 7, 3),
	}
	exercises := []models.Exercise{
		{Completed: true, CreatedAt: now},
		{CreatedAt: now.AddDate(0, 0, -1)},
	}

	stats := engine.BuildStatistics(attempts, exercises)
	assert.True(t, stats.HasData)
	assert.Equal(t, 2, stats.TotalTopics)
	assert.InDelta(t, 3.0, stats.AvgDifficulty, 1e-9)
	assert.Equal(t, 1, stats.CompletedExercises)
	assert.InDelta(t, 50.0, stats.SuccessRate, 1e-9) // 15 of 30

	require.NotNil(t, stats.BestTopic)
	assert.Equal(t, "A", stats.BestTopic.Topic)
	assert.InDelta(t, 60.0, stats.BestTopic.Value, 1e-9)
	require.NotNil(t, stats.WorstTopic)
	assert.Equal(t, "B", stats.WorstTopic.Topic)
	require.NotNil(t, stats.MostAttempted)
	assert.Equal(t, "A", stats.MostAttempted.Topic)
	assert.InDelta(t, 20, stats.MostAttempted.Value, 1e-9)
	require.NotNil(t, stats.LeastAttempted)
	assert.Equal(t, "B", stats.LeastAttempted.Topic)

	// Sample variance of difficulties 2, 4, 3.
	assert.InDelta(t, 1.0, stats.DifficultyVariance, 1e-9)

	assert.Equal(t, 2, stats.CurrentStreak)
	assert.InDelta(t, 1.0, stats.AvgSessionInterval, 1e-9)
}

func TestBuildStatisticsDailyProgress(t *testing.T) {
	engine := NewEngine()
	day1 := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	attempts := []models.AttemptRecord{
		attemptAt("A", 3, 1, day2),
		attemptAt("A", 2, 2, day1),
		attemptAt("B", 1, 0, day1),
		record("C", 9, 9, 3), // no timestamp, excluded from the series
	}

	stats := engine.BuildStatistics(attempts, nil)
	require.Len(t, stats.Daily, 2)
	assert.Equal(t, DailyProgress{Date: "2026-06-01", Success: 3, Errors: 2}, stats.Daily[0])
	assert.Equal(t, DailyProgress{Date: "2026-06-02", Success: 3, Errors: 1}, stats.Daily[1])
}

func TestBuildStatisticsWeeklyActivity(t *testing.T) {
	engine := NewEngine()
	// 2026-06-01 is a Monday.
	monday := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	exercises := []models.Exercise{
		{CreatedAt: monday},
		{CreatedAt: monday.Add(2 * time.Hour)},
		{CreatedAt: monday.AddDate(0, 0, 6)}, // Sunday
	}

	stats := engine.BuildStatistics(nil, exercises)
	require.Len(t, stats.WeeklyActivity, 2)
	assert.Equal(t, DayActivity{Date: "2026-06-01", Weekday: 0, Count: 2}, stats.WeeklyActivity[0])
	assert.Equal(t, DayActivity{Date: "2026-06-07", Weekday: 6, Count: 1}, stats.WeeklyActivity[1])
}
