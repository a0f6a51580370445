package analytics

import (
	"sort"
	"time"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// Study frequency labels, derived from the average interval between distinct
// practice days.
const (
	FrequencyHigh     = "alta"
	FrequencyModerate = "moderada"
	FrequencyLow      = "baja"
)

// Study consistency labels, derived from the variance of those intervals.
const (
	ConsistencyVeryRegular = "muy regular"
	ConsistencyRegular     = "regular"
	ConsistencyIrregular   = "irregular"
)

// deriveHabits computes streak, frequency and consistency from the dates on
// which exercises were generated. With fewer than two distinct days the
// cadence defaults stay in place ("moderada"/"regular").
func deriveHabits(exercises []models.Exercise, now time.Time) StudyHabits {
	habits := StudyHabits{
		Frequency:   FrequencyModerate,
		Consistency: ConsistencyRegular,
	}
	if len(exercises) == 0 {
		return habits
	}

	daySet := make(map[string]bool)
	for _, e := range exercises {
		daySet[e.CreatedAt.Format("2006-01-02")] = true
	}

	// Streak: consecutive days with activity, counting back from today.
	day := now
	for daySet[day.Format("2006-01-02")] {
		habits.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}

	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)
	if len(days) < 2 {
		return habits
	}

	intervals := make([]float64, 0, len(days)-1)
	var sum float64
	for i := 1; i < len(days); i++ {
		prev, _ := time.Parse("2006-01-02", days[i-1])
		cur, _ := time.Parse("2006-01-02", days[i])
		gap := cur.Sub(prev).Hours() / 24
		intervals = append(intervals, gap)
		sum += gap
	}
	avg := sum / float64(len(intervals))

	switch {
	case avg <= 2:
		habits.Frequency = FrequencyHigh
	case avg <= 5:
		habits.Frequency = FrequencyModerate
	default:
		habits.Frequency = FrequencyLow
	}

	if len(intervals) > 1 {
		variance := sampleVariance(intervals)
		switch {
		case variance < 5:
			habits.Consistency = ConsistencyVeryRegular
		case variance < 15:
			habits.Consistency = ConsistencyRegular
		default:
			habits.Consistency = ConsistencyIrregular
		}
	} else {
		habits.Consistency = ConsistencyVeryRegular
	}

	return habits
}

// sampleVariance is the n-1 variance, matching how the cadence thresholds were
// tuned.
func sampleVariance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return sq / float64(len(values)-1)
}
