package analytics

import (
	"sort"
	"time"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// TopicRate is one labeled topic metric for the dashboard highlights.
type TopicRate struct {
	Topic string  `json:"topic"`
	Value float64 `json:"value"`
}

// DailyProgress is the per-day success/error series drawn on the dashboard.
type DailyProgress struct {
	Date    string `json:"date"`
	Success int    `json:"success"`
	Errors  int    `json:"errors"`
}

// DayActivity is one cell of the weekly activity grid: how many exercises were
// generated on a given date. Weekday is 0=Monday .. 6=Sunday.
type DayActivity struct {
	Date    string `json:"date"`
	Weekday int    `json:"weekday"`
	Count   int    `json:"count"`
}

// Statistics is the learning dashboard panel: overview scalars, topic
// highlights, habit metrics and time series. HasData is false when neither
// attempt nor exercise rows exist; the UI then shows a not-enough-data notice.
type Statistics struct {
	HasData            bool            `json:"has_data"`
	TotalTopics        int             `json:"total_topics"`
	AvgDifficulty      float64         `json:"avg_difficulty"`
	CompletedExercises int             `json:"completed_exercises"`
	SuccessRate        float64         `json:"success_rate"` // percentage
	BestTopic          *TopicRate      `json:"best_topic,omitempty"`
	WorstTopic         *TopicRate      `json:"worst_topic,omitempty"`
	MostAttempted      *TopicRate      `json:"most_attempted,omitempty"`
	LeastAttempted     *TopicRate      `json:"least_attempted,omitempty"`
	CurrentStreak      int             `json:"current_streak"`
	AvgSessionInterval float64         `json:"avg_session_interval"` // days
	DifficultyVariance float64         `json:"difficulty_variance"`
	Daily              []DailyProgress `json:"daily"`
	WeeklyActivity     []DayActivity   `json:"weekly_activity"`
}

// BuildStatistics derives the dashboard panel from raw rows. Unlike the full
// report it keeps the simpler per-topic rates; the two rule sets deliberately
// stay separate.
func (e *Engine) BuildStatistics(attempts []models.AttemptRecord, exercises []models.Exercise) *Statistics {
	stats := &Statistics{}
	if len(attempts) == 0 && len(exercises) == 0 {
		return stats
	}
	stats.HasData = true

	if len(attempts) > 0 {
		topics := make(map[string]bool)
		var success, errors, difficultySum int
		difficulties := make([]float64, 0, len(attempts))
		for _, r := range attempts {
			topics[r.Topic] = true
			success += r.SuccessCount
			errors += r.ErrorCount
			difficultySum += r.DifficultyLevel
			difficulties = append(difficulties, float64(r.DifficultyLevel))
		}
		stats.TotalTopics = len(topics)
		stats.AvgDifficulty = float64(difficultySum) / float64(len(attempts))
		stats.SuccessRate = safeRate(success, success+errors) * 100
		stats.DifficultyVariance = sampleVariance(difficulties)

		stats.BestTopic, stats.WorstTopic, stats.MostAttempted, stats.LeastAttempted = topicHighlights(attempts)
		stats.Daily = dailyProgress(attempts)
	}

	for _, e := range exercises {
		if e.Completed {
			stats.CompletedExercises++
		}
	}

	if len(exercises) > 0 {
		habits := deriveHabits(exercises, e.now())
		stats.CurrentStreak = habits.CurrentStreak
		stats.AvgSessionInterval = avgSessionInterval(exercises)
		stats.WeeklyActivity = weeklyActivity(exercises)
	}

	return stats
}

// topicHighlights picks the best/worst success rates and the most/least
// attempted topics. Ties resolve to the lexicographically first topic so the
// result is stable.
func topicHighlights(attempts []models.AttemptRecord) (best, worst, most, least *TopicRate) {
	type totals struct{ success, attempts int }
	byTopic := make(map[string]*totals)
	for _, r := range attempts {
		t := byTopic[r.Topic]
		if t == nil {
			t = &totals{}
			byTopic[r.Topic] = t
		}
		t.success += r.SuccessCount
		t.attempts += r.SuccessCount + r.ErrorCount
	}

	topics := make([]string, 0, len(byTopic))
	for topic := range byTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		t := byTopic[topic]
		rate := safeRate(t.success, t.attempts) * 100
		if best == nil || rate > best.Value {
			best = &TopicRate{Topic: topic, Value: rate}
		}
		if worst == nil || rate < worst.Value {
			worst = &TopicRate{Topic: topic, Value: rate}
		}
		count := float64(t.attempts)
		if most == nil || count > most.Value {
			most = &TopicRate{Topic: topic, Value: count}
		}
		if least == nil || count < least.Value {
			least = &TopicRate{Topic: topic, Value: count}
		}
	}
	return best, worst, most, least
}

// dailyProgress sums successes and errors per practice day. Rows without a
// usable timestamp are skipped here but still count in the overview scalars.
func dailyProgress(attempts []models.AttemptRecord) []DailyProgress {
	byDate := make(map[string]*DailyProgress)
	for _, r := range attempts {
		if r.LastPracticed == nil {
			continue
		}
		date := r.LastPracticed.Format("2006-01-02")
		d := byDate[date]
		if d == nil {
			d = &DailyProgress{Date: date}
			byDate[date] = d
		}
		d.Success += r.SuccessCount
		d.Errors += r.ErrorCount
	}

	daily := make([]DailyProgress, 0, len(byDate))
	for _, d := range byDate {
		daily = append(daily, *d)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })
	return daily
}

func avgSessionInterval(exercises []models.Exercise) float64 {
	daySet := make(map[string]bool)
	for _, e := range exercises {
		daySet[e.CreatedAt.Format("2006-01-02")] = true
	}
	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)
	if len(days) < 2 {
		return 0
	}

	var sum float64
	for i := 1; i < len(days); i++ {
		prev, _ := time.Parse("2006-01-02", days[i-1])
		cur, _ := time.Parse("2006-01-02", days[i])
		sum += cur.Sub(prev).Hours() / 24
	}
	return sum / float64(len(days)-1)
}

func weeklyActivity(exercises []models.Exercise) []DayActivity {
	byDate := make(map[string]int)
	for _, e := range exercises {
		byDate[e.CreatedAt.Format("2006-01-02")]++
	}

	cells := make([]DayActivity, 0, len(byDate))
	for date, count := range byDate {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		// time.Weekday starts at Sunday; shift so Monday is 0.
		weekday := (int(d.Weekday()) + 6) % 7
		cells = append(cells, DayActivity{Date: date, Weekday: weekday, Count: count})
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Date < cells[j].Date })
	return cells
}
