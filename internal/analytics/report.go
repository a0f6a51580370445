package analytics

import (
	"sort"
	"time"
)

// Engine turns a materialized snapshot into a performance report. It holds no
// state besides the clock, so one engine can serve concurrent invocations for
// different users; identical snapshots yield identical reports.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineAt pins the engine clock, which makes streak and recency
// computations reproducible.
func NewEngineAt(now func() time.Time) *Engine {
	return &Engine{now: now}
}

const (
	worstTopicsLimit = 3
	bestTopicsLimit  = 2
)

// BuildReport runs the full pipeline: aggregate, classify, score, recommend.
// An empty attempt set is a valid terminal state: the report comes back with
// HasSufficientData=false and only the summary populated.
func (e *Engine) BuildReport(snap Snapshot) *Report {
	now := e.now()

	report := &Report{
		UserID:      snap.UserID,
		GeneratedAt: now,
		Summary:     buildSummary(snap),
	}

	if len(snap.Attempts) == 0 {
		return report
	}
	report.HasSufficientData = true

	report.Habits = deriveHabits(snap.Exercises, now)
	report.Topics = AggregateTopics(snap.Attempts)
	report.WorstTopics = rankByWeightedScore(report.Topics, true, worstTopicsLimit)
	report.BestTopics = rankByWeightedScore(report.Topics, false, bestTopicsLimit)
	report.TopicsByRisk = groupByRisk(report.Topics)

	courses := aggregateCourses(snap, now)
	for _, c := range courses {
		if c.HasData {
			report.PracticedCourses = append(report.PracticedCourses, c)
		} else {
			report.UnpracticedCourses = append(report.UnpracticedCourses, c)
		}
	}
	// Practiced courses list worst first, same as the rendered report.
	sort.SliceStable(report.PracticedCourses, func(i, j int) bool {
		return report.PracticedCourses[i].SuccessRate < report.PracticedCourses[j].SuccessRate
	})
	if len(report.UnpracticedCourses) > 0 {
		report.UnpracticedAdvice = unpracticedCourseAdvice()
	}

	report.GeneralAdvice = generalAdvice(report.Habits, report.Topics)
	return report
}

func buildSummary(snap Snapshot) Summary {
	s := Summary{
		TotalSessions:  len(snap.ChatSessions),
		TotalExercises: len(snap.Exercises),
	}
	for _, e := range snap.Exercises {
		if e.Completed {
			s.CompletedExercises++
		}
	}
	if s.TotalExercises > 0 {
		s.CompletionRate = float64(s.CompletedExercises) / float64(s.TotalExercises) * 100
	}
	return s
}

// rankByWeightedScore returns up to limit topics ordered by urgency. The input
// slice is already topic-sorted, which keeps ties deterministic.
func rankByWeightedScore(topics []TopicAggregate, worstFirst bool, limit int) []TopicAggregate {
	ranked := make([]TopicAggregate, len(topics))
	copy(ranked, topics)
	sort.SliceStable(ranked, func(i, j int) bool {
		if worstFirst {
			return ranked[i].WeightedScore > ranked[j].WeightedScore
		}
		return ranked[i].WeightedScore < ranked[j].WeightedScore
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// groupByRisk buckets topics per tier. Alto and Medio sort most urgent first;
// Bajo sorts least urgent first, matching the rendered section order.
func groupByRisk(topics []TopicAggregate) map[RiskTier][]TopicAggregate {
	groups := make(map[RiskTier][]TopicAggregate)
	for _, t := range topics {
		groups[t.Risk] = append(groups[t.Risk], t)
	}
	for tier, group := range groups {
		ascending := tier == RiskLow
		sort.SliceStable(group, func(i, j int) bool {
			if ascending {
				return group[i].WeightedScore < group[j].WeightedScore
			}
			return group[i].WeightedScore > group[j].WeightedScore
		})
		groups[tier] = group
	}
	return groups
}
