package analytics

import (
	"sort"
	"time"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// AggregateTopics reduces raw attempt records into one enriched aggregate per
// distinct topic. The result is sorted by topic name so repeated runs over the
// same input (in any order) produce identical output.
func AggregateTopics(records []models.AttemptRecord) []TopicAggregate {
	byTopic := make(map[string][]models.AttemptRecord)
	for _, r := range records {
		byTopic[r.Topic] = append(byTopic[r.Topic], r)
	}

	topics := make([]TopicAggregate, 0, len(byTopic))
	for topic, group := range byTopic {
		agg := TopicAggregate{
			Topic:         topic,
			AttemptsCount: len(group),
			MaxDifficulty: group[0].DifficultyLevel,
			MinDifficulty: group[0].DifficultyLevel,
		}

		var difficultySum int
		for _, r := range group {
			agg.TotalSuccess += r.SuccessCount
			agg.TotalErrors += r.ErrorCount
			difficultySum += r.DifficultyLevel
			if r.DifficultyLevel > agg.MaxDifficulty {
				agg.MaxDifficulty = r.DifficultyLevel
			}
			if r.DifficultyLevel < agg.MinDifficulty {
				agg.MinDifficulty = r.DifficultyLevel
			}
		}

		agg.TotalAttempts = agg.TotalSuccess + agg.TotalErrors
		agg.AvgDifficulty = float64(difficultySum) / float64(len(group))
		agg.DifficultyRange = agg.MaxDifficulty - agg.MinDifficulty
		agg.SuccessRate = safeRate(agg.TotalSuccess, agg.TotalAttempts)
		agg.ErrorRate = 1 - agg.SuccessRate
		agg.TemporalTrend = ClassifyTrend(group)
		agg.RiskScore = riskScore(agg)
		agg.Risk = riskTier(agg.RiskScore)
		agg.WeightedScore = weightedScore(agg)
		agg.Recommendations = topicRecommendations(agg)

		topics = append(topics, agg)
	}

	sort.Slice(topics, func(i, j int) bool { return topics[i].Topic < topics[j].Topic })
	return topics
}

// aggregateCourses builds one aggregate per subscribed course. Courses with no
// attempt rows are reported with HasData=false instead of a zero-value row.
func aggregateCourses(snap Snapshot, now time.Time) []CourseAggregate {
	subjectNames := make(map[string]string, len(snap.Subjects))
	for _, s := range snap.Subjects {
		subjectNames[s.ID] = s.Name
	}

	attemptsByCourse := make(map[string][]models.AttemptRecord)
	for _, r := range snap.Attempts {
		attemptsByCourse[r.SubjectID] = append(attemptsByCourse[r.SubjectID], r)
	}
	exercisesByCourse := make(map[string][]models.Exercise)
	for _, e := range snap.Exercises {
		exercisesByCourse[e.SubjectID] = append(exercisesByCourse[e.SubjectID], e)
	}
	chatsByCourse := make(map[string]int)
	for _, s := range snap.ChatSessions {
		chatsByCourse[s.SubjectID]++
	}

	// Walk subscriptions in a deterministic order, skipping duplicates.
	seen := make(map[string]bool)
	courseIDs := make([]string, 0, len(snap.Subscriptions))
	for _, sub := range snap.Subscriptions {
		id := sub.SubjectID
		if id == "" && sub.Subject.ID != "" {
			id = sub.Subject.ID
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		courseIDs = append(courseIDs, id)
		if _, ok := subjectNames[id]; !ok && sub.Subject.Name != "" {
			subjectNames[id] = sub.Subject.Name
		}
	}
	sort.Strings(courseIDs)

	courses := make([]CourseAggregate, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		name := subjectNames[courseID]
		if name == "" {
			name = "Curso desconocido"
		}

		attempts := attemptsByCourse[courseID]
		course := CourseAggregate{
			CourseID:   courseID,
			CourseName: name,
		}
		if len(attempts) == 0 {
			courses = append(courses, course)
			continue
		}

		course.HasData = true
		var success, total, difficultySum int
		topics := make(map[string]bool)
		var lastPractice *time.Time
		for _, r := range attempts {
			success += r.SuccessCount
			total += r.SuccessCount + r.ErrorCount
			difficultySum += r.DifficultyLevel
			topics[r.Topic] = true
			if r.LastPracticed != nil && (lastPractice == nil || r.LastPracticed.After(*lastPractice)) {
				lastPractice = r.LastPracticed
			}
		}

		course.TotalAttempts = total
		course.SuccessRate = safeRate(success, total) * 100
		course.AvgDifficulty = float64(difficultySum) / float64(len(attempts))
		course.UniqueTopics = len(topics)

		for _, e := range exercisesByCourse[courseID] {
			course.ExercisesCount++
			if e.Completed {
				course.CompletedExercises++
			}
		}

		if lastPractice != nil {
			days := int(now.Sub(*lastPractice).Hours() / 24)
			course.DaysSincePractice = &days
		}

		course.ChatSessions = chatsByCourse[courseID]
		course.Recommendations = courseRecommendations(course)

		courses = append(courses, course)
	}

	return courses
}

// safeRate divides success by total, defining division by zero as 0.
func safeRate(success, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(success) / float64(total)
}
