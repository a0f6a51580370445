package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicRecommendationsOrder(t *testing.T) {
	agg := TopicAggregate{
		SuccessRate:     0.30,
		TotalAttempts:   25,
		AvgDifficulty:   4.5,
		TemporalTrend:   TrendWorsening,
		DifficultyRange: 3,
	}

	recs := topicRecommendations(agg)
	require.Len(t, recs, 5)
	assert.Contains(t, recs[0], "Revisa los conceptos fundamentales")
	assert.Contains(t, recs[1], "Reduce temporalmente la dificultad")
	assert.Contains(t, recs[2], "tu rendimiento está disminuyendo")
	assert.Contains(t, recs[3], "mucha variación en la dificultad")
	assert.Contains(t, recs[4], "chat con tutor")
}

func TestTopicRecommendationsLowRateSmallSample(t *testing.T) {
	agg := TopicAggregate{SuccessRate: 0.2, TotalAttempts: 3, AvgDifficulty: 2, TemporalTrend: TrendStable}

	recs := topicRecommendations(agg)
	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "Necesitas más práctica")
}

func TestTopicRecommendationsFallbacks(t *testing.T) {
	mastered := TopicAggregate{SuccessRate: 0.85, TotalAttempts: 12, AvgDifficulty: 3, TemporalTrend: TrendStable}
	recs := topicRecommendations(mastered)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Excelente dominio")

	middling := TopicAggregate{SuccessRate: 0.65, TotalAttempts: 12, AvgDifficulty: 3, TemporalTrend: TrendStable}
	recs = topicRecommendations(middling)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Continúa practicando regularmente")
}

func TestTopicRecommendationsImproving(t *testing.T) {
	agg := TopicAggregate{SuccessRate: 0.75, TotalAttempts: 12, AvgDifficulty: 3, TemporalTrend: TrendImproving}

	recs := topicRecommendations(agg)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Buen progreso")
}

func TestCourseRecommendationsCap(t *testing.T) {
	days := 20
	course := CourseAggregate{
		HasData:            true,
		SuccessRate:        30,
		AvgDifficulty:      4.5,
		DaysSincePractice:  &days,
		UniqueTopics:       1,
		ExercisesCount:     10,
		CompletedExercises: 2,
		ChatSessions:       0,
	}

	recs := courseRecommendations(course)
	require.Len(t, recs, maxCourseRecommendations)
	// Cap keeps the most specific rules, which run first.
	assert.Contains(t, recs[0], "Tasa de éxito baja (30.0%)")
	assert.Contains(t, recs[1], "Dificultad muy alta")
	assert.Contains(t, recs[2], "No has practicado este curso en 20 días")
}

func TestCourseRecommendationsSingleRule(t *testing.T) {
	course := CourseAggregate{
		HasData:       true,
		SuccessRate:   85,
		AvgDifficulty: 3,
		UniqueTopics:  5,
		ChatSessions:  2,
	}

	recs := courseRecommendations(course)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Excelente desempeño (85.0%)")
}

func TestCourseRecommendationsRecentPractice(t *testing.T) {
	days := 9
	course := CourseAggregate{
		HasData:           true,
		SuccessRate:       75,
		AvgDifficulty:     3,
		UniqueTopics:      4,
		DaysSincePractice: &days,
	}

	recs := courseRecommendations(course)
	require.Len(t, recs, 2)
	assert.Contains(t, recs[1], "Hace 9 días que no practicas")
}

func TestUnpracticedCourseAdvice(t *testing.T) {
	advice := unpracticedCourseAdvice()
	require.Len(t, advice, 4)
	assert.True(t, strings.HasPrefix(advice[0], "Inicia tu aprendizaje"))
	assert.True(t, strings.HasPrefix(advice[3], "Comienza con dificultad baja"))
}

func TestGeneralAdvicePatterns(t *testing.T) {
	habits := StudyHabits{CurrentStreak: 1, Frequency: FrequencyLow, Consistency: ConsistencyIrregular}
	topics := []TopicAggregate{
		{Risk: RiskHigh}, {Risk: RiskHigh}, {Risk: RiskHigh},
		{Risk: RiskLow, TemporalTrend: TrendImproving},
	}

	recs := generalAdvice(habits, topics)
	require.Len(t, recs, 5)
	assert.Contains(t, recs[0], "Aumenta la frecuencia de estudio")
	assert.Contains(t, recs[1], "horario fijo de estudio")
	assert.Contains(t, recs[2], "racha de estudio")
	assert.Contains(t, recs[3], "3 temas de alta prioridad")
	assert.Contains(t, recs[4], "1 tema(s) muestran mejora continua")
}

func TestGeneralAdviceFallback(t *testing.T) {
	habits := StudyHabits{CurrentStreak: 5, Frequency: FrequencyHigh, Consistency: ConsistencyVeryRegular}
	topics := []TopicAggregate{{Risk: RiskLow, TemporalTrend: TrendStable}}

	recs := generalAdvice(habits, topics)
	require.Len(t, recs, 3)
	assert.Contains(t, recs[0], "rutina actual")
}
