package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

func attemptAt(topic string, success, errors int, t time.Time) models.AttemptRecord {
	return models.AttemptRecord{
		Topic:           topic,
		DifficultyLevel: 3,
		SuccessCount:    success,
		ErrorCount:      errors,
		LastPracticed:   &t,
	}
}

func TestClassifyTrendImproving(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	// 4 earlier attempts at 0.5, 4 recent at 1.0: diff = 0.5 > 0.15.
	var records []models.AttemptRecord
	for i := 0; i < 4; i++ {
		records = append(records, attemptAt("A", 1, 1, base.AddDate(0, 0, i)))
	}
	for i := 4; i < 8; i++ {
		records = append(records, attemptAt("A", 2, 0, base.AddDate(0, 0, i)))
	}

	assert.Equal(t, TrendImproving, ClassifyTrend(records))
}

func TestClassifyTrendSymmetric(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	improving := []models.AttemptRecord{
		attemptAt("A", 1, 9, base),
		attemptAt("A", 9, 1, base.AddDate(0, 0, 1)),
	}
	worsening := []models.AttemptRecord{
		attemptAt("A", 9, 1, base),
		attemptAt("A", 1, 9, base.AddDate(0, 0, 1)),
	}

	assert.Equal(t, TrendImproving, ClassifyTrend(improving))
	assert.Equal(t, TrendWorsening, ClassifyTrend(worsening))
}

func TestClassifyTrendBoundaryIsStable(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	// Older half 0.50, recent half 0.65: diff is exactly 0.15, which must not
	// count as improving (boundary is exclusive).
	records := []models.AttemptRecord{
		attemptAt("A", 50, 50, base),
		attemptAt("A", 65, 35, base.AddDate(0, 0, 1)),
	}
	assert.Equal(t, TrendStable, ClassifyTrend(records))

	// And the mirror image must not count as worsening.
	records = []models.AttemptRecord{
		attemptAt("A", 65, 35, base),
		attemptAt("A", 50, 50, base.AddDate(0, 0, 1)),
	}
	assert.Equal(t, TrendStable, ClassifyTrend(records))
}

func TestClassifyTrendInsufficient(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, TrendInsufficient, ClassifyTrend(nil))
	assert.Equal(t, TrendInsufficient, ClassifyTrend([]models.AttemptRecord{
		attemptAt("A", 5, 5, base),
	}))

	// Records without timestamps are unusable for the split even when the
	// total count is >= 2.
	noDate := models.AttemptRecord{Topic: "A", DifficultyLevel: 3, SuccessCount: 5, ErrorCount: 5}
	assert.Equal(t, TrendInsufficient, ClassifyTrend([]models.AttemptRecord{
		noDate, noDate, attemptAt("A", 5, 5, base),
	}))
}

func TestClassifyTrendIgnoresUnsortableRecords(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	noDate := models.AttemptRecord{Topic: "A", DifficultyLevel: 3, SuccessCount: 0, ErrorCount: 100}

	// The timestamped pair improves sharply; the undated failure row must not
	// drag the classification down.
	records := []models.AttemptRecord{
		noDate,
		attemptAt("A", 1, 9, base),
		attemptAt("A", 9, 1, base.AddDate(0, 0, 1)),
	}
	assert.Equal(t, TrendImproving, ClassifyTrend(records))
}

func TestClassifyTrendZeroSignalHalves(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	// A half with zero total attempts has rate 0 by convention, never an error.
	records := []models.AttemptRecord{
		attemptAt("A", 0, 0, base),
		attemptAt("A", 8, 2, base.AddDate(0, 0, 1)),
	}
	assert.Equal(t, TrendImproving, ClassifyTrend(records))
}
