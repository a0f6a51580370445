package analytics

import (
	"sort"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// trendThreshold is the exclusive boundary on the success-rate delta between
// the recent and older halves of a topic's history. Hand-tuned; kept as-is for
// behavior parity with the production report.
const trendThreshold = 0.15

// ClassifyTrend labels a topic's trajectory by splitting its timestamped
// history at the midpoint and comparing the success rates of both halves.
// Records without a usable timestamp are ignored here; they still count in the
// aggregate totals. Fewer than 2 usable records, or an empty half, yields
// TrendInsufficient.
func ClassifyTrend(records []models.AttemptRecord) Trend {
	usable := make([]models.AttemptRecord, 0, len(records))
	for _, r := range records {
		if r.LastPracticed != nil {
			usable = append(usable, r)
		}
	}
	if len(usable) < 2 {
		return TrendInsufficient
	}

	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].LastPracticed.Before(*usable[j].LastPracticed)
	})

	mid := len(usable) / 2
	older := usable[:mid]
	recent := usable[mid:]
	if len(older) == 0 || len(recent) == 0 {
		return TrendInsufficient
	}

	diff := halfSuccessRate(recent) - halfSuccessRate(older)
	switch {
	case diff > trendThreshold:
		return TrendImproving
	case diff < -trendThreshold:
		return TrendWorsening
	default:
		return TrendStable
	}
}

func halfSuccessRate(records []models.AttemptRecord) float64 {
	var success, total int
	for _, r := range records {
		success += r.SuccessCount
		total += r.SuccessCount + r.ErrorCount
	}
	if total == 0 {
		return 0
	}
	return float64(success) / float64(total)
}
