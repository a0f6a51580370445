package analytics

// Risk scoring accumulates points across independent factors instead of
// thresholding a single metric. The constants are hand-tuned and preserved
// exactly; do not "improve" them, behavior parity is the contract.

const (
	riskTierHigh   = 5 // score >= 5 -> Alto
	riskTierMedium = 3 // score >= 3 -> Medio

	lowSampleAttempts = 5 // below this, the sample is too small to trust
)

// riskScore computes the accumulated risk points for an aggregate whose
// success rate, difficulty and trend are already filled in.
func riskScore(t TopicAggregate) int {
	score := 0

	switch {
	case t.SuccessRate < 0.30:
		score += 3
	case t.SuccessRate < 0.50:
		score += 2
	case t.SuccessRate < 0.70:
		score += 1
	}

	switch {
	case t.AvgDifficulty > 4:
		score += 2
	case t.AvgDifficulty > 3:
		score += 1
	}

	if t.TotalAttempts < lowSampleAttempts {
		score++
	}

	switch t.TemporalTrend {
	case TrendWorsening:
		score += 2
	case TrendInsufficient:
		score++
	}

	return score
}

func riskTier(score int) RiskTier {
	switch {
	case score >= riskTierHigh:
		return RiskHigh
	case score >= riskTierMedium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// weightedScore is the continuous urgency metric used to rank topics. It is
// independent of the discrete tier: higher means more urgent.
func weightedScore(t TopicAggregate) float64 {
	score := (1-t.SuccessRate)*0.5 + (t.AvgDifficulty/5)*0.2
	if t.TemporalTrend == TrendWorsening {
		score += 0.2
	}
	if t.TotalAttempts < lowSampleAttempts {
		score += 0.1
	}
	return score
}
