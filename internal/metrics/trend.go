package metrics

// Trend classifies the direction of an ordered numeric series.
type Trend string

const (
	TrendIncreasing   Trend = "increasing"
	TrendDecreasing   Trend = "decreasing"
	TrendStable       Trend = "stable"
	TrendInsufficient Trend = "insufficient_data"
)

// trendThresholdPct is the percent change beyond which a series counts as
// moving rather than stable.
const trendThresholdPct = 5.0

// ClassifyTrend splits the series at the midpoint, compares half means, and
// classifies the percent change of the second half relative to the first.
// A zero first-half mean counts as zero change, avoiding division by zero.
// Series shorter than two observations yield TrendInsufficient — never a
// guessed direction.
func ClassifyTrend(series []float64) Trend {
	if len(series) < 2 {
		return TrendInsufficient
	}
	mid := len(series) / 2
	firstHalf := mean(series[:mid])
	secondHalf := mean(series[mid:])

	changePct := 0.0
	if firstHalf != 0 {
		changePct = (secondHalf - firstHalf) / firstHalf * 100
	}
	switch {
	case changePct > trendThresholdPct:
		return TrendIncreasing
	case changePct < -trendThresholdPct:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
