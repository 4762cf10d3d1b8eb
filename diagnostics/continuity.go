package diagnostics

import "math"

const (
	// TrendThreshold is the slope magnitude above which a history is
	// classified as rising or falling.
	TrendThreshold = 0.01

	// MaxOscillation is the highest oscillation index ValidateContinuity
	// accepts.
	MaxOscillation = 0.5
)

// CycleRecord is one step of a dream-cycle history.
type CycleRecord struct {
	CycleID     uint64
	Coherence   float64
	EnergyTotal float64
	DeltaE      float64
}

// ContinuityMetrics describes the coherence trajectory of a history.
type ContinuityMetrics struct {
	Slope            float64 // least-squares slope of coherence over CycleID
	Stdev            float64 // population standard deviation of coherence
	OscillationIndex float64 // direction reversals per step, in [0, 1]
	TrendClass       int8    // +1 rising, -1 falling, 0 flat
}

// ContinuityFromHistory fits a linear trend to the coherence of history and
// counts direction reversals between consecutive steps. Steps whose change
// is within epsilon neither count as a reversal nor reset the last seen
// direction.
func ContinuityFromHistory(history []CycleRecord) ContinuityMetrics {
	if len(history) == 0 {
		return ContinuityMetrics{}
	}

	n := float64(len(history))
	var sumX, sumY float64
	for _, rec := range history {
		sumX += float64(rec.CycleID)
		sumY += rec.Coherence
	}
	meanX, meanY := sumX/n, sumY/n

	var num, den, variance float64
	for _, rec := range history {
		dx := float64(rec.CycleID) - meanX
		dy := rec.Coherence - meanY
		num += dx * dy
		den += dx * dx
		variance += dy * dy
	}

	flips := 0
	prev := 0
	for i := 1; i < len(history); i++ {
		sign := direction(history[i].Coherence - history[i-1].Coherence)
		if sign == 0 {
			continue
		}
		if prev != 0 && sign != prev {
			flips++
		}
		prev = sign
	}

	m := ContinuityMetrics{Stdev: math.Sqrt(variance / n)}
	if math.Abs(den) > epsilon {
		m.Slope = num / den
	}
	if len(history) > 1 {
		m.OscillationIndex = float64(flips) / float64(len(history)-1)
	}
	switch {
	case m.Slope > TrendThreshold:
		m.TrendClass = 1
	case m.Slope < -TrendThreshold:
		m.TrendClass = -1
	}

	return m
}

// ValidateContinuity reports whether history is free of excessive
// oscillation.
func ValidateContinuity(history []CycleRecord) bool {
	return ContinuityFromHistory(history).OscillationIndex <= MaxOscillation
}

func direction(diff float64) int {
	switch {
	case math.Abs(diff) <= epsilon:
		return 0
	case diff > 0:
		return 1
	default:
		return -1
	}
}
