package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func history(coherence ...float64) []CycleRecord {
	out := make([]CycleRecord, len(coherence))
	for i, c := range coherence {
		out[i] = CycleRecord{CycleID: uint64(i), Coherence: c, EnergyTotal: 1}
	}

	return out
}

func TestContinuityFromHistory_Rising(t *testing.T) {
	m := ContinuityFromHistory(history(0.60, 0.62, 0.64, 0.67))

	require.InDelta(t, 0.023, m.Slope, 1e-9)
	require.Positive(t, m.Stdev)
	require.Equal(t, 0.0, m.OscillationIndex)
	require.Equal(t, int8(1), m.TrendClass)
	require.True(t, ValidateContinuity(history(0.60, 0.62, 0.64, 0.67)))
}

func TestContinuityFromHistory_Oscillating(t *testing.T) {
	h := history(0.6, 0.8, 0.4, 0.9)
	m := ContinuityFromHistory(h)

	require.InDelta(t, 2.0/3.0, m.OscillationIndex, 1e-12)
	require.False(t, ValidateContinuity(h))
}

func TestContinuityFromHistory_FallingAndFlat(t *testing.T) {
	require.Equal(t, int8(-1), ContinuityFromHistory(history(0.9, 0.7, 0.5)).TrendClass)

	flat := ContinuityFromHistory(history(0.5, 0.5, 0.5))
	require.Equal(t, int8(0), flat.TrendClass)
	require.Equal(t, 0.0, flat.Slope)
	require.Equal(t, 0.0, flat.Stdev)
	require.Equal(t, 0.0, flat.OscillationIndex)
}

func TestContinuityFromHistory_PlateauDoesNotResetDirection(t *testing.T) {
	// up, flat, down: one reversal across the plateau.
	m := ContinuityFromHistory(history(0.1, 0.2, 0.2, 0.1))
	require.InDelta(t, 1.0/3.0, m.OscillationIndex, 1e-12)
}

func TestContinuityFromHistory_Degenerate(t *testing.T) {
	require.Equal(t, ContinuityMetrics{}, ContinuityFromHistory(nil))

	one := ContinuityFromHistory(history(0.7))
	require.Equal(t, 0.0, one.Slope)
	require.Equal(t, 0.0, one.OscillationIndex)
	require.True(t, ValidateContinuity(nil))

	// Repeated cycle ids leave the regression undefined: slope 0.
	same := []CycleRecord{{CycleID: 3, Coherence: 0.1}, {CycleID: 3, Coherence: 0.9}}
	require.Equal(t, 0.0, ContinuityFromHistory(same).Slope)
}
