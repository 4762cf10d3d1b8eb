package diagnostics

import (
	"github.com/arloliu/chromacore/errs"
	"github.com/arloliu/chromacore/internal/hash"
	"github.com/arloliu/chromacore/tensor"
)

// MetricsSnapshot bundles the metrics of one run for cross-run comparison.
type MetricsSnapshot struct {
	Chromatic  ChromaticDelta
	Spectral   SpectralStats
	Continuity ContinuityMetrics
}

// NewSnapshot computes a snapshot from a tensor pair, a spectrum and a cycle
// history.
func NewSnapshot(a, b *tensor.Chromatic, s *tensor.Spectral, history []CycleRecord) MetricsSnapshot {
	return MetricsSnapshot{
		Chromatic:  ComputeDeltaHSL(a, b),
		Spectral:   SpectralEnergyBalance(s),
		Continuity: ContinuityFromHistory(history),
	}
}

// floats lists the snapshot's float fields in a fixed order.
func (m *MetricsSnapshot) floats() [11]float64 {
	return [11]float64{
		m.Chromatic.DeltaH, m.Chromatic.DeltaS, m.Chromatic.DeltaL, m.Chromatic.Magnitude,
		m.Spectral.EnergyTotal, m.Spectral.EnergyDrift, m.Spectral.Centroid, m.Spectral.Coherence,
		m.Continuity.Slope, m.Continuity.Stdev, m.Continuity.OscillationIndex,
	}
}

// ValidateDeterminism reports whether a and b are identical.
//
// Floats are compared by canonical bit pattern, so NaN equals NaN and -0
// equals +0. No tolerance is applied.
func ValidateDeterminism(a, b *MetricsSnapshot) bool {
	if a.Continuity.TrendClass != b.Continuity.TrendClass {
		return false
	}

	fa, fb := a.floats(), b.floats()
	for i := range fa {
		if hash.CanonicalBits(fa[i]) != hash.CanonicalBits(fb[i]) {
			return false
		}
	}

	return true
}

// CheckDeterminism is ValidateDeterminism in error form. The returned error
// wraps errs.ErrDeterminismMismatch and carries both fingerprints.
func CheckDeterminism(a, b *MetricsSnapshot) error {
	if ValidateDeterminism(a, b) {
		return nil
	}

	return errs.Newf(errs.KindDiagnostics, "validate determinism", "%w: %#016x != %#016x",
		errs.ErrDeterminismMismatch, Fingerprint(a), Fingerprint(b))
}

// Fingerprint hashes the snapshot over canonical float bits. Snapshots that
// pass ValidateDeterminism have equal fingerprints.
func Fingerprint(m *MetricsSnapshot) uint64 {
	h := hash.NewHasher()
	fs := m.floats()
	for _, v := range fs {
		h.Float64(v)
	}
	h.Uint64(uint64(int64(m.Continuity.TrendClass)))

	return h.Sum64()
}
