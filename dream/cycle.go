package dream

import (
	"github.com/arloliu/chromacore/diagnostics"
	"github.com/arloliu/chromacore/internal/observe"
	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

const (
	baseNoise   = 0.05
	noiseStep   = 0.02
	noisePeriod = 7
)

// NoiseAt returns the perturbation strength used at a cycle step: a ramp
// from 0.05 to 0.17 in steps of 0.02 that restarts every seven steps.
func NoiseAt(step uint32) float64 {
	return baseNoise + noiseStep*float64(step%noisePeriod)
}

// CycleReport summarizes a dream cycle.
type CycleReport struct {
	// History holds one record per step. CycleID is the epoch assigned to
	// the step's candidate.
	History []diagnostics.CycleRecord
	// Outcomes holds the admission outcome of each step.
	Outcomes []Admission
	// Stored counts steps whose candidate entered the pool.
	Stored int
}

// Cycle runs epochs generate/score/admit steps against target on p.
//
// The first candidate is generated from target itself. After each step, if
// the pool is non-empty, the next seed is the pool's best entry. A cycle with
// zero epochs leaves the pool untouched and returns an empty report.
func Cycle(target *tensor.Chromatic, p *Pool, epochs uint32) CycleReport {
	var report CycleReport
	if epochs == 0 {
		return report
	}

	report.History = make([]diagnostics.CycleRecord, 0, epochs)
	report.Outcomes = make([]Admission, 0, epochs)

	seed := target.Clone()
	for step := range epochs {
		noise := NoiseAt(step)
		candidate := Generate(seed, noise)
		score := Evaluate(candidate, target)
		entry := NewEntry(candidate, p.NextEpoch(), score)
		outcome := p.Add(entry)

		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.Stored() {
			report.Stored++
		}
		report.History = append(report.History, diagnostics.CycleRecord{
			CycleID:     uint64(entry.Epoch),
			Coherence:   entry.Coherence,
			EnergyTotal: meanEnergy(candidate),
			DeltaE:      diagnostics.ComputeDeltaHSL(candidate, target).Magnitude,
		})

		if p.logger != nil {
			p.logger.Debug().
				Int("epoch", int(entry.Epoch)).
				Str("noise", observe.Float(noise)).
				Str("score", observe.Float(score)).
				Str("coherence", observe.Float(entry.Coherence)).
				Str("outcome", outcome.String()).
				Msg("dream step")
		}

		if best, ok := p.Best(); ok {
			seed = best.Tensor
		}
	}

	if p.logger != nil {
		best, _ := p.Best()
		p.logger.Info().
			Int("epochs", int(epochs)).
			Int("stored", report.Stored).
			Int("pool_size", p.Len()).
			Str("best_score", observe.Float(best.Score)).
			Msg("dream cycle finished")
	}

	return report
}

// meanEnergy returns the mean over cells of the mean channel value.
func meanEnergy(t *tensor.Chromatic) float64 {
	sum := 0.0
	for i := 0; i < len(t.RGB); i += layout.Channels {
		sum += (t.RGB[i] + t.RGB[i+1] + t.RGB[i+2]) / 3
	}

	return sum / float64(t.Shape.CellCount())
}
