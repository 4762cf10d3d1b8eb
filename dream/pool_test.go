package dream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/chromacore/internal/observe"
	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

func withCoherence(v, coh float64) *tensor.Chromatic {
	return tensor.NewChromatic(layout.NewShape2D(1, 1), []float64{v, v, v}, []float64{coh})
}

func scored(p *Pool, score float64) Entry {
	return NewEntry(gray(0.5, 1, 1), p.NextEpoch(), score)
}

func TestNewPool_Clamps(t *testing.T) {
	p := NewPool(0, 1.7)
	require.Equal(t, 1, p.Capacity())
	require.Equal(t, 1.0, p.Threshold())
	require.True(t, p.IsEmpty())

	p = NewPool(-4, -0.3)
	require.Equal(t, 1, p.Capacity())
	require.Equal(t, 0.0, p.Threshold())
}

func TestNewEntry_Coherence(t *testing.T) {
	e := NewEntry(withCoherence(0.5, 0.8), 3, 0.1)
	require.InDelta(t, 0.8, e.Coherence, 1e-12)
	require.Equal(t, uint32(3), e.Epoch)

	require.Equal(t, 1.0, NewEntry(gray(0.2, 2, 2), 0, 0).Coherence)
}

func TestPool_ThresholdEnforcement(t *testing.T) {
	p := NewPool(2, 0.5)
	high := NewEntry(withCoherence(0.4, 0.9), p.NextEpoch(), 0.8)
	low := NewEntry(withCoherence(0.6, 0.2), p.NextEpoch(), 0.9)

	require.Equal(t, Appended, p.Add(high))
	require.Equal(t, Rejected, p.Add(low))
	require.Equal(t, 1, p.Len())

	// Equal to the threshold is admitted.
	require.Equal(t, Appended, p.Add(NewEntry(withCoherence(0.1, 0.5), p.NextEpoch(), 0)))
}

func TestPool_Eviction(t *testing.T) {
	p := NewPool(2, 0)
	require.Equal(t, Appended, p.Add(scored(p, 0.5)))
	require.Equal(t, Appended, p.Add(scored(p, 0.7)))

	before := append([]Entry(nil), p.Entries()...)
	require.Equal(t, Discarded, p.Add(scored(p, 0.4)))
	require.Equal(t, before, p.Entries())

	require.Equal(t, Discarded, p.Add(scored(p, 0.5)), "ties do not replace")
	require.Equal(t, before, p.Entries())

	require.Equal(t, Replaced, p.Add(scored(p, 0.9)))
	require.Equal(t, 2, p.Len())
	require.Equal(t, 0.9, p.Entries()[0].Score)
	require.Equal(t, 0.7, p.Entries()[1].Score)
}

func TestPool_EvictionPicksEarliestMinimum(t *testing.T) {
	p := NewPool(3, 0)
	p.Add(scored(p, 0.2))
	p.Add(scored(p, 0.6))
	p.Add(scored(p, 0.2))

	require.Equal(t, Replaced, p.Add(scored(p, 0.3)))
	scores := []float64{p.Entries()[0].Score, p.Entries()[1].Score, p.Entries()[2].Score}
	require.Equal(t, []float64{0.3, 0.6, 0.2}, scores)
}

func TestPool_Best(t *testing.T) {
	p := NewPool(4, 0)
	_, ok := p.Best()
	require.False(t, ok)

	p.Add(scored(p, 0.3))
	p.Add(scored(p, 0.8))
	p.Add(scored(p, 0.8))

	best, ok := p.Best()
	require.True(t, ok)
	require.Equal(t, uint32(1), best.Epoch, "ties resolve to the earliest entry")
}

func TestPool_Epochs(t *testing.T) {
	p := NewPool(3, 0)
	_, ok := p.LatestEpoch()
	require.False(t, ok)

	require.Equal(t, uint32(0), p.NextEpoch())
	require.Equal(t, uint32(1), p.NextEpoch())

	p.Add(NewEntry(gray(0.5, 1, 1), 9, 0))
	p.Add(NewEntry(gray(0.5, 1, 1), 4, 0))
	latest, ok := p.LatestEpoch()
	require.True(t, ok)
	require.Equal(t, uint32(9), latest)

	p.cursor = ^uint32(0)
	require.Equal(t, ^uint32(0), p.NextEpoch())
	require.Equal(t, ^uint32(0), p.NextEpoch(), "cursor saturates")
}

func TestPool_RetrieveSimilar(t *testing.T) {
	p := NewPool(3, 0)
	for _, v := range []float64{0.2, 0.4, 0.8} {
		p.Add(NewEntry(gray(v, 1, 2), p.NextEpoch(), 0))
	}
	query := gray(0.5, 1, 2)

	got := p.RetrieveSimilar(query, 2)
	require.Len(t, got, 2)
	require.Same(t, p.Entries()[1].Tensor, got[0])
	require.Same(t, p.Entries()[0].Tensor, got[1])

	all := p.RetrieveSimilar(query, 10)
	require.Len(t, all, 3)
	prev := -1.0
	for _, c := range all {
		d := HSLDistance(c, query)
		require.GreaterOrEqual(t, d, prev)
		prev = d
	}

	require.Empty(t, p.RetrieveSimilar(query, 0))
	require.Empty(t, NewPool(2, 0).RetrieveSimilar(query, 5))
}

func TestPool_RetrieveSimilar_StableTies(t *testing.T) {
	p := NewPool(3, 0)
	for range 3 {
		p.Add(NewEntry(gray(0.3, 1, 1), p.NextEpoch(), 0))
	}

	got := p.RetrieveSimilar(gray(0.6, 1, 1), 3)
	for i := range got {
		require.Same(t, p.Entries()[i].Tensor, got[i])
	}
}

func TestPool_PurgeStale(t *testing.T) {
	p := NewPool(4, 0)
	require.Equal(t, 0, p.PurgeStale(0))

	for range 4 {
		p.Add(scored(p, 0.5))
	}
	require.Equal(t, 2, p.PurgeStale(1))
	require.Equal(t, 2, p.Len())
	for _, e := range p.Entries() {
		require.GreaterOrEqual(t, e.Epoch, uint32(2))
	}

	require.Equal(t, 1, p.PurgeStale(0))
	latest, _ := p.LatestEpoch()
	for _, e := range p.Entries() {
		require.Equal(t, latest, e.Epoch)
	}
}

func TestPool_PurgeStaleLogs(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPool(3, 0, WithLogger(observe.NewJSON(buf, true).Log()))
	p.Add(scored(p, 0.1))
	p.Add(scored(p, 0.2))

	require.Equal(t, 1, p.PurgeStale(0))
	require.Contains(t, buf.String(), "purged stale dream entries")
}

func TestAdmission_String(t *testing.T) {
	require.Equal(t, "rejected", Rejected.String())
	require.Equal(t, "appended", Appended.String())
	require.Equal(t, "replaced", Replaced.String())
	require.Equal(t, "discarded", Discarded.String())
	require.Equal(t, "unknown", Admission(42).String())

	require.True(t, Appended.Stored())
	require.True(t, Replaced.Stored())
	require.False(t, Rejected.Stored())
	require.False(t, Discarded.Stored())
}
