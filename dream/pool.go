package dream

import (
	"slices"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/arloliu/chromacore/internal/options"
	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

// Entry is a scored candidate held by a Pool.
type Entry struct {
	Tensor    *tensor.Chromatic
	Epoch     uint32
	Score     float64
	Coherence float64
}

// NewEntry wraps t with its epoch and score. Coherence is computed from t's
// coherence map, or from its colors when it has none.
func NewEntry(t *tensor.Chromatic, epoch uint32, score float64) Entry {
	return Entry{
		Tensor:    t,
		Epoch:     epoch,
		Score:     score,
		Coherence: t.Coherence(),
	}
}

// Admission is the outcome of Pool.Add.
type Admission uint8

const (
	// Rejected means the entry's coherence is below the pool threshold.
	Rejected Admission = iota
	// Appended means the pool had room and the entry was stored.
	Appended
	// Replaced means the pool was full and the entry displaced the
	// lowest-scoring entry.
	Replaced
	// Discarded means the pool was full and the entry did not outscore the
	// lowest-scoring entry.
	Discarded
)

// String returns the lowercase name of the outcome.
func (a Admission) String() string {
	switch a {
	case Rejected:
		return "rejected"
	case Appended:
		return "appended"
	case Replaced:
		return "replaced"
	case Discarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Stored reports whether the entry ended up in the pool.
func (a Admission) Stored() bool {
	return a == Appended || a == Replaced
}

// Pool is a bounded collection of the highest-scoring coherent entries.
type Pool struct {
	entries   []Entry
	capacity  int
	threshold float64
	cursor    uint32
	logger    *bolt.Logger
}

// PoolOption configures a Pool.
type PoolOption = options.Option[*Pool]

// WithLogger makes the pool and the cycles run on it log through l.
// A nil logger disables logging, which is the default.
func WithLogger(l *bolt.Logger) PoolOption {
	return options.NoError(func(p *Pool) {
		p.logger = l
	})
}

// NewPool creates an empty pool.
//
// Parameters:
//   - capacity: maximum number of entries; values below 1 are raised to 1
//   - threshold: minimum coherence for admission, clamped to [0, 1]
//   - opts: optional configuration
func NewPool(capacity int, threshold float64, opts ...PoolOption) *Pool {
	capacity = max(capacity, 1)
	p := &Pool{
		entries:   make([]Entry, 0, capacity),
		capacity:  capacity,
		threshold: layout.ClampUnit(threshold),
	}
	// Pool options are built with options.NoError and cannot fail.
	_ = options.Apply(p, opts...)

	return p
}

// Len returns the number of stored entries.
func (p *Pool) Len() int { return len(p.entries) }

// IsEmpty reports whether the pool holds no entries.
func (p *Pool) IsEmpty() bool { return len(p.entries) == 0 }

// Capacity returns the maximum number of entries.
func (p *Pool) Capacity() int { return p.capacity }

// Threshold returns the coherence admission threshold.
func (p *Pool) Threshold() float64 { return p.threshold }

// Entries returns the stored entries in insertion order. The slice is owned
// by the pool and is invalidated by the next mutation.
func (p *Pool) Entries() []Entry { return p.entries }

// NextEpoch returns the next epoch identifier and advances the cursor. The
// cursor saturates at the largest uint32.
func (p *Pool) NextEpoch() uint32 {
	epoch := p.cursor
	if p.cursor < ^uint32(0) {
		p.cursor++
	}

	return epoch
}

// LatestEpoch returns the highest epoch among the stored entries.
func (p *Pool) LatestEpoch() (uint32, bool) {
	if len(p.entries) == 0 {
		return 0, false
	}

	latest := p.entries[0].Epoch
	for _, e := range p.entries[1:] {
		latest = max(latest, e.Epoch)
	}

	return latest, true
}

// Best returns the highest-scoring entry. Ties resolve to the earliest entry.
func (p *Pool) Best() (Entry, bool) {
	if len(p.entries) == 0 {
		return Entry{}, false
	}

	best := 0
	for i := 1; i < len(p.entries); i++ {
		if p.entries[i].Score > p.entries[best].Score {
			best = i
		}
	}

	return p.entries[best], true
}

// Add offers e to the pool.
//
// Entries with coherence below the threshold are rejected. Otherwise e is
// appended while the pool has room; once full, e replaces the earliest
// lowest-scoring entry only if its score is strictly higher.
func (p *Pool) Add(e Entry) Admission {
	if e.Coherence < p.threshold {
		return Rejected
	}
	if len(p.entries) < p.capacity {
		p.entries = append(p.entries, e)
		return Appended
	}

	worst := 0
	for i := 1; i < len(p.entries); i++ {
		if p.entries[i].Score < p.entries[worst].Score {
			worst = i
		}
	}
	if e.Score > p.entries[worst].Score {
		p.entries[worst] = e
		return Replaced
	}

	return Discarded
}

// RetrieveSimilar returns up to limit stored tensors ordered by ascending
// HSLDistance to query. Equal distances keep pool order.
//
// Panics if a stored tensor's shape differs from query's.
func (p *Pool) RetrieveSimilar(query *tensor.Chromatic, limit int) []*tensor.Chromatic {
	if len(p.entries) == 0 || limit <= 0 {
		return nil
	}

	type ranked struct {
		idx  int
		dist float64
	}
	order := make([]ranked, len(p.entries))
	for i, e := range p.entries {
		order[i] = ranked{idx: i, dist: HSLDistance(e.Tensor, query)}
	}
	slices.SortStableFunc(order, func(a, b ranked) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		default:
			return 0
		}
	})

	out := make([]*tensor.Chromatic, 0, min(limit, len(order)))
	for _, r := range order[:min(limit, len(order))] {
		out = append(out, p.entries[r.idx].Tensor)
	}

	return out
}

// PurgeStale removes entries whose epoch lags the latest stored epoch by
// more than maxAge, and returns how many were removed.
func (p *Pool) PurgeStale(maxAge uint32) int {
	latest, ok := p.LatestEpoch()
	if !ok {
		return 0
	}

	before := len(p.entries)
	p.entries = slices.DeleteFunc(p.entries, func(e Entry) bool {
		return latest-e.Epoch > maxAge
	})
	removed := before - len(p.entries)

	if p.logger != nil && removed > 0 {
		p.logger.Info().
			Int("removed", removed).
			Int("remaining", len(p.entries)).
			Int("latest_epoch", int(latest)).
			Msg("purged stale dream entries")
	}

	return removed
}
