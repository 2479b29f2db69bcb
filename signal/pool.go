package signal

// Tally counts what one Pool.Advance removed.
type Tally struct {
	Completed int
	Faded     int
}

// Pool owns the live signal list under a population cap.
type Pool struct {
	Max     int
	signals []*Signal
	nextID  uint64
}

// NewPool returns an empty pool capped at max (negative means zero).
func NewPool(max int) *Pool {
	if max < 0 {
		max = 0
	}
	return &Pool{Max: max, signals: make([]*Signal, 0, max)}
}

// Len returns the number of live signals.
func (p *Pool) Len() int { return len(p.signals) }

// Full reports whether Add would refuse.
func (p *Pool) Full() bool { return len(p.signals) >= p.Max }

// Add stores s and assigns its id. It returns false, dropping s, at capacity.
func (p *Pool) Add(s *Signal) bool {
	if s == nil || p.Full() {
		return false
	}
	p.nextID++
	s.ID = p.nextID
	p.signals = append(p.signals, s)

	return true
}

// Signals returns the live signals in spawn order. The slice is shared.
func (p *Pool) Signals() []*Signal { return p.signals }

// Clear drops every signal and restarts ids.
func (p *Pool) Clear() {
	p.signals = p.signals[:0]
	p.nextID = 0
}

// SetMax changes the cap; signals above a lowered cap are kept until they
// finish.
func (p *Pool) SetMax(max int) {
	if max < 0 {
		max = 0
	}
	p.Max = max
}

// Advance steps every signal newest first and removes finished ones.
func (p *Pool) Advance(dt float64, geo Geometry) Tally {
	var t Tally
	for i := len(p.signals) - 1; i >= 0; i-- {
		switch p.signals[i].Advance(dt, geo) {
		case Completed:
			t.Completed++
		case Faded:
			t.Faded++
		default:
			continue
		}
		p.signals = append(p.signals[:i], p.signals[i+1:]...)
	}

	return t
}
