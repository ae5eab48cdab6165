package selection

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dshills/inkwell/internal/engine/doc"
)

const targetKey = "column"

// Default vertical movement settings.
const (
	DefaultTargetDecay     = 3 * time.Second
	DefaultLineSearchLimit = 10000
)

// Mover moves carets between rendered lines.
type Mover struct {
	targets *cache.Cache
	limit   int
}

// NewMover creates a mover that forgets its target column after decay and
// examines at most limit caret stops per move.
func NewMover(decay time.Duration, limit int) *Mover {
	if decay <= 0 {
		decay = DefaultTargetDecay
	}
	if limit <= 0 {
		limit = DefaultLineSearchLimit
	}
	// No janitor: Get already hides expired targets.
	return &Mover{
		targets: cache.New(decay, 0),
		limit:   limit,
	}
}

// Target returns the remembered target column.
func (m *Mover) Target() (int, bool) {
	v, ok := m.targets.Get(targetKey)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// ResetTarget forgets the target column. Horizontal moves call it.
func (m *Mover) ResetTarget() {
	m.targets.Delete(targetKey)
}

// Vertical moves p one rendered line down or up. It reports false when there
// is no line in that direction or p has no caret box.
func (m *Mover) Vertical(d *doc.Document, mapper Mapper, p doc.Position, down bool) (doc.Position, bool) {
	start, ok := mapper.CaretRect(p)
	if !ok {
		return p, false
	}
	target, ok := m.Target()
	if !ok {
		target = start.Left
	}
	m.targets.SetDefault(targetKey, target)

	stops := Stops(d)
	i := search(d, stops, p)
	step := 1
	if !down {
		step = -1
		i--
	} else if i < len(stops) && stops[i] == p {
		i++
	}

	var (
		best    doc.Position
		found   bool
		lineTop int
	)
	for n := 0; n < m.limit && i >= 0 && i < len(stops); n, i = n+1, i+step {
		r, ok := mapper.CaretRect(stops[i])
		if !ok {
			continue
		}
		if down && r.Top <= start.Top || !down && r.Top >= start.Top {
			continue
		}
		if !found {
			lineTop = r.Top
		} else if r.Top != lineTop {
			break
		}
		best, found = stops[i], true
		if down && r.Left >= target || !down && r.Left <= target {
			break
		}
	}
	if !found {
		return p, false
	}
	return best, true
}
