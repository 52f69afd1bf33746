package history

import "agrosim/entities"

// Capacity is how many days of history a run retains.
const Capacity = 100

// Ring is a fixed-capacity buffer of daily records; the oldest record is
// overwritten once it is full. The zero value holds Capacity records.
type Ring struct {
	buf   []entities.HistoryRecord
	start int
	size  int
}

func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = Capacity
	}
	return &Ring{buf: make([]entities.HistoryRecord, capacity)}
}

func (r *Ring) Append(rec entities.HistoryRecord) {
	if len(r.buf) == 0 {
		r.buf = make([]entities.HistoryRecord, Capacity)
	}
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = rec
		r.size++
		return
	}
	r.buf[r.start] = rec
	r.start = (r.start + 1) % len(r.buf)
}

func (r *Ring) Len() int { return r.size }

func (r *Ring) Cap() int { return len(r.buf) }

// Records returns a chronological copy.
func (r *Ring) Records() []entities.HistoryRecord {
	out := make([]entities.HistoryRecord, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

func (r *Ring) Last() (entities.HistoryRecord, bool) {
	if r.size == 0 {
		return entities.HistoryRecord{}, false
	}
	return r.buf[(r.start+r.size-1)%len(r.buf)], true
}

func (r *Ring) Clear() {
	r.start, r.size = 0, 0
}

// Clone returns an independent copy.
func (r *Ring) Clone() *Ring {
	c := &Ring{buf: make([]entities.HistoryRecord, len(r.buf)), start: r.start, size: r.size}
	copy(c.buf, r.buf)
	return c
}
