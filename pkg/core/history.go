package core

// History is the bounded FIFO store of recently seen records, in arrival
// order. It is not safe for concurrent use; during live mode it is owned
// exclusively by the aggregation loop, and dig mode works on a Snapshot.
type History struct {
	records  []Record
	capacity int
}

// NewHistory creates an empty history bounded to the given capacity.
// Capacities below one are clamped to one.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		records:  make([]Record, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a record, evicting the oldest one first when the history
// is at capacity.
func (h *History) Push(r Record) {
	if len(h.records) >= h.capacity {
		n := copy(h.records, h.records[1:])
		h.records = h.records[:n]
	}
	h.records = append(h.records, r)
}

// Len returns the number of retained records.
func (h *History) Len() int {
	return len(h.records)
}

// Capacity returns the configured bound.
func (h *History) Capacity() int {
	return h.capacity
}

// Snapshot returns a copy of the retained records in arrival order.
func (h *History) Snapshot() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}
