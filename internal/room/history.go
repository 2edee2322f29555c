package room

// History is a bounded, insertion-ordered chat log with drop-oldest
// eviction. Capacity is fixed at construction; the only removal path
// is eviction past capacity.
type History struct {
	limit   int
	entries []Message
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Append inserts at the tail, evicting from the head past capacity.
func (h *History) Append(msg Message) {
	h.entries = append(h.entries, msg)
	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
	}
}

// Snapshot returns the current ordered sequence as a copy.
func (h *History) Snapshot() []Message {
	out := make([]Message, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int { return len(h.entries) }
