package sketch

// History is the ordered record of finished strokes. Later strokes paint over
// earlier ones. There is no redo.
type History struct {
	strokes []Stroke
}

// Append adds a finished stroke to the end of the history.
func (h *History) Append(s Stroke) {
	h.strokes = append(h.strokes, s)
}

// Undo drops the most recent stroke. It reports false when there was nothing
// to drop.
func (h *History) Undo() bool {
	if len(h.strokes) == 0 {
		return false
	}
	h.strokes[len(h.strokes)-1] = nil
	h.strokes = h.strokes[:len(h.strokes)-1]
	return true
}

// Reset empties the history.
func (h *History) Reset() { h.strokes = nil }

// IsEmpty reports whether no stroke is stored.
func (h *History) IsEmpty() bool { return len(h.strokes) == 0 }

// Len returns the number of stored strokes.
func (h *History) Len() int { return len(h.strokes) }

// Strokes returns a copy of the stored strokes in paint order.
func (h *History) Strokes() []Stroke {
	out := make([]Stroke, len(h.strokes))
	copy(out, h.strokes)
	return out
}
