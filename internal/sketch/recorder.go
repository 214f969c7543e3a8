package sketch

// Recorder accumulates points between a pointer down and the matching up.
// Every observed point is kept, whatever the renderer does with it.
type Recorder struct {
	history *History
	style   *Style
	active  bool
	path    Stroke
}

// NewRecorder records into h using the live style st.
func NewRecorder(h *History, st *Style) *Recorder {
	return &Recorder{history: h, style: st}
}

// Active reports whether a stroke is open.
func (r *Recorder) Active() bool { return r.active }

// Begin opens a stroke seeded with one point. A second Begin while a stroke
// is open is ignored.
func (r *Recorder) Begin(x, y float64) bool {
	if r.active {
		return false
	}
	r.active = true
	r.path = Stroke{r.style.Point(x, y)}
	return true
}

// Extend appends a point with the style current at the time of the call.
func (r *Recorder) Extend(x, y float64) (Point, bool) {
	if !r.active {
		return Point{}, false
	}
	p := r.style.Point(x, y)
	r.path = append(r.path, p)
	return p, true
}

// Len returns the number of points in the open stroke.
func (r *Recorder) Len() int { return len(r.path) }

// Last returns the most recent point of the open stroke.
func (r *Recorder) Last() (Point, bool) {
	if len(r.path) == 0 {
		return Point{}, false
	}
	return r.path[len(r.path)-1], true
}

// Finish closes the open stroke. Strokes of at least MinStrokePoints go into
// history and are returned with ok set. The recorder is empty afterwards.
func (r *Recorder) Finish() (Stroke, bool) {
	if !r.active {
		return nil, false
	}
	s := r.path
	r.active = false
	r.path = nil
	if len(s) < MinStrokePoints {
		return nil, false
	}
	r.history.Append(s)
	return s, true
}
