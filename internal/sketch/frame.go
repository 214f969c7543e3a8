package sketch

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates one display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// Frame is a scheduled incremental paint. Only the most recently requested
// frame is honoured.
type Frame struct {
	Seq uint64
}

// Scheduler keeps at most one outstanding frame. A new request cancels the
// pending one. Frames are handed to post, which for a window is usually a
// Send onto the event queue so painting stays on the event goroutine.
type Scheduler struct {
	interval time.Duration
	post     func(Frame)

	mu      sync.Mutex
	seq     uint64
	pending bool
	timer   *time.Timer
}

// NewScheduler creates a scheduler. A non positive interval posts frames
// synchronously from Request.
func NewScheduler(interval time.Duration, post func(Frame)) *Scheduler {
	return &Scheduler{interval: interval, post: post}
}

// Request cancels any pending frame and schedules a new one.
func (s *Scheduler) Request() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	f := Frame{Seq: s.seq}
	s.pending = true
	post := s.post
	if s.interval > 0 && post != nil {
		s.timer = time.AfterFunc(s.interval, func() { post(f) })
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	if post != nil {
		post(f)
	}
}

// Cancel drops the pending frame. A frame already in flight will be refused
// by Take.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
}

// Take claims f if it is the current pending frame. Stale or cancelled
// frames report false.
func (s *Scheduler) Take(f Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending || f.Seq != s.seq {
		return false
	}
	s.pending = false
	s.timer = nil
	return true
}

// Pending reports whether a frame is outstanding.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
