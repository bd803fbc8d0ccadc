package notify

import (
	"sync"
	"time"
)

// Host shows at most one notification at a time. Others wait in arrival
// order until the visible one expires or is dismissed.
type Host struct {
	mu      sync.Mutex
	pending []Notification
	current Notification
	shownAt time.Time
}

// NewHost returns an empty host.
func NewHost() *Host {
	return &Host{}
}

// Show queues n. It becomes visible immediately when nothing else is shown.
func (h *Host) Show(n Notification, now time.Time) {
	if n == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, n)
	h.advance(now)
}

// Current returns the visible notification at now, promoting the next queued
// one when the previous has timed out.
func (h *Host) Current(now time.Time) (Notification, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.advance(now)
	return h.current, h.current != nil
}

// Dismiss hides the visible notification.
func (h *Host) Dismiss(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
	h.advance(now)
}

// Pending returns how many notifications are waiting behind the visible one.
func (h *Host) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// Expiry returns when the visible notification times out. ok is false when
// nothing is shown or it never times out.
func (h *Host) Expiry() (time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return time.Time{}, false
	}
	d := h.current.Duration().Timeout()
	if d == 0 {
		return time.Time{}, false
	}
	return h.shownAt.Add(d), true
}

func (h *Host) advance(now time.Time) {
	if h.current != nil {
		d := h.current.Duration().Timeout()
		if d == 0 || now.Before(h.shownAt.Add(d)) {
			return
		}
		h.current = nil
	}
	if len(h.pending) == 0 {
		return
	}
	h.current = h.pending[0]
	h.pending = h.pending[1:]
	h.shownAt = now
}
