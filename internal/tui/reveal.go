package tui

import (
	"sync"
	"time"

	"cosmic_insights_backend/internal/form"
)

// revealer plays a reading one paragraph at a time. Starting a new reading
// stops the timers of the previous one.
type revealer struct {
	mu     sync.Mutex
	gen    uint64
	timers []*time.Timer
}

// Start schedules show for every paragraph and returns the reading's
// generation.
func (r *revealer) Start(paragraphs []form.Paragraph, show func(gen uint64, p form.Paragraph)) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	r.gen++
	gen := r.gen
	for _, p := range paragraphs {
		r.timers = append(r.timers, time.AfterFunc(p.Delay, func() {
			if r.Current(gen) {
				show(gen, p)
			}
		}))
	}
	return gen
}

// Cancel drops any pending paragraphs.
func (r *revealer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.gen++
}

// Current reports whether gen is still the reading on screen.
func (r *revealer) Current(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen == r.gen
}

func (r *revealer) stopLocked() {
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}
