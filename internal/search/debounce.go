package search

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is the recommended debounce duration for interactive
// search input.
const DefaultQuietPeriod = 180 * time.Millisecond

// Debouncer delays a search invocation until input has been quiet for the
// configured duration. A new call cancels the pending one, so only the last
// keystroke's query runs. The engine itself stays synchronous; this lives
// on the caller side of that contract.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultQuietPeriod
	}
	return &Debouncer{duration: duration}
}

// Trigger schedules fn after the quiet period, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
