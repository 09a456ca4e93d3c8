package game

// Timers is the scene's scheduled-callback lane. It advances on the
// game clock and therefore freezes with the rest of the simulation when
// the session suspends it. Cosmetic overlay animation deliberately does
// NOT run on this lane (see CoinRain).
type Timers struct {
	pending   []*timerEntry
	suspended bool
}

type timerEntry struct {
	remaining float64
	fn        func()
	cancelled bool
}

// TimerHandle allows a scheduled callback to be cancelled.
type TimerHandle struct {
	entry *timerEntry
}

// Cancel prevents the callback from firing. Safe to call after firing.
func (h TimerHandle) Cancel() {
	if h.entry != nil {
		h.entry.cancelled = true
	}
}

// NewTimers creates an empty timer lane.
func NewTimers() *Timers {
	return &Timers{}
}

// After schedules fn to run once after delay seconds of unsuspended time.
func (t *Timers) After(delay float64, fn func()) TimerHandle {
	entry := &timerEntry{remaining: delay, fn: fn}
	t.pending = append(t.pending, entry)
	return TimerHandle{entry: entry}
}

// Update advances the lane and fires due callbacks. Does nothing while
// suspended.
func (t *Timers) Update(deltaTime float64) {
	if t.suspended {
		return
	}

	fired := t.pending[:0]
	var due []*timerEntry
	for _, entry := range t.pending {
		if entry.cancelled {
			continue
		}
		entry.remaining -= deltaTime
		if entry.remaining <= 0 {
			due = append(due, entry)
			continue
		}
		fired = append(fired, entry)
	}
	t.pending = fired

	// Callbacks run after the list is settled so a callback can safely
	// schedule new timers.
	for _, entry := range due {
		entry.fn()
	}
}

// Suspend freezes the lane.
func (t *Timers) Suspend() {
	t.suspended = true
}

// Resume unfreezes the lane.
func (t *Timers) Resume() {
	t.suspended = false
}

// Suspended reports whether the lane is frozen.
func (t *Timers) Suspended() bool {
	return t.suspended
}

// PendingCount returns the number of scheduled, uncancelled callbacks.
func (t *Timers) PendingCount() int {
	n := 0
	for _, entry := range t.pending {
		if !entry.cancelled {
			n++
		}
	}
	return n
}

// Clear drops all scheduled callbacks without firing them.
func (t *Timers) Clear() {
	t.pending = nil
}
