package tui

import "time"

// timerState tracks the current state of the focus timer.
type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// focusTimer is the countdown logic behind the focus view, kept separate
// from display. Paused time does not count towards the session.
type focusTimer struct {
	now func() time.Time

	state     timerState
	target    time.Duration
	startTime time.Time
	pausedAt  time.Time
	pauseGap  time.Duration
	stopped   time.Duration // elapsed, frozen at stop
}

func newFocusTimer(target time.Duration, now func() time.Time) focusTimer {
	if now == nil {
		now = time.Now
	}
	return focusTimer{now: now, target: target}
}

func (t *focusTimer) start() {
	t.state = timerRunning
	t.startTime = t.now()
	t.pauseGap = 0
	t.stopped = 0
}

func (t *focusTimer) pause() {
	if t.state != timerRunning {
		return
	}
	t.state = timerPaused
	t.pausedAt = t.now()
}

func (t *focusTimer) resume() {
	if t.state != timerPaused {
		return
	}
	t.pauseGap += t.now().Sub(t.pausedAt)
	t.state = timerRunning
}

func (t *focusTimer) toggle() {
	switch t.state {
	case timerRunning:
		t.pause()
	case timerPaused:
		t.resume()
	}
}

// stop freezes the elapsed time, capped at the target.
func (t *focusTimer) stop() {
	if t.state == timerStopped {
		return
	}
	t.stopped = t.elapsed()
	t.state = timerStopped
}

func (t focusTimer) running() bool { return t.state == timerRunning }
func (t focusTimer) paused() bool  { return t.state == timerPaused }

func (t focusTimer) elapsed() time.Duration {
	var d time.Duration
	switch t.state {
	case timerStopped:
		return t.stopped
	case timerPaused:
		d = t.pausedAt.Sub(t.startTime) - t.pauseGap
	default:
		d = t.now().Sub(t.startTime) - t.pauseGap
	}
	if d > t.target {
		d = t.target
	}
	if d < 0 {
		d = 0
	}
	return d
}

func (t focusTimer) remaining() time.Duration {
	return t.target - t.elapsed()
}

func (t focusTimer) done() bool {
	return t.target > 0 && t.elapsed() >= t.target
}

func (t focusTimer) percent() float64 {
	if t.target <= 0 {
		return 0
	}
	return float64(t.elapsed()) / float64(t.target)
}

// minutes is the whole number of elapsed minutes; partial minutes are
// dropped.
func (t focusTimer) minutes() int {
	return int(t.elapsed() / time.Minute)
}
