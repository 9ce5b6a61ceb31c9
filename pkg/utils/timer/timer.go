// Package timer provides a stage-aware timer used for timing output in
// console notifications.
package timer

import "time"

// Timer tracks the total duration of a run and the duration of the current
// stage within it.
type Timer interface {
	// Start begins timing. Calling Start again resets the timer.
	Start()
	// NewStage marks the beginning of a new stage.
	NewStage()
	// GetTiming returns the total elapsed duration and the elapsed duration
	// of the current stage.
	GetTiming() (total, stage time.Duration)
}

// New creates a new Timer backed by the wall clock.
func New() Timer {
	return &clockTimer{}
}

type clockTimer struct {
	start      time.Time
	stageStart time.Time
}

func (t *clockTimer) Start() {
	now := time.Now()
	t.start = now
	t.stageStart = now
}

func (t *clockTimer) NewStage() {
	t.stageStart = time.Now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	if t.start.IsZero() {
		return 0, 0
	}

	now := time.Now()

	return now.Sub(t.start).Round(time.Millisecond),
		now.Sub(t.stageStart).Round(time.Millisecond)
}
