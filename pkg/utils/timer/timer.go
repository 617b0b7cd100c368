// Package timer provides monotonic timing for multi-stage command runs.
package timer

import (
	"sync"
	"time"
)

// Timer measures the total duration of a command run and the duration of the
// current stage within it. Implementations must be safe for concurrent use.
type Timer interface {
	// Start begins timing. Calling Start again resets both measurements.
	Start()

	// NewStage marks the beginning of a new stage, resetting the stage clock.
	NewStage()

	// GetTiming returns the elapsed total and current-stage durations.
	GetTiming() (total time.Duration, stage time.Duration)
}

// New returns a Timer backed by the wall clock.
func New() Timer {
	return &clockTimer{}
}

type clockTimer struct {
	mu         sync.Mutex
	startTime  time.Time
	stageStart time.Time
}

func (t *clockTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.startTime = now
	t.stageStart = now
}

func (t *clockTimer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stageStart = time.Now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.startTime.IsZero() {
		return 0, 0
	}

	now := time.Now()

	return now.Sub(t.startTime), now.Sub(t.stageStart)
}
