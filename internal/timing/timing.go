// Package timing measures the stages of a single operation.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Stage is one measured step
type Stage struct {
	Name     string
	Duration time.Duration
}

// Timer records consecutive stages. Each mark measures the time since the
// previous one.
type Timer struct {
	start  time.Time
	last   time.Time
	stages []Stage
}

// NewTimer creates a timer starting now
func NewTimer() *Timer {
	now := time.Now()
	return &Timer{start: now, last: now}
}

// Mark ends the current stage under name and returns its duration
func (t *Timer) Mark(name string) time.Duration {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	t.stages = append(t.stages, Stage{Name: name, Duration: d})
	return d
}

// Elapsed returns the time since the timer was created
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration of the first stage called name
func (t *Timer) Get(name string) (time.Duration, bool) {
	for _, s := range t.stages {
		if s.Name == name {
			return s.Duration, true
		}
	}
	return 0, false
}

// Stages returns the recorded stages in order
func (t *Timer) Stages() []Stage {
	return append([]Stage(nil), t.stages...)
}

// Summary formats a total and its stages, e.g. "1.250ms (match: 0.020ms, complete: 1.200ms)"
func Summary(total time.Duration, stages []Stage) string {
	var b strings.Builder
	b.WriteString(millis(total))

	if len(stages) > 0 {
		parts := make([]string, len(stages))
		for i, s := range stages {
			parts[i] = s.Name + ": " + millis(s.Duration)
		}
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}

	return b.String()
}

// Summary formats the elapsed time and the stages recorded so far
func (t *Timer) Summary() string {
	return Summary(t.Elapsed(), t.stages)
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
