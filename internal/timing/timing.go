// Package timing measures how long the parts of a completion request take.
package timing

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type mark struct {
	label   string
	elapsed time.Duration
}

// Timer records checkpoints. Marks may be added from several goroutines.
type Timer struct {
	start time.Time
	mu    sync.Mutex
	marks []mark
}

// NewTimer starts a timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Mark records a checkpoint at the time elapsed since the start
func (t *Timer) Mark(label string) {
	elapsed := time.Since(t.start)

	t.mu.Lock()
	t.marks = append(t.marks, mark{label: label, elapsed: elapsed})
	t.mu.Unlock()
}

// Summary formats the total and every checkpoint in milliseconds, in
// recording order
func (t *Timer) Summary() string {
	total := time.Since(t.start)

	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "total=%s", ms(total))
	for _, m := range t.marks {
		fmt.Fprintf(&b, " %s=%s", m.label, ms(m.elapsed))
	}
	return b.String()
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
