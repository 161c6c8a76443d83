package probe

import (
	"strings"
	"sync"
)

// Trace records every emission as one "EVENT name" line, in order.
// Intended for golden-file comparison of a target run.
type Trace struct {
	mu    sync.Mutex
	lines []string
}

func NewTrace() *Trace {
	return &Trace{}
}

func (tr *Trace) add(event Event, name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	tr.lines = append(tr.lines, event.String()+" "+name)
}

// Lines returns a copy of the recorded lines.
func (tr *Trace) Lines() (lines []string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	lines = append(lines, tr.lines...)
	return
}

// Bytes renders the trace with one line per emission.
func (tr *Trace) Bytes() []byte {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if len(tr.lines) == 0 {
		return nil
	}

	return []byte(strings.Join(tr.lines, "\n") + "\n")
}

// Reset discards all recorded lines.
func (tr *Trace) Reset() {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	tr.lines = nil
}
