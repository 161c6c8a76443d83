// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package probe

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"sync"
)

// Marker names observable by a host-side harness. QS_MAIN_DONE is a
// contract with external observers; do not rename.
const (
	QS_MAIN_DONE         = "QS_MAIN_DONE"
	ADDITION_STRUCT_EXIT = "example_AdditionStruct_EXIT"
	TEST_HOOK            = "TEST_HOOK"
	SYS_TICK             = "SYS_TICK"
)

// Event classifies an observation point.
type Event int

//go:generate go tool stringer -type=Event
const (
	EVENT_MARKER = Event(0) // Named execution marker reached
	EVENT_HOOK   = Event(1) // Test-mode entry hook
	EVENT_TICK   = Event(2) // Periodic supervisor tick
)

var _probe_defines = map[string]string{
	"HOOK_MEM_WORDS": fmt.Sprintf("%v", HOOK_MEM_WORDS),
}

// Registry fans execution markers out to host-side watchers.
type Registry struct {
	Verbose bool   // Set to log every emission.
	Trace   *Trace // Optional trace recorder.

	mu      sync.Mutex
	watcher map[string][]chan string
}

// Default is the process-wide registry the target emits to.
var Default = &Registry{}

// Watch returns a channel that receives name each time the marker is
// reached. Watching the empty name receives every marker.
func (reg *Registry) Watch(name string) (ch <-chan string) {
	out := make(chan string, 16)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.watcher == nil {
		reg.watcher = map[string][]chan string{}
	}
	reg.watcher[name] = append(reg.watcher[name], out)

	ch = out
	return
}

// Emit signals that the named observation point was reached. Emission
// never blocks; a watcher whose channel is full misses the event, the
// same way an asynchronous observer can miss a sample.
func (reg *Registry) Emit(event Event, name string) {
	if reg.Verbose {
		log.Printf("probe: %v %v", event, name)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.Trace != nil {
		reg.Trace.add(event, name)
	}

	for _, ch := range reg.watcher[name] {
		select {
		case ch <- name:
		default:
		}
	}
	for _, ch := range reg.watcher[""] {
		select {
		case ch <- name:
		default:
		}
	}
}

// Defines for the probe layer.
func Defines() iter.Seq2[string, string] {
	return maps.All(_probe_defines)
}

var keepSink any

// Keep pins val so that it remains materialized and inspectable at the
// marker point following its last use.
//
//go:noinline
func Keep(val any) {
	keepSink = val
}
