// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// brailleFrames are the default spinner animation frames.
const brailleFrames = "⠉⠘⠰⠤⠆⠃"

// spinner animates the progress of hosts being queried while rendering live.
type spinner struct {
	frames   []string
	phase    atomic.Int32
	done     chan struct{}
	stopOnce sync.Once
}

// newSpinner returns a new braille spinner; later call the Start method to
// make it spin, and the Stop method to stop it and release its background
// resources.
func newSpinner() *spinner {
	return newSpinnerWithFrames(brailleFrames)
}

// newSpinnerWithFrames returns a new spinner cycling through the runes of the
// specified frames, each followed by a space.
func newSpinnerWithFrames(frames string) *spinner {
	s := &spinner{done: make(chan struct{})}
	for _, r := range frames {
		s.frames = append(s.frames, string(r)+" ")
	}
	return s
}

// Spinner returns the spinner string for the current phase.
func (s *spinner) Spinner() string {
	return s.frames[s.phase.Load()]
}

// Start the spinner to advance a phase every specified interval.
func (s *spinner) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.advance()
			case <-s.done:
				return
			}
		}
	}()
}

// advance the spinner to its next phase, wrapping around after the last one.
func (s *spinner) advance() {
	next := s.phase.Load() + 1
	if int(next) >= len(s.frames) {
		next = 0
	}
	s.phase.Store(next)
}

// Stop the spinner and release the background resources. Stopping an already
// stopped spinner is a no-op.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
