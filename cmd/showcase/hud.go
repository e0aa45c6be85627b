package main

import (
	"fmt"
	"strings"
	"time"
)

// statusLine collects the window title fields for one refresh.
type statusLine struct {
	parts []string
}

func (s *statusLine) Add(format string, args ...interface{}) {
	s.parts = append(s.parts, fmt.Sprintf(format, args...))
}

func (s *statusLine) Clear() {
	s.parts = s.parts[:0]
}

func (s *statusLine) String() string {
	return strings.Join(s.parts, " | ")
}

// fpsCounter counts frames and reports a rate once per interval.
type fpsCounter struct {
	interval time.Duration
	frames   int
	since    time.Time
}

func newFPSCounter(interval time.Duration, now time.Time) *fpsCounter {
	return &fpsCounter{interval: interval, since: now}
}

// Frame records one frame. ok is true when a new rate is available.
func (f *fpsCounter) Frame(now time.Time) (fps float64, ok bool) {
	f.frames++
	elapsed := now.Sub(f.since)
	if elapsed < f.interval {
		return 0, false
	}
	fps = float64(f.frames) / elapsed.Seconds()
	f.frames = 0
	f.since = now
	return fps, true
}
