package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/lumen/internal/hue"
)

// Snapshot represents the latest light listing available to the UI.
type Snapshot struct {
	Lights              []hue.Light
	Loading             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive listing failures
}

// IsOffline returns true when the bridge has been unreachable for multiple refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Visible returns the lights to show. Unreachable lights are hidden unless
// showOffline is set.
func (s Snapshot) Visible(showOffline bool) []hue.Light {
	if showOffline {
		return cloneLights(s.Lights)
	}
	var out []hue.Light
	for _, l := range s.Lights {
		if l.Reachable {
			out = append(out, l)
		}
	}
	return out
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// BeginLoading marks a refresh as in flight.
func (s *Store) BeginLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Loading = true
}

// Update records the result of a refresh. A failed refresh clears the rows,
// so the menu falls back to its empty state, and records the error.
func (s *Store) Update(lights []hue.Light, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = false
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.Lights = nil
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Lights = cloneLights(lights)
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetBrightness updates the local value of light id. It reports whether the
// light is known.
func (s *Store) SetBrightness(id string, bri int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snapshot.Lights {
		if s.snapshot.Lights[i].ID == id {
			bri = hue.ClampBrightness(bri)
			s.snapshot.Lights[i].Brightness = bri
			s.snapshot.Lights[i].On = bri > 0
			return true
		}
	}
	return false
}

// Brightness returns the current local value of light id.
func (s *Store) Brightness(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.snapshot.Lights {
		if l.ID == id {
			return l.Brightness, true
		}
	}
	return 0, false
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Lights = cloneLights(s.snapshot.Lights)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneLights(items []hue.Light) []hue.Light {
	if len(items) == 0 {
		return nil
	}
	dup := make([]hue.Light, len(items))
	copy(dup, items)
	return dup
}
