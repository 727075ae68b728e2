// Package tracker assigns stable person labels to face boxes across frames by
// nearest-centroid matching.
package tracker

import (
	"fmt"
	"image"
	"math"
	"sync"
	"time"
)

const (
	// DefaultThreshold is the maximum centroid distance, in pixels, for two boxes to be the same person.
	DefaultThreshold = 100.0
)

type entry struct {
	id       int
	centroid image.Point
	lastSeen time.Time
}

// Tracker keeps the last known centroid of every person seen by one camera.
// Entries live in memory only; a restart starts numbering from 1 again.
type Tracker struct {
	threshold float64
	maxAge    time.Duration
	entries   []*entry // allocation order, so the lowest id wins a distance tie
	nextID    int
	now       func() time.Time
	mu        sync.Mutex
}

// New creates a Tracker. A maxAge of 0 keeps entries forever.
func New(threshold float64, maxAge time.Duration) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{
		threshold: threshold,
		maxAge:    maxAge,
		nextID:    1,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Track returns the label of the person whose last centroid is nearest to the
// face's centroid and closer than the threshold, or allocates a new one.
func (t *Tracker) Track(face image.Rectangle) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.evict(now)

	center := Centroid(face)

	var matched *entry
	minDistance := math.Inf(1)
	for _, e := range t.entries {
		d := distance(center, e.centroid)
		if d < t.threshold && d < minDistance {
			minDistance = d
			matched = e
		}
	}

	if matched != nil {
		matched.centroid = center
		matched.lastSeen = now
		return Label(matched.id)
	}

	e := &entry{id: t.nextID, centroid: center, lastSeen: now}
	t.entries = append(t.entries, e)
	t.nextID++
	return Label(e.id)
}

// Len returns the number of live entries.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// evict drops entries not seen within maxAge.
func (t *Tracker) evict(now time.Time) {
	if t.maxAge <= 0 {
		return
	}
	kept := t.entries[:0]
	for _, e := range t.entries {
		if now.Sub(e.lastSeen) <= t.maxAge {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(t.entries); i++ {
		t.entries[i] = nil
	}
	t.entries = kept
}

// Centroid returns the integer center of a box, rounding down like the capture coordinates do.
func Centroid(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

// Label formats a local tracker id as a person identifier.
func Label(id int) string {
	return fmt.Sprintf("person_%d", id)
}

func distance(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
