// Package stream owns the capture sessions behind the video feed. Each camera
// index has at most one active session.
package stream

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Ayesha0000000/local-camera-stream/internal/logger"
)

var (
	ErrInUse    = errors.New("camera in use")
	ErrReleased = errors.New("camera released")
)

// Capture is an open camera producing encoded frames.
type Capture interface {
	Next() ([]byte, bool, error)
	Release()
}

// Opener opens the camera at index.
type Opener func(index int) (Capture, error)

type Registry struct {
	open   Opener
	logger *logger.Logger

	mu       sync.Mutex
	sessions map[int]*Lease
}

func NewRegistry(open Opener, logger *logger.Logger) *Registry {
	return &Registry{
		open:     open,
		logger:   logger,
		sessions: make(map[int]*Lease),
	}
}

// Acquire opens the camera at index for exclusive use. It fails with ErrInUse
// while another lease on the same index is live.
func (r *Registry) Acquire(index int) (*Lease, error) {
	lease := &Lease{registry: r, index: index}

	r.mu.Lock()
	if _, busy := r.sessions[index]; busy {
		r.mu.Unlock()
		return nil, ErrInUse
	}
	r.sessions[index] = lease
	r.mu.Unlock()

	capture, err := r.open(index)
	if err != nil {
		r.remove(lease)
		return nil, fmt.Errorf("failed to open camera %d: %w", index, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[index] != lease {
		// Released while opening.
		capture.Release()
		return nil, ErrReleased
	}
	lease.capture = capture
	r.logger.Info("Stream started on camera %d", index)
	return lease, nil
}

// Release ends the session on index, if any. The streaming loop sees
// ErrReleased on its next read. Releasing an idle camera is a no-op.
func (r *Registry) Release(index int) {
	r.mu.Lock()
	lease, ok := r.sessions[index]
	delete(r.sessions, index)
	r.mu.Unlock()

	if ok {
		lease.release()
		r.logger.Info("Camera %d released", index)
	}
}

// Active reports whether index has a live session.
func (r *Registry) Active(index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[index]
	return ok
}

// Close releases every session.
func (r *Registry) Close() {
	r.mu.Lock()
	leases := make([]*Lease, 0, len(r.sessions))
	for index, lease := range r.sessions {
		leases = append(leases, lease)
		delete(r.sessions, index)
	}
	r.mu.Unlock()

	for _, lease := range leases {
		lease.release()
	}
}

func (r *Registry) remove(lease *Lease) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[lease.index] == lease {
		delete(r.sessions, lease.index)
	}
}

// Lease is exclusive access to one camera. Close it when the stream ends.
type Lease struct {
	registry *Registry
	index    int
	capture  Capture

	mu       sync.Mutex
	released bool
}

func (l *Lease) Index() int {
	return l.index
}

// Next returns the next encoded frame. See Capture.
func (l *Lease) Next() ([]byte, bool, error) {
	l.mu.Lock()
	released := l.released
	l.mu.Unlock()
	if released {
		return nil, false, ErrReleased
	}

	jpeg, ok, err := l.capture.Next()
	if err != nil {
		return nil, false, err
	}
	return jpeg, ok, nil
}

// Close releases the camera and frees the slot for the next stream.
func (l *Lease) Close() {
	l.registry.remove(l)
	l.release()
}

func (l *Lease) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return
	}
	l.released = true
	if l.capture != nil {
		l.capture.Release()
	}
}
