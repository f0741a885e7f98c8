package api

import (
	"context"
	"sync"

	"github.com/VoidMesh/terrain/internal/terrain"
)

// FrameStore is the renderer behind the HTTP session: it keeps the latest
// frame so clients can fetch it.
type FrameStore struct {
	mu     sync.RWMutex
	latest *terrain.Frame
	draws  int
}

func NewFrameStore() *FrameStore {
	return &FrameStore{}
}

// Redraw replaces the stored frame.
func (s *FrameStore) Redraw(_ context.Context, frame *terrain.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = frame
	s.draws++
	return nil
}

// Latest returns the most recent frame, or nil.
func (s *FrameStore) Latest() *terrain.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Draws returns how many frames have been stored.
func (s *FrameStore) Draws() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draws
}
