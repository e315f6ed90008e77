package adapters

import "sync"

// MemoryTracker is an in-memory ports.DependencyTracker, collecting
// every path reported during a resolve for the caller to inspect
// afterward (a build system would instead append these to its own
// dependency file).
type MemoryTracker struct {
	mu             sync.Mutex
	trackSystem    bool
	paths          []string
	systemPathSeen map[string]bool
}

func NewMemoryTracker(trackSystem bool) *MemoryTracker {
	return &MemoryTracker{trackSystem: trackSystem, systemPathSeen: map[string]bool{}}
}

func (t *MemoryTracker) Add(path string, isSystem bool) {
	if isSystem && !t.trackSystem {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if isSystem {
		if t.systemPathSeen[path] {
			return
		}
		t.systemPathSeen[path] = true
	}
	t.paths = append(t.paths, path)
}

func (t *MemoryTracker) SystemDepCollectionEnabled() bool {
	return t.trackSystem
}

// Paths returns every path reported so far, in report order.
func (t *MemoryTracker) Paths() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.paths))
	copy(out, t.paths)
	return out
}
