package application

import "sync"

// ListState describes what a list panel currently shows.
type ListState int

const (
	// ListIdle means the panel has never been loaded.
	ListIdle ListState = iota
	ListLoaded
	ListFailed
)

func (s ListState) String() string {
	switch s {
	case ListLoaded:
		return "loaded"
	case ListFailed:
		return "failed"
	default:
		return "idle"
	}
}

// PanelSnapshot is an immutable copy of a panel, safe to hand to templates.
type PanelSnapshot[T any] struct {
	State      ListState
	Items      []T
	Generation uint64
}

func (p PanelSnapshot[T]) Idle() bool   { return p.State == ListIdle }
func (p PanelSnapshot[T]) Failed() bool { return p.State == ListFailed }
func (p PanelSnapshot[T]) Loaded() bool { return p.State == ListLoaded }
func (p PanelSnapshot[T]) Empty() bool  { return p.State == ListLoaded && len(p.Items) == 0 }

// Panel holds one rendered list and the generation token of the latest reload.
// Reloads take a token with Begin before they fetch and hand it back to Commit;
// only the latest issued token may change what the panel shows.
type Panel[T any] struct {
	mu     sync.Mutex
	issued uint64
	snap   PanelSnapshot[T]
}

// Begin issues a new generation token, superseding every earlier one.
func (p *Panel[T]) Begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.issued++
	return p.issued
}

// Commit replaces the panel content when gen is still the latest token.
// It reports false when the result was superseded and discarded.
func (p *Panel[T]) Commit(gen uint64, state ListState, items []T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.issued {
		return false
	}
	if state != ListLoaded {
		items = nil
	}
	p.snap = PanelSnapshot[T]{State: state, Items: items, Generation: gen}
	return true
}

// Snapshot returns a copy of what the panel shows.
func (p *Panel[T]) Snapshot() PanelSnapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.snap
	if p.snap.Items != nil {
		out.Items = make([]T, len(p.snap.Items))
		copy(out.Items, p.snap.Items)
	}
	return out
}
