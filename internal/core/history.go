package core

import "electroplan/pkg/domain"

// DefaultHistoryCapacity bounds the undo log when no explicit capacity is
// configured.
const DefaultHistoryCapacity = 50

// History is a bounded, linear, branch-free undo/redo log of full-collection
// snapshots. Every entry is a deep copy; nothing in the log aliases live
// state. The zero value is not usable, construct with NewHistory.
type History struct {
	entries  [][]domain.Project
	cursor   int
	capacity int
}

// NewHistory returns a history seeded with the given collection as its first
// entry, so the very first undo target is the initial state.
func NewHistory(capacity int, initial []domain.Project) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		entries:  [][]domain.Project{domain.CloneProjects(initial)},
		capacity: capacity,
	}
}

// Push records a new snapshot. Entries beyond the cursor are discarded, so a
// redo is never possible after a fresh mutation. When the log exceeds its
// capacity the oldest entry is evicted.
func (h *History) Push(snapshot []domain.Project) {
	h.entries = append(h.entries[:h.cursor+1], domain.CloneProjects(snapshot))
	if len(h.entries) > h.capacity {
		overflow := len(h.entries) - h.capacity
		h.entries = append([][]domain.Project(nil), h.entries[overflow:]...)
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back and returns a copy of the snapshot there. At the
// oldest retained entry it reports false and changes nothing.
func (h *History) Undo() ([]domain.Project, bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return domain.CloneProjects(h.entries[h.cursor]), true
}

// Redo steps the cursor forward and returns a copy of the snapshot there. At
// the newest entry it reports false and changes nothing.
func (h *History) Redo() ([]domain.Project, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return domain.CloneProjects(h.entries[h.cursor]), true
}

// CanUndo reports whether an older snapshot is retained.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a newer snapshot is retained.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of retained snapshots.
func (h *History) Len() int { return len(h.entries) }
