package core

import (
	"reflect"
	"testing"

	"electroplan/pkg/domain"
)

func snapshotNamed(name string) []domain.Project {
	return []domain.Project{{Base: domain.Base{ID: "p1"}, Name: name, Type: domain.TypeResidential}}
}

func TestHistoryUndoRedoWalk(t *testing.T) {
	h := NewHistory(10, snapshotNamed("v0"))
	h.Push(snapshotNamed("v1"))
	h.Push(snapshotNamed("v2"))

	if !h.CanUndo() {
		t.Fatalf("expected CanUndo after pushes")
	}
	if h.CanRedo() {
		t.Fatalf("CanRedo must be false right after a push")
	}

	snap, ok := h.Undo()
	if !ok || snap[0].Name != "v1" {
		t.Fatalf("first undo = %v, %v", snap, ok)
	}
	snap, ok = h.Undo()
	if !ok || snap[0].Name != "v0" {
		t.Fatalf("second undo = %v, %v", snap, ok)
	}
	if _, ok := h.Undo(); ok {
		t.Fatalf("undo past the oldest entry must be a no-op")
	}

	snap, ok = h.Redo()
	if !ok || snap[0].Name != "v1" {
		t.Fatalf("first redo = %v, %v", snap, ok)
	}
	snap, ok = h.Redo()
	if !ok || snap[0].Name != "v2" {
		t.Fatalf("second redo = %v, %v", snap, ok)
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("redo past the newest entry must be a no-op")
	}
}

func TestHistoryPushTruncatesRedoTail(t *testing.T) {
	h := NewHistory(10, snapshotNamed("v0"))
	h.Push(snapshotNamed("v1"))
	h.Push(snapshotNamed("v2"))

	if _, ok := h.Undo(); !ok {
		t.Fatalf("undo failed")
	}
	h.Push(snapshotNamed("v1b"))

	if h.CanRedo() {
		t.Fatalf("CanRedo must be false after pushing on an undone state")
	}
	snap, ok := h.Undo()
	if !ok || snap[0].Name != "v1" {
		t.Fatalf("undo after branch = %v, %v", snap, ok)
	}
	snap, ok = h.Redo()
	if !ok || snap[0].Name != "v1b" {
		t.Fatalf("redo after branch = %v, %v, want the replacement entry", snap, ok)
	}
}

func TestHistoryEvictsOldestAtCapacity(t *testing.T) {
	const capacity = 5
	h := NewHistory(capacity, snapshotNamed("v0"))
	for i := 1; i <= 20; i++ {
		h.Push(snapshotNamed("v" + string(rune('0'+i%10))))
	}
	if h.Len() != capacity {
		t.Fatalf("Len = %d, want %d", h.Len(), capacity)
	}

	// Walk back as far as the window allows: capacity-1 undos, then a no-op.
	undos := 0
	for {
		if _, ok := h.Undo(); !ok {
			break
		}
		undos++
	}
	if undos != capacity-1 {
		t.Fatalf("undo depth = %d, want %d", undos, capacity-1)
	}
}

func TestHistorySnapshotsAreIndependent(t *testing.T) {
	live := snapshotNamed("v0")
	h := NewHistory(10, live)

	// Mutating live state after the push must not change the stored snapshot.
	live[0].Name = "mutated"
	h.Push(snapshotNamed("v1"))

	snap, ok := h.Undo()
	if !ok {
		t.Fatalf("undo failed")
	}
	if snap[0].Name != "v0" {
		t.Fatalf("stored snapshot aliased live state: %q", snap[0].Name)
	}

	// Mutating a returned snapshot must not corrupt the log.
	snap[0].Name = "scribbled"
	redone, ok := h.Redo()
	if !ok || redone[0].Name != "v1" {
		t.Fatalf("redo = %v, %v", redone, ok)
	}
	back, ok := h.Undo()
	if !ok || back[0].Name != "v0" {
		t.Fatalf("undo after scribble = %v, %v", back, ok)
	}
	if !reflect.DeepEqual(back, snapshotNamed("v0")) {
		t.Fatalf("snapshot diverged: %+v", back)
	}
}

func TestHistoryDefaultCapacity(t *testing.T) {
	h := NewHistory(0, nil)
	for i := 0; i < DefaultHistoryCapacity*2; i++ {
		h.Push(snapshotNamed("x"))
	}
	if h.Len() != DefaultHistoryCapacity {
		t.Fatalf("Len = %d, want %d", h.Len(), DefaultHistoryCapacity)
	}
}
