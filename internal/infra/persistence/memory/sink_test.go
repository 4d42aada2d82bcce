package memory

import (
	"context"
	"errors"
	"testing"

	"electroplan/pkg/domain"
)

func TestSinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSink()

	initial, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load empty sink: %v", err)
	}
	if len(initial) != 0 {
		t.Fatalf("expected empty collection, got %d projects", len(initial))
	}

	projects := []domain.Project{{Base: domain.Base{ID: "p1"}, Name: "Casa", Type: domain.TypeResidential}}
	if err := s.Save(ctx, projects); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller's slice must not leak into the sink.
	projects[0].Name = "changed"

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name != "Casa" {
		t.Fatalf("loaded = %+v", loaded)
	}

	// And mutating the loaded copy must not change stored state.
	loaded[0].Name = "changed again"
	again, _ := s.Load(ctx)
	if again[0].Name != "Casa" {
		t.Fatalf("stored state aliased by Load result")
	}
}

func TestSinkFailWith(t *testing.T) {
	ctx := context.Background()
	s := NewSink()
	boom := errors.New("disk full")
	s.FailWith(boom)
	if err := s.Save(ctx, nil); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	s.FailWith(nil)
	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("save after reset: %v", err)
	}
	if s.Saves() != 2 {
		t.Fatalf("Saves = %d, want 2", s.Saves())
	}
}
