package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewIDIsUniqueUUID(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	parsed, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("parse id %q: %v", first, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("unexpected uuid version: %d", parsed.Version())
	}
}

func TestStatic(t *testing.T) {
	got, err := Static("idem-1").NewID()
	if err != nil || got != "idem-1" {
		t.Fatalf("unexpected static id: %q, %v", got, err)
	}
}
