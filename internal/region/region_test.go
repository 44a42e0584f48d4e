package region

import (
	"errors"
	"testing"
)

func TestAcquireHeap(t *testing.T) {
	r, err := Acquire(SourceHeap, 4096)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if r.Len() != 4096 || r.Source() != SourceHeap {
		t.Fatalf("unexpected region: len=%d src=%s", r.Len(), r.Source())
	}
	for i, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zero", i)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if r.Bytes() != nil {
		t.Fatalf("Bytes should be nil after Close")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestAcquireEmptySourceDefaultsToHeap(t *testing.T) {
	r, err := Acquire("", 64)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if r.Source() != SourceHeap {
		t.Fatalf("expected heap source, got %s", r.Source())
	}
}

func TestAcquireBadInput(t *testing.T) {
	if _, err := Acquire(SourceHeap, 0); !errors.Is(err, ErrBadSize) {
		t.Fatalf("expected ErrBadSize, got %v", err)
	}
	if _, err := Acquire("tape", 64); !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("expected ErrUnknownSource, got %v", err)
	}
	if Valid("tape") || !Valid(SourceMmap) {
		t.Fatalf("Valid mismatch")
	}
}
