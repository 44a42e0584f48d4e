package buf

import (
	"math"
	"testing"
)

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}

	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
	if _, ok := Slice(data, 1, math.MaxInt); ok {
		t.Fatalf("Slice should reject a length that runs past the end")
	}
}

func TestAddU64(t *testing.T) {
	if sum, ok := AddU64(10, 5); !ok || sum != 15 {
		t.Fatalf("AddU64(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddU64(math.MaxUint64, 1); ok {
		t.Fatalf("expected wrap when adding to MaxUint64")
	}
}

func TestMulU64(t *testing.T) {
	if p, ok := MulU64(10, 4); !ok || p != 40 {
		t.Fatalf("MulU64(10,4)=%d,%v want 40,true", p, ok)
	}
	if p, ok := MulU64(0, math.MaxUint64); !ok || p != 0 {
		t.Fatalf("MulU64 with zero should be 0,true; got %d,%v", p, ok)
	}
	p, ok := MulU64(1<<33, 1<<33)
	if ok {
		t.Fatalf("expected overflow for 2^33 * 2^33")
	}
	if p != 0 {
		t.Fatalf("wrapped product of 2^66 should be 0, got %d", p)
	}
}

func TestCheckRange(t *testing.T) {
	end, err := CheckRange(100, 10, 20)
	if err != nil || end != 30 {
		t.Fatalf("CheckRange(100,10,20)=%d,%v want 30,nil", end, err)
	}
	if _, err := CheckRange(100, 90, 20); err == nil {
		t.Fatalf("expected bounds error")
	}
	if _, err := CheckRange(100, math.MaxUint64, 2); err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestClamp(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got := Clamp(data, 3, 10); len(got) != 2 || got[0] != 3 {
		t.Fatalf("Clamp should truncate at end, got %v", got)
	}
	if got := Clamp(data, 5, 1); got != nil {
		t.Fatalf("Clamp past end should be nil, got %v", got)
	}
	if got := Clamp(data, 1, math.MaxUint64); len(got) != 4 {
		t.Fatalf("Clamp with wrapping length should truncate, got %v", got)
	}
}
