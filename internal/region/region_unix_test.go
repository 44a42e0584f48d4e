//go:build linux || darwin || freebsd || netbsd || openbsd

package region

import "testing"

func TestAcquireMmapUnix(t *testing.T) {
	r, err := Acquire(SourceMmap, 1<<16)
	if err != nil {
		t.Fatalf("Acquire mmap: %v", err)
	}
	data := r.Bytes()
	if len(data) != 1<<16 {
		t.Fatalf("len mismatch: got %d", len(data))
	}
	if data[0] != 0 || data[len(data)-1] != 0 {
		t.Fatalf("anonymous mapping should be zero-filled")
	}
	data[100] = 0x5A
	if r.Bytes()[100] != 0x5A {
		t.Fatalf("mapping is not writable")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
