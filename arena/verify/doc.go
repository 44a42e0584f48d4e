// Package verify checks the structural invariants of an allocator's block
// directory.
//
// # Overview
//
// The checks work on an alloc.Snapshot, so they never touch live arena
// memory and can run after every step of a randomized test:
//
//	a, _ := alloc.NewWithRegion(make([]byte, 4096), nil)
//	p := a.Malloc(100)
//	a.Free(p)
//	if err := verify.AllInvariants(a.Snapshot()); err != nil {
//	    t.Fatal(err)
//	}
//
// # Checks
//
//   - Coverage: blocks tile [0, arena length) with no gaps or overlaps,
//     every block is at least the minimum block size and 8-byte aligned.
//   - PhysicalChain: each header's next/prev links name its address-order
//     neighbours.
//   - Coalesced: no two physically adjacent blocks are both free.
//   - FreeIndex: the availability list holds exactly the free blocks, in
//     ascending address order, and the head is the lowest of them.
//
// AllInvariants runs Coverage for every layout and the remaining checks
// only for alloc.LayoutSplit; the conflated layout does not promise them.
//
// # ValidationError
//
// Every check returns *ValidationError on failure:
//
//	type ValidationError struct {
//	    Type    string         // Check name (e.g. "Coverage")
//	    Message string         // Human-readable description
//	    Offset  int64          // Block offset where the problem was found (-1 if N/A)
//	    Details map[string]any // Additional context
//	}
package verify
