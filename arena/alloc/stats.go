package alloc

import (
	"fmt"
	"io"
)

// Stats counts entry-point activity since construction.
type Stats struct {
	AllocCalls       int    `json:"alloc_calls"`       // Malloc calls, including those made by Calloc and Realloc
	AllocFailures    int    `json:"alloc_failures"`    // Allocations that returned Nil for lack of space or init
	FreeCalls        int    `json:"free_calls"`        // Free calls, including those made by Realloc
	FreeIgnored      int    `json:"free_ignored"`      // Frees of pointers outside the arena
	CallocCalls      int    `json:"calloc_calls"`      // Calloc calls
	ReallocCalls     int    `json:"realloc_calls"`     // Realloc calls
	ReallocInPlace   int    `json:"realloc_in_place"`  // Reallocs satisfied by the existing block
	ReallocMoved     int    `json:"realloc_moved"`     // Reallocs that copied to a new block
	SplitCount       int    `json:"split_count"`       // Blocks split on allocation
	CoalesceForward  int    `json:"coalesce_forward"`  // Merges with the following block
	CoalesceBackward int    `json:"coalesce_backward"` // Merges into the preceding block
	BytesAllocated   uint64 `json:"bytes_allocated"`   // Block bytes handed out, headers included
	BytesFreed       uint64 `json:"bytes_freed"`       // Block bytes released, headers included
}

// Stats returns a copy of the counters.
func (a *Allocator) Stats() Stats { return a.stats }

// PrintStats writes a human-readable summary of the counters to w.
func (a *Allocator) PrintStats(w io.Writer) {
	s := a.stats
	fmt.Fprintf(w, "=== ALLOCATOR STATISTICS ===\n")
	fmt.Fprintf(w, "Layout:             %s\n", a.cfg.Layout)
	fmt.Fprintf(w, "Alloc calls:        %d (failed: %d)\n", s.AllocCalls, s.AllocFailures)
	fmt.Fprintf(w, "Free calls:         %d (ignored: %d)\n", s.FreeCalls, s.FreeIgnored)
	fmt.Fprintf(w, "Calloc calls:       %d\n", s.CallocCalls)
	fmt.Fprintf(w, "Realloc calls:      %d (in place: %d, moved: %d)\n",
		s.ReallocCalls, s.ReallocInPlace, s.ReallocMoved)
	fmt.Fprintf(w, "Bytes allocated:    %d\n", s.BytesAllocated)
	fmt.Fprintf(w, "Bytes freed:        %d\n", s.BytesFreed)
	fmt.Fprintf(w, "Block splits:       %d\n", s.SplitCount)
	fmt.Fprintf(w, "Coalesce fwd:       %d\n", s.CoalesceForward)
	fmt.Fprintf(w, "Coalesce back:      %d\n", s.CoalesceBackward)

	if a.ar == nil {
		fmt.Fprintf(w, "Arena:              not initialized\n")
		return
	}
	u := a.Usage()
	fmt.Fprintf(w, "Arena:              %d bytes (used: %d, free: %d)\n", u.TotalBytes, u.UsedBytes, u.FreeBytes)
	fmt.Fprintf(w, "Blocks:             %d used, %d free (largest free: %d)\n",
		u.UsedBlocks, u.FreeBlocks, u.LargestFree)
}
