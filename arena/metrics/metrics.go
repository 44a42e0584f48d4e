// Package metrics exports allocator counters and arena usage to Prometheus.
//
// The collector reads its source on every scrape, so it adds no work to the
// allocation path:
//
//	l := locked.New(a)
//	prometheus.MustRegister(metrics.NewCollector(l, "memkit"))
//
// The source must be safe to read concurrently with the allocator's users;
// pass a *locked.Allocator when the arena is shared.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/memkit/arena/alloc"
)

// Source provides the values a Collector exports.
type Source interface {
	Stats() alloc.Stats
	Usage() alloc.Usage
}

// Collector is a prometheus.Collector over one allocator.
type Collector struct {
	src Source

	allocCalls    *prometheus.Desc
	allocFailures *prometheus.Desc
	freeCalls     *prometheus.Desc
	splits        *prometheus.Desc
	coalesces     *prometheus.Desc
	arenaBytes    *prometheus.Desc
	blocks        *prometheus.Desc
	largestFree   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a collector whose metric names start with namespace.
func NewCollector(src Source, namespace string) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, nil)
	}
	return &Collector{
		src:           src,
		allocCalls:    desc("alloc_calls_total", "Allocation requests, including those made by calloc and realloc."),
		allocFailures: desc("alloc_failures_total", "Allocation requests that returned no block."),
		freeCalls:     desc("free_calls_total", "Release requests."),
		splits:        desc("splits_total", "Blocks split to satisfy an allocation."),
		coalesces:     desc("coalesce_total", "Free blocks merged with a neighbour.", "direction"),
		arenaBytes:    desc("arena_bytes", "Arena bytes by block state, headers included.", "state"),
		blocks:        desc("blocks", "Blocks by state.", "state"),
		largestFree:   desc("largest_free_bytes", "Extent of the largest free block."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocCalls
	ch <- c.allocFailures
	ch <- c.freeCalls
	ch <- c.splits
	ch <- c.coalesces
	ch <- c.arenaBytes
	ch <- c.blocks
	ch <- c.largestFree
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	u := c.src.Usage()

	counter := func(d *prometheus.Desc, v int, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), labels...)
	}
	gauge := func(d *prometheus.Desc, v float64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, labels...)
	}

	counter(c.allocCalls, s.AllocCalls)
	counter(c.allocFailures, s.AllocFailures)
	counter(c.freeCalls, s.FreeCalls)
	counter(c.splits, s.SplitCount)
	counter(c.coalesces, s.CoalesceForward, "forward")
	counter(c.coalesces, s.CoalesceBackward, "backward")

	gauge(c.arenaBytes, float64(u.UsedBytes), "used")
	gauge(c.arenaBytes, float64(u.FreeBytes), "free")
	gauge(c.blocks, float64(u.UsedBlocks), "used")
	gauge(c.blocks, float64(u.FreeBlocks), "free")
	gauge(c.largestFree, float64(u.LargestFree))
}
