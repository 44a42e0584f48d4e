package alloc

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/joshuapare/memkit/internal/format"
	"github.com/joshuapare/memkit/internal/region"
)

// Runtime debug flag for allocation logging - controlled by MEMKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMKIT_LOG_ALLOC") != ""

// Layout selects how the block directory is maintained.
type Layout string

const (
	// LayoutSplit keeps the physical chain and the free index apart.
	LayoutSplit Layout = "split"

	// LayoutConflated shares one link pair between chain and free list.
	LayoutConflated Layout = "conflated"
)

// Region sources accepted in Config.Region.
const (
	RegionHeap = region.SourceHeap
	RegionMmap = region.SourceMmap
)

// Config controls allocator construction.
type Config struct {
	// ArenaSize is the length of a lazily acquired region. Default: 1 MiB.
	ArenaSize int `toml:"arena_size"`

	// Layout picks the directory layout. Default: LayoutSplit.
	Layout Layout `toml:"layout"`

	// Region is where a lazily acquired region comes from. Default: heap.
	Region region.Source `toml:"region"`

	// CheckCallocOverflow makes Calloc fail when count*size wraps instead of
	// allocating the wrapped product.
	CheckCallocOverflow bool `toml:"check_calloc_overflow"`

	// Logger receives debug events. nil means no logging.
	Logger *zap.Logger `toml:"-"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		ArenaSize: format.DefaultArenaSize,
		Layout:    LayoutSplit,
		Region:    RegionHeap,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Unknown keys are an
// error.
//
// Example file:
//
//	arena_size = 65536
//	layout = "split"
//	region = "mmap"
//	check_calloc_overflow = true
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("alloc: load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("alloc: load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("alloc: load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.ArenaSize < format.MinBlockSize {
		return fmt.Errorf("%w: %d", ErrArenaTooSmall, c.ArenaSize)
	}
	switch c.Layout {
	case LayoutSplit, LayoutConflated:
	default:
		return fmt.Errorf("%w: %q", ErrBadLayout, c.Layout)
	}
	if !region.Valid(c.Region) {
		return fmt.Errorf("%w: %q", ErrBadRegion, c.Region)
	}
	return nil
}

// normalized fills zero fields with defaults.
func (c Config) normalized() Config {
	if c.ArenaSize == 0 {
		c.ArenaSize = format.DefaultArenaSize
	}
	if c.Layout == "" {
		c.Layout = LayoutSplit
	}
	if c.Region == "" {
		c.Region = RegionHeap
	}
	return c
}

func (c *Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if logAlloc {
		if l, err := zap.NewDevelopment(); err == nil {
			return l.Named("alloc")
		}
	}
	return zap.NewNop()
}
