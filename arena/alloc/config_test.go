package alloc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, format.DefaultArenaSize, cfg.ArenaSize)
	require.Equal(t, LayoutSplit, cfg.Layout)
	require.Equal(t, RegionHeap, cfg.Region)
	require.False(t, cfg.CheckCallocOverflow)
	require.NoError(t, cfg.Validate())
}

func Test_LoadConfig(t *testing.T) {
	path := writeConfig(t, `
arena_size = 65536
layout = "conflated"
region = "heap"
check_calloc_overflow = true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 65536, cfg.ArenaSize)
	require.Equal(t, LayoutConflated, cfg.Layout)
	require.Equal(t, RegionHeap, cfg.Region)
	require.True(t, cfg.CheckCallocOverflow)
}

func Test_LoadConfig_PartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "arena_size = 4096\n"))
	require.NoError(t, err)
	require.Equal(t, 4096, cfg.ArenaSize)
	require.Equal(t, LayoutSplit, cfg.Layout)
	require.Equal(t, RegionHeap, cfg.Region)
}

func Test_LoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "arena_size = 4096\ncolour = \"red\"\n", "unknown keys colour"},
		{"bad layout", "layout = \"ring\"\n", "unknown layout"},
		{"bad region", "region = \"disk\"\n", "unknown region source"},
		{"too small", "arena_size = 8\n", "below minimum block size"},
		{"bad toml", "arena_size = \n", "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func Test_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = "ring"
	require.ErrorIs(t, cfg.Validate(), ErrBadLayout)

	cfg = DefaultConfig()
	cfg.Region = "disk"
	require.ErrorIs(t, cfg.Validate(), ErrBadRegion)

	cfg = DefaultConfig()
	cfg.ArenaSize = format.MinBlockSize - 1
	require.ErrorIs(t, cfg.Validate(), ErrArenaTooSmall)
}

func Test_Config_Normalized(t *testing.T) {
	c := Config{}.normalized()
	require.Equal(t, format.DefaultArenaSize, c.ArenaSize)
	require.Equal(t, LayoutSplit, c.Layout)
	require.Equal(t, RegionHeap, c.Region)
}
