package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVersionCommand(t *testing.T) {
	resetFlags(t)
	output, err := captureOutput(t, func() error {
		rootCmd.SetArgs([]string{"version"})
		return rootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	assertContains(t, output, []string{"memctl " + version})
}

func TestRootCommand_LogFile(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "memctl.log")
	t.Cleanup(func() { log = zap.NewNop() })
	_, err := captureOutput(t, func() error {
		rootCmd.SetArgs([]string{"scenario", "--quiet", "--log-file", path, "--log-level", "debug"})
		return rootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"logger":"alloc"`)
}

func TestRootCommand_BadLogLevel(t *testing.T) {
	resetFlags(t)
	_, err := captureOutput(t, func() error {
		rootCmd.SetArgs([]string{"scenario", "--log-level", "loud"})
		return rootCmd.Execute()
	})
	if err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintHelpers_Quiet(t *testing.T) {
	resetFlags(t)
	quiet = true
	output, _ := captureOutput(t, func() error {
		printInfo("info\n")
		printVerbose("verbose\n")
		return nil
	})
	if strings.TrimSpace(output) != "" {
		t.Errorf("expected no output, got %q", output)
	}
}
