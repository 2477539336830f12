//go:build nowindow

package main

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func headlessEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SKETCHPAD_HEADLESS", "true")
	t.Setenv("SKETCHPAD_TPS", "1000")
	t.Setenv("SKETCHPAD_TICKS", "5")
	t.Setenv("SKETCHPAD_WIDTH", "64")
	t.Setenv("SKETCHPAD_HEIGHT", "48")
	t.Setenv("SKETCHPAD_INSPECT_ADDR", "")
}

func TestRunHeadlessWritesSnapshot(t *testing.T) {
	headlessEnv(t)
	out := filepath.Join(t.TempDir(), "frame.png")
	t.Setenv("SKETCHPAD_SNAPSHOT", out)

	assert.Equal(t, 0, run())
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunRejectsBadConfig(t *testing.T) {
	headlessEnv(t)
	t.Setenv("SKETCHPAD_TPS", "0")
	assert.Equal(t, 1, run())
}

func TestRunFailureStillShutsDownInspector(t *testing.T) {
	headlessEnv(t)
	addr := freeAddr(t)
	t.Setenv("SKETCHPAD_INSPECT_ADDR", addr)
	t.Setenv("SKETCHPAD_SNAPSHOT", filepath.Join(t.TempDir(), "missing", "frame.png"))

	assert.Equal(t, 1, run())

	l, err := net.Listen("tcp", addr)
	require.NoError(t, err, "inspector listener left open")
	l.Close()
}

func TestRunWithoutWindowSupport(t *testing.T) {
	headlessEnv(t)
	t.Setenv("SKETCHPAD_HEADLESS", "false")
	assert.Equal(t, 1, run())
}
