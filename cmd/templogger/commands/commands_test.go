//go:build !rp2040 && !rp2350

package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templogger-go/services/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		boardName, configPath, logLevel = "host", "", "INFO"
		probeTemp = 25
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigCommandPrintsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sensor:\n  scale: F\n"), 0o644))

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "scale: F")
	assert.Contains(t, out, "volume: /mnt/mydrive")
}

func TestConfigCommandUnknownBoard(t *testing.T) {
	_, err := execute(t, "config", "--board", "nope")
	require.ErrorIs(t, err, config.ErrUnknownBoard)
}

func TestProbe(t *testing.T) {
	out, err := execute(t, "probe", "--sim-temp=-10.5")
	require.NoError(t, err)
	assert.Equal(t, "-10 C\n", out)
}

func TestHalfDegrees(t *testing.T) {
	assert.Equal(t, int16(50), halfDegrees(25))
	assert.Equal(t, int16(51), halfDegrees(25.4))
	assert.Equal(t, int16(-21), halfDegrees(-10.5))
	assert.Equal(t, int16(250), halfDegrees(400))
}

func TestRunLoggerRequiresVolumeDir(t *testing.T) {
	cfg, err := config.Default("pico")
	require.NoError(t, err)
	err = runLogger(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorIs(t, err, errNoVolumeDir)
}

func TestRunLoggerWritesUntilCancelled(t *testing.T) {
	cfg, err := config.Default("host")
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "sdcard")
	require.NoError(t, os.Mkdir(dir, 0o755))
	cfg.Storage.Dir = dir
	cfg.Storage.PollMs = 5
	cfg.Console.Color = false

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	err = runLogger(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, cfg.Storage.File))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(raw), "\r\n"), "\r\n")
	require.NotEmpty(t, lines)
	for _, l := range lines {
		assert.Contains(t, l, "Temperature : 25 C")
	}
}
