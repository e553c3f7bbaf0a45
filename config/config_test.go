package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bufferpool/memory"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultFrameCount, cfg.FrameCount)
	require.Equal(t, DefaultPolicy, cfg.Policy)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultFrameCount, cfg.FrameCount)
	require.Equal(t, DefaultPolicy, cfg.Policy)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bufferpool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frame_count: 256\npolicy: clock\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 256, cfg.FrameCount)
	require.Equal(t, memory.PolicyClock, cfg.Policy)
}

func TestLoadYAMLPartialOverrideKeepsOtherDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bufferpool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frame_count: 64\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.FrameCount)
	require.Equal(t, DefaultPolicy, cfg.Policy)
}

func TestLoadMalformedYAMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bufferpool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frame_count: [unterminated\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
