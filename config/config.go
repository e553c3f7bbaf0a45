// Package config loads buffer pool defaults from an optional YAML file,
// falling back to built-in defaults for anything the file does not set.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"bufferpool/memory"
)

// Defaults give a 1024-frame pool of 4096-byte pages (4 MiB), replaced by LRU.
const (
	DefaultFrameCount = 1024
	DefaultPolicy     = memory.PolicyLRU
)

// Config holds the buffer pool's tunable parameters.
type Config struct {
	FrameCount int           `mapstructure:"frame_count"`
	Policy     memory.Policy `mapstructure:"policy"`
}

// Load reads path (if it exists) as a YAML config file, falling back to
// built-in defaults for anything the file does not set. A missing file is
// not an error -- it simply yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{
		FrameCount: DefaultFrameCount,
		Policy:     DefaultPolicy,
	}

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}
