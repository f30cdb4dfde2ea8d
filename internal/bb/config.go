// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bb

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages engine configuration.
type Config struct {
	v *viper.Viper
}

// NewConfig creates a configuration with defaults.
func NewConfig() *Config {
	v := viper.New()

	v.SetDefault("search.workers", max(runtime.NumCPU()-1, 1))
	v.SetDefault("search.greedy_seed", false)

	v.SetDefault("net.listen", "")
	v.SetDefault("net.join", "")

	v.SetDefault("log.level", "info")

	return &Config{v: v}
}

// LoadFromFile loads configuration from a file, keeping defaults for
// anything the file does not set.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Set overrides a single key.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

func (c *Config) Workers() int     { return c.v.GetInt("search.workers") }
func (c *Config) GreedySeed() bool { return c.v.GetBool("search.greedy_seed") }
func (c *Config) Listen() string   { return c.v.GetString("net.listen") }
func (c *Config) Join() string     { return c.v.GetString("net.join") }
func (c *Config) LogLevel() string { return c.v.GetString("log.level") }

// CreateLogger creates a logger honoring the configured level.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Logger()
}
