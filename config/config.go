// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const appName = "pbxdecode"

var (
	ErrNoPlugins       = errors.New("decoder.plugins must not be empty")
	ErrUnknownFallback = errors.New("decoder.fallback is not in decoder.plugins")
	ErrNegativeValue   = errors.New("value must not be negative")
	ErrNoSchemes       = errors.New("input.url_schemes entries must end with \"://\"")
)

type Config struct {
	MusicDirectory string        `koanf:"music_directory"`
	LogLevel       string        `koanf:"log_level"`
	Decoder        DecoderConfig `koanf:"decoder"`
	Input          InputConfig   `koanf:"input"`
	Pipe           PipeConfig    `koanf:"pipe"`
	Output         OutputConfig  `koanf:"output"`
}

type DecoderConfig struct {
	Plugins  []string `koanf:"plugins"`  // registry order
	Fallback string   `koanf:"fallback"` // plugin for remote streams nothing identifies
}

type InputConfig struct {
	URLSchemes   []string      `koanf:"url_schemes"`
	HTTPTimeout  time.Duration `koanf:"http_timeout"`
	RewindBuffer int           `koanf:"rewind_buffer"` // bytes kept for replay after probing
	ReadyBytes   int           `koanf:"ready_bytes"`
}

type PipeConfig struct {
	Capacity    int `koanf:"capacity"` // chunks
	ChunkFrames int `koanf:"chunk_frames"`
}

// OutputConfig selects the PCM format pushed to the pipe. Zero keeps the
// decoded value.
type OutputConfig struct {
	SampleRate int `koanf:"sample_rate"`
	Channels   int `koanf:"channels"`
}

// Default returns a fully populated configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Decoder: DecoderConfig{
			Plugins:  []string{"mp3", "vorbis", "flac", "wav", "aiff"},
			Fallback: "mp3",
		},
		Input: InputConfig{
			URLSchemes:   []string{"http://", "https://"},
			HTTPTimeout:  10 * time.Second,
			RewindBuffer: 256 << 10,
			ReadyBytes:   32 << 10,
		},
		Pipe: PipeConfig{
			Capacity:    64,
			ChunkFrames: 1024,
		},
	}
}

// Load reads the per-user file and then ./config.toml over the defaults.
// Missing files are skipped.
func Load() (*Config, error) {
	return LoadFiles(Paths()...)
}

// Paths lists the config files Load looks at, lowest priority first.
func Paths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
}

// LoadFiles loads paths in order, later files overriding earlier ones.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	// Lists replace the defaults instead of being merged element-wise.
	if k.Exists("decoder.plugins") {
		cfg.Decoder.Plugins = k.Strings("decoder.plugins")
	}
	if k.Exists("input.url_schemes") {
		cfg.Input.URLSchemes = k.Strings("input.url_schemes")
	}

	cfg.MusicDirectory = expandPath(cfg.MusicDirectory)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Decoder.Plugins) == 0 {
		return ErrNoPlugins
	}
	if c.Decoder.Fallback != "" && !slices.Contains(c.Decoder.Plugins, c.Decoder.Fallback) {
		return fmt.Errorf("%w: %q", ErrUnknownFallback, c.Decoder.Fallback)
	}

	for _, s := range c.Input.URLSchemes {
		if !strings.HasSuffix(s, "://") {
			return fmt.Errorf("%w: %q", ErrNoSchemes, s)
		}
	}

	for name, v := range map[string]int64{
		"input.http_timeout":  int64(c.Input.HTTPTimeout),
		"input.rewind_buffer": int64(c.Input.RewindBuffer),
		"input.ready_bytes":   int64(c.Input.ReadyBytes),
		"pipe.capacity":       int64(c.Pipe.Capacity),
		"pipe.chunk_frames":   int64(c.Pipe.ChunkFrames),
		"output.sample_rate":  int64(c.Output.SampleRate),
		"output.channels":     int64(c.Output.Channels),
	} {
		if v < 0 {
			return fmt.Errorf("%s: %w", name, ErrNegativeValue)
		}
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
