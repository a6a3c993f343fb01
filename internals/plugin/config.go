package plugin

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Config is the plugin's file configuration. Everything in it has a sane
// default so the plugin runs without any config file at all.
type Config struct {
	Log    LogConfig    `toml:"log"`
	TP     TPConfig     `toml:"tp"`
	Status StatusConfig `toml:"status"`
}

type LogConfig struct {
	// Level is one of debug, info, warning, quiet.
	Level string `toml:"level"`
	// File is the log file path; "none" disables file logging.
	File string `toml:"file"`
	// Stream is stdout, stderr or none.
	Stream string `toml:"stream"`
}

type TPConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type StatusConfig struct {
	// Addr enables the local status endpoint when non-empty,
	// e.g. "127.0.0.1:8787".
	Addr string `toml:"addr"`
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			File:   PluginID + ".log",
			Stream: "stdout",
		},
		TP: TPConfig{
			Host: "127.0.0.1",
			Port: 12136,
		},
	}
}

// LoadConfig reads the TOML config file at path. A missing file is not an
// error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	tree, err := toml.LoadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := tree.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for anything the file left empty.
	defaults := DefaultConfig()
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}
	if cfg.Log.Stream == "" {
		cfg.Log.Stream = defaults.Log.Stream
	}
	if cfg.TP.Host == "" {
		cfg.TP.Host = defaults.TP.Host
	}
	if cfg.TP.Port == 0 {
		cfg.TP.Port = defaults.TP.Port
	}

	return cfg, nil
}
