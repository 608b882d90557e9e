// Package config holds the settings read from the gbcore
// configuration file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type Config struct {
	General  GeneralConfig  `toml:"general"`
	Debugger DebuggerConfig `toml:"debugger"`
}

type GeneralConfig struct {
	// Model to emulate, detected from the boot ROM when empty.
	Model    string `toml:"model"`
	BootROM  string `toml:"boot_rom"`
	LogLevel string `toml:"log_level"`
	// Pacing limits the runner to the hardware frame rate.
	Pacing bool `toml:"pacing"`
	// Trace is the path of an execution trace, compressed when it ends in ".br".
	Trace string `toml:"trace"`
}

type DebuggerConfig struct {
	Addr       string `toml:"addr"`
	Breakpoint string `toml:"breakpoint"`
}

const cfgFilename = "config.toml"

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		General: GeneralConfig{
			LogLevel: "info",
			Pacing:   true,
		},
		Debugger: DebuggerConfig{
			Addr: "localhost:7070",
		},
	}
}

// DefaultPath returns the path of the configuration file in the
// user configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locating config directory")
	}
	return filepath.Join(dir, "gbcore", cfgFilename), nil
}

// Load reads the configuration at path over the defaults. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return cfg, errors.Wrapf(err, "decoding %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory if needed.
func Save(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return os.WriteFile(path, buf, 0o644)
}

// ParseAddress parses a 16-bit address written in hex, with or
// without a "0x" or "$" prefix.
func ParseAddress(s string) (uint16, error) {
	t := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "0x"), "$")
	v, err := strconv.ParseUint(t, 16, 16)
	if err != nil {
		return 0, errors.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}
