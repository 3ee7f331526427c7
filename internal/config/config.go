// Package config resolves tradiff settings from tradiff.toml, a .env file and
// TRADIFF_* environment variables. Command-line flags are applied on top by
// the CLI, giving the precedence flag > env > toml > default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tradiff/internal/charset"
)

// FileName is the manifest looked up from the working directory upwards.
const FileName = "tradiff.toml"

const (
	EnvCharset  = "TRADIFF_CHARSET"
	EnvColor    = "TRADIFF_COLOR"
	EnvLogLevel = "TRADIFF_LOG_LEVEL"
	EnvCacheDir = "TRADIFF_CACHE_DIR"
	EnvCache    = "TRADIFF_CACHE"
	EnvXDGCache = "XDG_CACHE_HOME"
)

var (
	// ErrInvalidValue reports a setting outside its allowed values.
	ErrInvalidValue = errors.New("invalid config value")
	// ErrConfigNotFound is returned when an explicit config path does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)

type Input struct {
	Charset string `toml:"charset"`
}

type Output struct {
	Color          string `toml:"color"`  // auto|on|off
	Format         string `toml:"format"` // pretty|json
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type Config struct {
	Input    Input  `toml:"input"`
	Output   Output `toml:"output"`
	Cache    Cache  `toml:"cache"`
	LogLevel string `toml:"log_level"`

	// Path is the manifest the values came from, empty when none was found.
	Path string `toml:"-"`
}

func Default() Config {
	return Config{
		Input:    Input{Charset: charset.Default},
		Output:   Output{Color: "auto", Format: "pretty", MaxDiagnostics: 100},
		LogLevel: "warn",
	}
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// Path is an explicit manifest; it must exist.
	Path string
	// StartDir is where the upward search for tradiff.toml begins; "" means ".".
	StartDir string
	// DotEnv is the .env file to load; "" means ".env" in the working directory.
	DotEnv string
}

// Load builds the configuration from defaults, the manifest and the environment.
func Load(opts LoadOptions) (Config, error) {
	loadDotEnv(opts.DotEnv)

	cfg := Default()
	path := opts.Path
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
			}
			return cfg, fmt.Errorf("failed to stat %q: %w", path, err)
		}
	} else {
		found, ok, err := FindConfigFile(opts.StartDir)
		if err != nil {
			return cfg, err
		}
		if ok {
			path = found
		}
	}

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadDotEnv(path string) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		log.Debug().Str("path", path).Msg("no .env file loaded, using environment variables")
	}
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.Warn().Str("path", path).Strs("keys", keys).Msg("unknown config keys ignored")
	}
	cfg.Path = path
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Input.Charset = getEnv(EnvCharset, cfg.Input.Charset)
	cfg.Output.Color = getEnv(EnvColor, cfg.Output.Color)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.Cache.Dir = getEnv(EnvCacheDir, cfg.Cache.Dir)
	cfg.Cache.Enabled = getEnvBool(EnvCache, cfg.Cache.Enabled)
}

// FindConfigFile walks up from startDir to locate tradiff.toml.
func FindConfigFile(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	if err := charset.Validate(c.Input.Charset); err != nil {
		return fmt.Errorf("input.charset: %w", err)
	}
	if err := ValidateColor(c.Output.Color); err != nil {
		return fmt.Errorf("output.color: %w", err)
	}
	if err := ValidateFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("output.max_diagnostics: %w: %d", ErrInvalidValue, c.Output.MaxDiagnostics)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

func ValidateColor(v string) error {
	switch strings.ToLower(v) {
	case "auto", "on", "off":
		return nil
	}
	return fmt.Errorf("%w: %q (want auto, on or off)", ErrInvalidValue, v)
}

func ValidateFormat(v string) error {
	switch strings.ToLower(v) {
	case "pretty", "json":
		return nil
	}
	return fmt.Errorf("%w: %q (want pretty or json)", ErrInvalidValue, v)
}

// Level parses LogLevel for zerolog.
func (c Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidValue, c.LogLevel)
	}
	return lvl, nil
}

// CacheDir returns the cache directory: cache.dir, then
// $XDG_CACHE_HOME/tradiff, then the OS user cache directory.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if xdg := os.Getenv(EnvXDGCache); xdg != "" {
		return filepath.Join(xdg, "tradiff"), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user cache directory: %w", err)
	}
	return filepath.Join(base, "tradiff"), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvBool reads a boolean variable, falling back on absence or parse error.
func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
