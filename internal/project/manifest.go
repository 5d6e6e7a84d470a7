package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultMaxDepth bounds type expansion when the manifest does not set one.
const DefaultMaxDepth = 64

// Manifest is a loaded prism.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is the parsed content of prism.toml.
type Config struct {
	Check CheckConfig `toml:"check"`
	Cache CacheConfig `toml:"cache"`
}

// CheckConfig controls the checker.
type CheckConfig struct {
	MaxDepth         int  `toml:"max-depth"`
	NoWarnings       bool `toml:"no-warnings"`
	WarningsAsErrors bool `toml:"warnings-as-errors"`
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // empty means the XDG default
}

// DefaultConfig returns the configuration used when no manifest exists.
func DefaultConfig() Config {
	return Config{
		Check: CheckConfig{MaxDepth: DefaultMaxDepth},
		Cache: CacheConfig{Enabled: true},
	}
}

// FindPrismToml walks up from startDir to locate prism.toml.
func FindPrismToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "prism.toml")
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

// LoadManifest locates and parses the nearest prism.toml above startDir.
// When none exists it returns ok=false and no error; callers fall back to
// DefaultConfig.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindPrismToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	// zero values from an explicit section must not erase the defaults
	if !meta.IsDefined("check", "max-depth") {
		cfg.Check.MaxDepth = DefaultMaxDepth
	}
	if !meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}
	if cfg.Check.MaxDepth <= 0 {
		return Config{}, fmt.Errorf("%s: [check].max-depth must be positive", path)
	}
	return cfg, nil
}

// StarterManifest is the prism.toml written by `prism init`.
const StarterManifest = `[check]
max-depth = 64
no-warnings = false
warnings-as-errors = false

[cache]
enabled = true
`
