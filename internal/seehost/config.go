// Package seehost loads host-authored configuration that presets an
// interpreter's compatibility flags, recursion budget, and
// security-domain policy before it is handed to a host application.
package seehost

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/adamnemecek/see-mirror-sub001/internal/runtime"
)

// HostConfig is the on-disk shape a host may check into its own repo to
// pin an interpreter's startup posture, rather than wiring the
// equivalent runtime.System fields up by hand at every call site.
type HostConfig struct {
	// Compat is a textual compatibility-flag string, parsed with
	// runtime.ParseCompatFlags (e.g. "= js14 sgmlcom no_errata").
	Compat string `yaml:"compat"`

	// RecursionLimit is the per-interpreter call-depth budget; -1 or
	// omitted means unlimited.
	RecursionLimit int `yaml:"recursionLimit"`

	// Locale is the locale string new interpreters snapshot at Init.
	Locale string `yaml:"locale"`

	// Debug enables the convenience surface's file:line throw-site
	// capture (runtime.System.Debug).
	Debug bool `yaml:"debug"`

	// SecurityDomain names a policy the host resolves on its own; the
	// substrate treats security domains as opaque (any), so this is
	// carried as a string for the host to interpret.
	SecurityDomain string `yaml:"securityDomain"`
}

// Load reads and parses a HostConfig from path.
func Load(path string) (*HostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seehost: reading config: %w", err)
	}
	cfg := &HostConfig{RecursionLimit: -1}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("seehost: parsing config: %w", err)
	}
	return cfg, nil
}

// ApplyToSystem builds a runtime.System whose defaults reflect cfg,
// starting from runtime.NewDefaultSystem so every unconfigured hook
// keeps its usual behavior.
func (cfg *HostConfig) ApplyToSystem() (*runtime.System, error) {
	sys := runtime.NewDefaultSystem()
	flags, err := runtime.ParseCompatFlags(cfg.Compat, 0)
	if err != nil {
		return nil, fmt.Errorf("seehost: %w", err)
	}
	sys.DefaultCompat = flags
	sys.DefaultRecursionLimit = cfg.RecursionLimit
	sys.DefaultLocale = cfg.Locale
	sys.Debug = cfg.Debug
	return sys, nil
}
