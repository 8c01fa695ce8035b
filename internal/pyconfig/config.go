// Package pyconfig holds the Configuration Model: the YAML-backed
// settings spec.md §6 names (enabled analyzers, caching, and each
// analyzer's thresholds), restructured from the teacher's
// internal/config.Config pattern (DefaultConfig/Load/Save/Validate,
// environment-variable overrides).
package pyconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katichai/pyqa/internal/principles"
)

// DefaultCacheDir is used when CacheDir is left empty.
const DefaultCacheDir = ".pyqa/cache"

// DefaultConfigPath is where Load looks when path is empty.
const DefaultConfigPath = ".pyqa/config.yaml"

// AnalysisConfig holds run-level knobs that are not specific to any one
// principle analyzer.
type AnalysisConfig struct {
	Parallel bool `yaml:"parallel"`
}

// Config is the root configuration object, matching spec.md §6's
// external-interface table.
type Config struct {
	EnabledAnalyzers []string `yaml:"enabled_analyzers"`
	UseCache         bool     `yaml:"use_cache"`
	CacheDir         string   `yaml:"cache_dir"`

	// ExcludePatterns holds doublestar glob patterns (e.g.
	// "**/migrations/**", "test_*.py") that opt matching files out of
	// directory analysis; see source.Enumerate.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	Analysis AnalysisConfig `yaml:"analysis"`

	SRP  principles.SRPConfig  `yaml:"srp_config"`
	ISP  principles.ISPConfig  `yaml:"isp_config"`
	KISS principles.KISSConfig `yaml:"kiss_config"`
	DRY  principles.DRYConfig  `yaml:"dry_config"`
}

// DefaultConfig returns a Config with every default spec.md §6
// documents.
func DefaultConfig() *Config {
	return &Config{
		EnabledAnalyzers: []string{"srp", "ocp", "lsp", "isp", "dip", "kiss", "dry"},
		UseCache:         true,
		CacheDir:         DefaultCacheDir,
		Analysis:         AnalysisConfig{Parallel: true},
		SRP:              principles.DefaultSRPConfig(),
		ISP:              principles.DefaultISPConfig(),
		KISS:             principles.DefaultKISSConfig(),
		DRY:              principles.DefaultDRYConfig(),
	}
}

// Load reads path (defaulting to DefaultConfigPath), falling back to
// DefaultConfig when the file does not exist, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.overrideFromEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pyconfig: reading %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("pyconfig: parsing %s: %w", path, err)
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

// overrideFromEnv applies PYQA_-prefixed environment overrides over
// whatever was loaded from file/defaults.
func (c *Config) overrideFromEnv() {
	if dir := os.Getenv("PYQA_CACHE_DIR"); dir != "" {
		c.CacheDir = dir
	}
	if v := os.Getenv("PYQA_USE_CACHE"); v != "" {
		c.UseCache = v != "0" && v != "false"
	}
	if v := os.Getenv("PYQA_PARALLEL"); v != "" {
		c.Analysis.Parallel = v != "0" && v != "false"
	}
}

// Save writes c to path (defaulting to DefaultConfigPath), creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigPath
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("pyconfig: creating %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("pyconfig: marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("pyconfig: writing %s: %w", path, err)
	}
	return nil
}

// Validate checks that every configured threshold is in a sane range.
func (c *Config) Validate() error {
	if len(c.EnabledAnalyzers) == 0 {
		return fmt.Errorf("pyconfig: enabled_analyzers must not be empty")
	}
	valid := map[string]bool{"srp": true, "ocp": true, "lsp": true, "isp": true, "dip": true, "kiss": true, "dry": true}
	for _, name := range c.EnabledAnalyzers {
		if !valid[name] {
			return fmt.Errorf("pyconfig: unknown analyzer %q in enabled_analyzers", name)
		}
	}
	if c.CacheDir == "" {
		return fmt.Errorf("pyconfig: cache_dir must not be empty")
	}
	if c.SRP.MaxResponsibilities <= 0 {
		return fmt.Errorf("pyconfig: srp_config.max_responsibilities must be positive")
	}
	if c.SRP.CohesionThreshold < 0 || c.SRP.CohesionThreshold > 1 {
		return fmt.Errorf("pyconfig: srp_config.cohesion_threshold must be between 0 and 1")
	}
	if c.ISP.MaxInterfaceMethods <= 0 {
		return fmt.Errorf("pyconfig: isp_config.max_interface_methods must be positive")
	}
	if c.KISS.MaxMethodLines <= 0 || c.KISS.MaxNestingDepth <= 0 || c.KISS.MaxCyclomaticComplexity <= 0 ||
		c.KISS.MaxCognitiveComplexity <= 0 || c.KISS.MaxParameters <= 0 {
		return fmt.Errorf("pyconfig: kiss_config thresholds must all be positive")
	}
	if c.DRY.MinDuplicateLines <= 0 || c.DRY.MinStringLength <= 0 || c.DRY.MinStringOccurrences <= 0 {
		return fmt.Errorf("pyconfig: dry_config thresholds must all be positive")
	}
	if c.DRY.SimilarityThreshold < 0 || c.DRY.SimilarityThreshold > 1 {
		return fmt.Errorf("pyconfig: dry_config.similarity_threshold must be between 0 and 1")
	}
	return nil
}
