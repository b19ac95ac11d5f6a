package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "docsite.yaml"

// Config represents the docsite helper configuration.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Tooling    ToolingConfig    `yaml:"tooling"`
	Sync       SyncConfig       `yaml:"sync"`
	Navigation NavigationConfig `yaml:"navigation"`
	Homepage   HomepageConfig   `yaml:"homepage"`
	Metrics    MetricsConfig    `yaml:"metrics,omitempty"`
}

// SiteConfig describes the directories the site generator reads and writes.
type SiteConfig struct {
	Title      string `yaml:"title"`
	ContentDir string `yaml:"content_dir"`
	BuildDir   string `yaml:"build_dir"`
	CacheDir   string `yaml:"cache_dir"`
	StaticDir  string `yaml:"static_dir"`
}

// ToolingConfig describes how delegated commands reach the package tooling.
// Scripts maps a command token to the arguments given to PackageManager.
type ToolingConfig struct {
	PackageManager string              `yaml:"package_manager"`
	Scripts        map[string][]string `yaml:"scripts,omitempty"`
	Env            map[string]string   `yaml:"env,omitempty"`
}

// SyncConfig configures the sync command.
type SyncConfig struct {
	Source        string   `yaml:"source"`
	WatchInterval Duration `yaml:"watch_interval,omitempty"`
}

// NavigationConfig points at the sidebar definition.
type NavigationConfig struct {
	SidebarsFile string `yaml:"sidebars_file"`
}

// HomepageConfig points at the homepage feature list.
type HomepageConfig struct {
	FeaturesFile string `yaml:"features_file"`
}

// MetricsConfig enables writing run metrics in Prometheus text format.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Load loads configuration from the specified file.
//
// A missing file is not an error: the helper has to work in a bare checkout,
// so defaults are returned instead. Env files are read from the directory
// holding configPath.
func Load(configPath string) (*Config, error) {
	loadEnvFiles(filepath.Dir(configPath))

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, derrors.ConfigInvalid(configPath, fmt.Errorf("read: %w", err))
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, derrors.ConfigInvalid(configPath, fmt.Errorf("unmarshal: %w", err))
		}
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	// The appliers only fill empty fields and cannot fail on a zero Config.
	_ = applyDefaults(cfg)
	return cfg
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := &Config{
		Site: SiteConfig{Title: "Foundation Models Documentation"},
		Tooling: ToolingConfig{
			Env: map[string]string{"DOCUSAURUS_TELEMETRY": "0"},
		},
	}
	if err := applyDefaults(example); err != nil {
		return err
	}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
