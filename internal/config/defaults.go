package config

import "path/filepath"

// Script keys for delegated commands. The dispatcher owns the full command
// set; only these five are forwarded to the package manager.
const (
	ScriptStart   = "start"
	ScriptBuild   = "build"
	ScriptServe   = "serve"
	ScriptInstall = "install"
	ScriptDeploy  = "deploy"
)

// DefaultSyncSource is the sibling checkout holding the authoritative docs.
var DefaultSyncSource = filepath.FromSlash("../FoundationModels-Examples/docs/")

// DefaultScripts mirrors the package.json scripts of a Docusaurus site.
func DefaultScripts() map[string][]string {
	return map[string][]string{
		ScriptStart:   {"start"},
		ScriptBuild:   {"run", "build"},
		ScriptServe:   {"run", "serve"},
		ScriptInstall: {"install"},
		ScriptDeploy:  {"run", "deploy"},
	}
}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles Site configuration defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Title == "" {
		cfg.Site.Title = "Documentation Site"
	}
	if cfg.Site.ContentDir == "" {
		cfg.Site.ContentDir = "docs"
	}
	if cfg.Site.BuildDir == "" {
		cfg.Site.BuildDir = "build"
	}
	if cfg.Site.CacheDir == "" {
		cfg.Site.CacheDir = ".docusaurus"
	}
	if cfg.Site.StaticDir == "" {
		cfg.Site.StaticDir = "static"
	}
	return nil
}

// ToolingDefaultApplier fills the package manager and any script the user
// did not override.
type ToolingDefaultApplier struct{}

func (ToolingDefaultApplier) Domain() string { return "tooling" }

func (ToolingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Tooling.PackageManager == "" {
		cfg.Tooling.PackageManager = "npm"
	}
	if cfg.Tooling.Scripts == nil {
		cfg.Tooling.Scripts = map[string][]string{}
	}
	for name, args := range DefaultScripts() {
		if _, ok := cfg.Tooling.Scripts[name]; !ok {
			cfg.Tooling.Scripts[name] = args
		}
	}
	return nil
}

// FilesDefaultApplier handles sync source, sidebars and features paths.
type FilesDefaultApplier struct{}

func (FilesDefaultApplier) Domain() string { return "files" }

func (FilesDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Sync.Source == "" {
		cfg.Sync.Source = DefaultSyncSource
	}
	if cfg.Navigation.SidebarsFile == "" {
		cfg.Navigation.SidebarsFile = "sidebars.yaml"
	}
	if cfg.Homepage.FeaturesFile == "" {
		cfg.Homepage.FeaturesFile = "features.yaml"
	}
	return nil
}

var defaultAppliers = []DefaultApplier{
	SiteDefaultApplier{},
	ToolingDefaultApplier{},
	FilesDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
