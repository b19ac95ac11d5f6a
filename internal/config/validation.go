package config

import (
	"fmt"
	"path/filepath"
	"sort"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// ValidateConfig checks a defaulted configuration.
func ValidateConfig(cfg *Config) error {
	if cfg.Tooling.PackageManager == "" {
		return derrors.ValidationFailed("tooling.package_manager", "must not be empty")
	}

	known := DefaultScripts()
	names := make([]string, 0, len(cfg.Tooling.Scripts))
	for name := range cfg.Tooling.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := known[name]; !ok {
			return derrors.ValidationFailed("tooling.scripts", fmt.Sprintf("unknown command %q", name))
		}
		if len(cfg.Tooling.Scripts[name]) == 0 {
			return derrors.ValidationFailed("tooling.scripts", fmt.Sprintf("command %q has no arguments", name))
		}
	}

	if cfg.Sync.WatchInterval < 0 {
		return derrors.ValidationFailed("sync.watch_interval", "must not be negative")
	}

	// clean removes these; refuse anything that resolves to the project root.
	for field, dir := range map[string]string{"site.build_dir": cfg.Site.BuildDir, "site.cache_dir": cfg.Site.CacheDir} {
		if filepath.Clean(dir) == "." || filepath.Clean(dir) == string(filepath.Separator) {
			return derrors.ValidationFailed(field, "must not be the project root")
		}
	}
	return nil
}
