// Package features holds the homepage feature list: an ordered set of
// cards, each with a title, an icon asset and a short Markdown description.
package features

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// ErrMissingField indicates a feature without a title or icon.
var ErrMissingField = errors.New("feature field missing")

// Feature is one homepage card.
type Feature struct {
	Title       string `yaml:"title"`
	Icon        string `yaml:"icon"`        // asset path relative to the static directory
	Description string `yaml:"description"` // Markdown
}

// List is the feature list in declared order.
type List []Feature

// Parse decodes a features document. Order is preserved.
func Parse(data []byte) (List, error) {
	var list List
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "invalid feature list")
	}

	var problems []error
	for i, f := range list {
		if strings.TrimSpace(f.Title) == "" {
			problems = append(problems, fmt.Errorf("feature #%d: title: %w", i+1, ErrMissingField))
		}
		if strings.TrimSpace(f.Icon) == "" {
			problems = append(problems, fmt.Errorf("feature #%d: icon: %w", i+1, ErrMissingField))
		}
	}
	if len(problems) > 0 {
		return nil, derrors.Wrap(errors.Join(problems...), derrors.CategoryConfig, derrors.SeverityFatal, "invalid feature list")
	}
	return list, nil
}

// LoadFile reads and parses a features.yaml file.
func LoadFile(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "cannot read feature list").
			WithContext("path", path)
	}
	return Parse(data)
}

// MissingIcons returns the icons that do not exist below staticDir.
// Absolute URLs are not checked.
func (l List) MissingIcons(staticDir string) []string {
	var missing []string
	for _, f := range l {
		if strings.Contains(f.Icon, "://") {
			continue
		}
		p := filepath.Join(staticDir, filepath.FromSlash(strings.TrimPrefix(f.Icon, "/")))
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, f.Icon)
		}
	}
	return missing
}
