package docs

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Document is one Markdown/MDX page of the content corpus. Bodies stay on
// disk; the corpus keeps only what navigation needs.
type Document struct {
	Slug         string  // content path minus extension, '/' separated; front matter id replaces the last segment
	Path         string  // absolute path to the file
	RelPath      string  // path relative to the content directory
	Dir          string  // slug directory ("" at the root)
	Title        string  // front matter title, first heading, or humanized name
	SidebarLabel string  // front matter sidebar_label, falls back to Title
	Position     float64 // sidebar_position or numeric filename prefix
	HasPosition  bool
	Draft        bool
	Fingerprint  string
}

// Label returns the text a navigation entry shows for the document.
func (d Document) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}

// numberPrefix matches ordering prefixes such as "01-" or "2_" which the
// site generator strips from ids and uses for ordering.
var numberPrefix = regexp.MustCompile(`^(\d+)[-_.]`)

// splitNumberPrefix strips an ordering prefix from a path segment.
func splitNumberPrefix(segment string) (string, float64, bool) {
	m := numberPrefix.FindStringSubmatch(segment)
	if m == nil || len(m[0]) == len(segment) {
		return segment, 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return segment, 0, false
	}
	return segment[len(m[0]):], n, true
}

// stripPrefixes removes ordering prefixes from every segment of a slash path.
func stripPrefixes(p string) string {
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i], _, _ = splitNumberPrefix(part)
	}
	return strings.Join(parts, "/")
}

var titleCaser = cases.Title(language.English)

// Humanize turns a slug segment such as "getting-started" into "Getting Started".
func Humanize(segment string) string {
	base := path.Base(segment)
	base, _, _ = splitNumberPrefix(base)
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return titleCaser.String(strings.TrimSpace(base))
}
