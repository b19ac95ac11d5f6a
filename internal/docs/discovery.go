// Package docs loads the content corpus: every Markdown/MDX page under the
// content directory, keyed by slug.
package docs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inful/mdfp"

	derrors "git.home.luguber.info/inful/docsite/internal/docs/errors"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Corpus is an immutable, slug-indexed view of the content directory.
type Corpus struct {
	root   string
	docs   map[string]Document
	byDir  map[string][]string // dir -> slugs directly inside it
	subdir map[string][]string // dir -> child dirs
}

// Load walks dir and returns the corpus. Hidden files and directories and
// "_"-prefixed partials are skipped.
func Load(dir string) (*Corpus, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrContentDirNotFound, dir, err)
	}
	if st, statErr := os.Stat(root); statErr != nil || !st.IsDir() {
		return nil, fmt.Errorf("%w: %s", derrors.ErrContentDirNotFound, root)
	}

	c := &Corpus{
		root:   root,
		docs:   make(map[string]Document),
		byDir:  make(map[string][]string),
		subdir: make(map[string][]string),
	}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if p != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsMarkdownFile(name) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		doc, err := loadDocument(p, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if prev, dup := c.docs[doc.Slug]; dup {
			return fmt.Errorf("%w: %q from %s and %s", derrors.ErrDuplicateSlug, doc.Slug, prev.RelPath, doc.RelPath)
		}
		c.add(doc)
		slog.Debug("Discovered document", logfields.File(doc.RelPath), logfields.Slug(doc.Slug))
		return nil
	})
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("%w: %w", derrors.ErrDocsDirWalkFailed, err)
		}
		return nil, err
	}

	slog.Info("Content corpus loaded", logfields.Path(root), logfields.Count(len(c.docs)))
	return c, nil
}

func (c *Corpus) add(doc Document) {
	c.docs[doc.Slug] = doc
	c.byDir[doc.Dir] = append(c.byDir[doc.Dir], doc.Slug)

	// Register every ancestor directory so autogenerated navigation can
	// descend into folders that only hold subfolders.
	for dir := doc.Dir; dir != ""; {
		parent := path.Dir(dir)
		if parent == "." {
			parent = ""
		}
		if !contains(c.subdir[parent], dir) {
			c.subdir[parent] = append(c.subdir[parent], dir)
		}
		dir = parent
	}
}

func loadDocument(absPath, rel string) (Document, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, rel, err)
	}

	rawFM, _, _, err := frontmatter.Split(content)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %w", derrors.ErrInvalidFrontMatter, rel, err)
	}
	meta, body, err := frontmatter.Decode(content)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %w", derrors.ErrInvalidFrontMatter, rel, err)
	}

	relDir := path.Dir(rel)
	if relDir == "." {
		relDir = ""
	}
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	id, prefixPos, hasPrefixPos := splitNumberPrefix(base)
	if meta.ID != "" {
		id = meta.ID
	}

	dir := stripPrefixes(relDir)
	slug := id
	if dir != "" {
		slug = dir + "/" + id
	}

	doc := Document{
		Slug:         slug,
		Path:         absPath,
		RelPath:      rel,
		Dir:          dir,
		SidebarLabel: meta.SidebarLabel,
		Draft:        meta.Draft,
		Fingerprint:  mdfp.CalculateFingerprintFromParts(string(rawFM), string(body)),
	}

	switch {
	case meta.Title != "":
		doc.Title = meta.Title
	case FirstHeading(body) != "":
		doc.Title = FirstHeading(body)
	default:
		doc.Title = Humanize(id)
	}

	switch {
	case meta.SidebarPosition != nil:
		doc.Position, doc.HasPosition = *meta.SidebarPosition, true
	case hasPrefixPos:
		doc.Position, doc.HasPosition = prefixPos, true
	}
	return doc, nil
}

// Root returns the absolute content directory.
func (c *Corpus) Root() string { return c.root }

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }

// Has reports whether a document with slug exists.
func (c *Corpus) Has(slug string) bool {
	_, ok := c.docs[slug]
	return ok
}

// Lookup returns the document for slug.
func (c *Corpus) Lookup(slug string) (Document, bool) {
	d, ok := c.docs[slug]
	return d, ok
}

// Documents returns all documents sorted by slug.
func (c *Corpus) Documents() []Document {
	out := make([]Document, 0, len(c.docs))
	for _, d := range c.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Entry is one child of a content directory: either a document or a
// subdirectory.
type Entry struct {
	Doc         *Document // nil for directories
	Dir         string    // slug directory for directory entries
	Position    float64
	HasPosition bool
}

// Name returns the sort key used when positions tie.
func (e Entry) Name() string {
	if e.Doc != nil {
		return path.Base(e.Doc.Slug)
	}
	return path.Base(e.Dir)
}

// List returns the documents and subdirectories directly inside dir ("" is
// the root), ordered the way the site generator orders autogenerated
// sidebars: positioned entries first by position, then the rest by name.
// A directory takes the smallest position found among its documents.
func (c *Corpus) List(dir string) []Entry {
	dir = strings.Trim(dir, "/")
	if dir == "." {
		dir = ""
	}

	var entries []Entry
	for _, slug := range c.byDir[dir] {
		d := c.docs[slug]
		entries = append(entries, Entry{Doc: &d, Position: d.Position, HasPosition: d.HasPosition})
	}
	for _, sub := range c.subdir[dir] {
		e := Entry{Dir: sub}
		e.Position, e.HasPosition = c.minPosition(sub)
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.HasPosition != b.HasPosition {
			return a.HasPosition
		}
		if a.HasPosition && a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Name() < b.Name()
	})
	return entries
}

func (c *Corpus) minPosition(dir string) (float64, bool) {
	var (
		minPos float64
		found  bool
	)
	for _, slug := range c.byDir[dir] {
		d := c.docs[slug]
		if d.HasPosition && (!found || d.Position < minPos) {
			minPos, found = d.Position, true
		}
	}
	return minPos, found
}

// IsMarkdownFile checks if a file is a Markdown or MDX page.
func IsMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".mdx" || ext == ".markdown"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
