// Package nav builds the site's navigation tree from the hand-authored
// sidebar definition and checks it against the content corpus.
//
// Hand-authored entries keep their declaration order; only autogenerated
// entries are ordered by the corpus. Building does no I/O: documents are
// resolved through a Resolver.
package nav

import (
	"errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/docs"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// MaxDepth bounds category nesting.
const MaxDepth = 32

var (
	// ErrDanglingSlug indicates a leaf references a document that does not exist.
	ErrDanglingSlug = errors.New("document not found")
	// ErrEmptyCategory indicates a category without children.
	ErrEmptyCategory = errors.New("category has no items")
	// ErrMissingLabel indicates a category without a label.
	ErrMissingLabel = errors.New("category has no label")
	// ErrUnknownKind indicates an item type other than doc, category or autogenerated.
	ErrUnknownKind = errors.New("unknown item type")
	// ErrTooDeep indicates nesting beyond MaxDepth.
	ErrTooDeep = errors.New("navigation nested too deeply")
)

// Resolver gives the builder read access to the content corpus.
type Resolver interface {
	Lookup(slug string) (docs.Document, bool)
	List(dir string) []docs.Entry
}

// Node is a built navigation entry: a doc leaf or a category.
type Node struct {
	Kind      Kind // KindDoc or KindCategory
	Slug      string
	Label     string
	Link      string // category landing page slug, optional
	Collapsed bool
	Items     []*Node
}

// IsLeaf reports whether n references a single document.
func (n *Node) IsLeaf() bool { return n.Kind == KindDoc }

// Sidebar is one named navigation tree.
type Sidebar struct {
	ID    string
	Items []*Node
}

// Tree holds every built sidebar in declaration order.
type Tree struct {
	Sidebars []*Sidebar
	pages    map[string][]string // sidebar id -> page slugs in reading order
}

type builder struct {
	res      Resolver
	problems []error
}

func (b *builder) fail(sidebar string, where []string, format string, args ...any) {
	loc := sidebar
	if len(where) > 0 {
		loc += " > " + strings.Join(where, " > ")
	}
	b.problems = append(b.problems, fmt.Errorf("%s: "+format, append([]any{loc}, args...)...))
}

// Build validates the sidebar definition against res and returns the tree.
// All problems are reported together in one configuration error.
func Build(s *Sidebars, res Resolver) (*Tree, error) {
	b := &builder{res: res}
	t := &Tree{pages: make(map[string][]string)}

	for _, id := range s.IDs {
		items := b.items(id, nil, s.Items[id], 0)
		t.Sidebars = append(t.Sidebars, &Sidebar{ID: id, Items: items})
	}

	if len(b.problems) > 0 {
		return nil, derrors.Wrap(errors.Join(b.problems...), derrors.CategoryConfig, derrors.SeverityFatal, "invalid navigation").
			WithContext("problems", len(b.problems))
	}

	for _, sb := range t.Sidebars {
		var pages []string
		_ = walk(sb.Items, 0, func(_ int, n *Node) error {
			switch {
			case n.Kind == KindDoc:
				pages = append(pages, n.Slug)
			case n.Link != "":
				pages = append(pages, n.Link)
			}
			return nil
		})
		t.pages[sb.ID] = pages
	}
	return t, nil
}

func (b *builder) items(sidebar string, where []string, items []Item, depth int) []*Node {
	out := make([]*Node, 0, len(items))
	for i, it := range items {
		at := append(append([]string(nil), where...), itemName(it, i))
		switch it.Type {
		case KindDoc:
			if n := b.doc(sidebar, at, it); n != nil {
				out = append(out, n)
			}
		case KindCategory:
			if n := b.category(sidebar, at, it, depth); n != nil {
				out = append(out, n)
			}
		case KindAutogenerated:
			expanded := b.autogenerated(sidebar, at, strings.Trim(it.DirName, "/"), depth)
			if len(expanded) == 0 {
				b.fail(sidebar, at, "autogenerated directory %q: %w", it.DirName, ErrEmptyCategory)
			}
			out = append(out, expanded...)
		default:
			b.fail(sidebar, at, "%q: %w", it.Type, ErrUnknownKind)
		}
	}
	return out
}

func (b *builder) doc(sidebar string, at []string, it Item) *Node {
	d, ok := b.res.Lookup(it.ID)
	if !ok {
		b.fail(sidebar, at, "%q: %w", it.ID, ErrDanglingSlug)
		return nil
	}
	label := it.Label
	if label == "" {
		label = d.Label()
	}
	return &Node{Kind: KindDoc, Slug: d.Slug, Label: label}
}

func (b *builder) category(sidebar string, at []string, it Item, depth int) *Node {
	if depth+1 > MaxDepth {
		b.fail(sidebar, at, "%w (max %d)", ErrTooDeep, MaxDepth)
		return nil
	}
	if strings.TrimSpace(it.Label) == "" {
		b.fail(sidebar, at, "%w", ErrMissingLabel)
	}
	n := &Node{Kind: KindCategory, Label: it.Label, Collapsed: true}
	if it.Collapsed != nil {
		n.Collapsed = *it.Collapsed
	}
	if it.Link != "" {
		if _, ok := b.res.Lookup(it.Link); !ok {
			b.fail(sidebar, at, "link %q: %w", it.Link, ErrDanglingSlug)
		}
		n.Link = it.Link
	}
	if len(it.Items) == 0 {
		b.fail(sidebar, at, "%w", ErrEmptyCategory)
		return n
	}
	n.Items = b.items(sidebar, at, it.Items, depth+1)
	return n
}

func (b *builder) autogenerated(sidebar string, at []string, dir string, depth int) []*Node {
	if depth+1 > MaxDepth {
		b.fail(sidebar, at, "%w (max %d)", ErrTooDeep, MaxDepth)
		return nil
	}
	var out []*Node
	for _, e := range b.res.List(dir) {
		if e.Doc != nil {
			out = append(out, &Node{Kind: KindDoc, Slug: e.Doc.Slug, Label: e.Doc.Label()})
			continue
		}
		children := b.autogenerated(sidebar, append(append([]string(nil), at...), e.Dir), e.Dir, depth+1)
		if len(children) == 0 {
			continue
		}
		out = append(out, &Node{Kind: KindCategory, Label: docs.Humanize(e.Dir), Collapsed: true, Items: children})
	}
	return out
}

func itemName(it Item, i int) string {
	switch {
	case it.Label != "":
		return it.Label
	case it.ID != "":
		return it.ID
	case it.DirName != "":
		return "autogenerated(" + it.DirName + ")"
	default:
		return fmt.Sprintf("#%d", i)
	}
}
