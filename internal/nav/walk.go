package nav

import (
	"errors"

	"git.home.luguber.info/inful/docsite/internal/docs"
)

// ErrStopWalk can be returned by a WalkFunc to end the walk early without error.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is called for every node with its sidebar id and nesting depth.
type WalkFunc func(sidebar string, depth int, n *Node) error

// Walk visits every node of every sidebar depth-first in declaration order.
func (t *Tree) Walk(fn WalkFunc) error {
	for _, sb := range t.Sidebars {
		err := walk(sb.Items, 0, func(depth int, n *Node) error { return fn(sb.ID, depth, n) })
		if errors.Is(err, ErrStopWalk) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func walk(nodes []*Node, depth int, fn func(int, *Node) error) error {
	for _, n := range nodes {
		if err := fn(depth, n); err != nil {
			return err
		}
		if err := walk(n.Items, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Sidebar returns the sidebar with id.
func (t *Tree) Sidebar(id string) (*Sidebar, bool) {
	for _, sb := range t.Sidebars {
		if sb.ID == id {
			return sb, true
		}
	}
	return nil, false
}

// Pages returns the slugs of a sidebar in reading order: doc leaves and
// category landing pages, exactly as they appear in the tree.
func (t *Tree) Pages(sidebar string) []string {
	return append([]string(nil), t.pages[sidebar]...)
}

// Pager holds the neighbours of a page in its sidebar.
type Pager struct {
	Sidebar  string
	Previous string
	Next     string
}

// PagerFor returns the previous and next pages for slug. The first sidebar
// containing slug wins. ok is false when no sidebar lists the page.
func (t *Tree) PagerFor(slug string) (Pager, bool) {
	for _, sb := range t.Sidebars {
		pages := t.pages[sb.ID]
		for i, p := range pages {
			if p != slug {
				continue
			}
			pg := Pager{Sidebar: sb.ID}
			if i > 0 {
				pg.Previous = pages[i-1]
			}
			if i+1 < len(pages) {
				pg.Next = pages[i+1]
			}
			return pg, true
		}
	}
	return Pager{}, false
}

// Orphans returns the corpus documents that no sidebar references, sorted
// by slug. Drafts are not reported.
func (t *Tree) Orphans(corpus interface{ Documents() []docs.Document }) []string {
	listed := make(map[string]struct{})
	for _, pages := range t.pages {
		for _, p := range pages {
			listed[p] = struct{}{}
		}
	}
	var out []string
	for _, d := range corpus.Documents() {
		if d.Draft {
			continue
		}
		if _, ok := listed[d.Slug]; !ok {
			out = append(out, d.Slug)
		}
	}
	return out
}
