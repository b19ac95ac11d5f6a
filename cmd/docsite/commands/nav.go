package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/docs"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

// NavCmd groups the navigation subcommands.
type NavCmd struct {
	Check NavCheckCmd `cmd:"" default:"1" help:"Validate sidebars against the content directory"`
	Show  NavShowCmd  `cmd:"" help:"Print the resolved sidebar tree"`
}

// NavCheckCmd validates the sidebar file.
type NavCheckCmd struct {
	Strict bool `help:"Treat documents missing from every sidebar as errors."`
}

// NavShowCmd prints the built tree.
type NavShowCmd struct {
	Sidebar string `short:"s" help:"Only print this sidebar."`
}

func loadTree(root *CLI) (*nav.Tree, *docs.Corpus, error) {
	cfg, err := root.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	contentDir := root.Path(cfg.Site.ContentDir)
	corpus, err := docs.Load(contentDir)
	if err != nil {
		return nil, nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "cannot load content").
			WithContext("path", contentDir)
	}
	slog.Debug("Content loaded", logfields.Stage("content"), logfields.Path(contentDir), logfields.Count(corpus.Len()))

	sidebarsFile := root.Path(cfg.Navigation.SidebarsFile)
	sidebars, err := nav.LoadFile(sidebarsFile)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Sidebars parsed", logfields.Stage("sidebars"), logfields.Path(sidebarsFile), logfields.Count(len(sidebars.IDs)))

	tree, err := nav.Build(sidebars, corpus)
	if err != nil {
		return nil, nil, err
	}
	return tree, corpus, nil
}

func (c *NavCheckCmd) Run(g *Global, root *CLI) error {
	tree, corpus, err := loadTree(root)
	if err != nil {
		return err
	}

	orphans := tree.Orphans(corpus)
	for _, slug := range orphans {
		slog.Warn("Document is not reachable from any sidebar", logfields.Slug(slug))
	}
	if c.Strict && len(orphans) > 0 {
		return derrors.ConfigurationError(fmt.Sprintf("%d document(s) missing from navigation", len(orphans))).
			WithContext("slugs", strings.Join(orphans, ", "))
	}

	pages := 0
	for _, sb := range tree.Sidebars {
		n := len(tree.Pages(sb.ID))
		slog.Debug("Sidebar resolved", logfields.Sidebar(sb.ID), logfields.Count(n))
		pages += n
	}
	_, err = fmt.Fprintf(g.stdout(), "Navigation OK: %d sidebar(s), %d page(s), %d orphan(s)\n", len(tree.Sidebars), pages, len(orphans))
	return err
}

func (c *NavShowCmd) Run(g *Global, root *CLI) error {
	tree, _, err := loadTree(root)
	if err != nil {
		return err
	}
	if c.Sidebar != "" {
		if _, ok := tree.Sidebar(c.Sidebar); !ok {
			return derrors.ValidationFailed("sidebar", fmt.Sprintf("unknown sidebar %q", c.Sidebar))
		}
	}

	out := g.stdout()
	current := ""
	return tree.Walk(func(sidebar string, depth int, n *nav.Node) error {
		if c.Sidebar != "" && sidebar != c.Sidebar {
			return nil
		}
		if sidebar != current {
			current = sidebar
			if _, err := fmt.Fprintf(out, "%s\n", sidebar); err != nil {
				return err
			}
		}
		indent := strings.Repeat("  ", depth+1)
		if n.IsLeaf() {
			_, err := fmt.Fprintf(out, "%s- %s (%s)\n", indent, n.Label, n.Slug)
			return err
		}
		suffix := ""
		if n.Link != "" {
			suffix = " -> " + n.Link
		}
		_, err := fmt.Fprintf(out, "%s+ %s%s\n", indent, n.Label, suffix)
		return err
	})
}
