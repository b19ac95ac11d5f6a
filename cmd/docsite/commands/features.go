package commands

import (
	"fmt"
	"log/slog"
	"os"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/features"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// FeaturesCmd validates the homepage feature list and optionally renders it.
type FeaturesCmd struct {
	HTML string `name:"html" placeholder:"FILE" help:"Write the rendered feature cards to FILE."`
}

func (f *FeaturesCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	list, err := features.LoadFile(root.Path(cfg.Homepage.FeaturesFile))
	if err != nil {
		return err
	}

	for _, icon := range list.MissingIcons(root.Path(cfg.Site.StaticDir)) {
		slog.Warn("Feature icon not found in static directory", logfields.File(icon))
	}

	out := g.stdout()
	for i, feat := range list {
		if _, err := fmt.Fprintf(out, "%d. %s [%s]\n", i+1, feat.Title, feat.Icon); err != nil {
			return err
		}
	}

	if f.HTML == "" {
		return nil
	}
	file, err := os.Create(f.HTML)
	if err != nil {
		return derrors.FileSystemError("create "+f.HTML, err)
	}
	if err := list.Render(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return derrors.FileSystemError("write "+f.HTML, err)
	}
	slog.Info("Feature cards written", logfields.Path(f.HTML), logfields.Count(len(list)))
	return nil
}
