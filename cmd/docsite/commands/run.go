package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/dispatch"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// RunCmd implements the developer helper dispatcher. It is the default
// command, so `docsite build` and `docsite run build` are equivalent.
type RunCmd struct {
	Token string `arg:"" optional:"" name:"command" help:"One of: start, build, serve, clean, install, deploy, sync."`
	Watch bool   `short:"w" help:"With sync: keep watching the source and copy changes as they happen."`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	if _, ok := dispatch.ParseCommand(r.Token); !ok {
		if r.Token != "" {
			slog.Debug("Unknown command; showing usage", logfields.Command(r.Token))
		}
		return root.WriteUsage(g.stdout())
	}

	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d := dispatch.NewDispatcher(cfg, root.Dir)
	d.Out = g.stdout()
	d.Watch = r.Watch

	var reg *prom.Registry
	textfile := root.Path(cfg.Metrics.Textfile)
	if textfile != "" {
		reg = prom.NewRegistry()
		d.Recorder = metrics.NewPrometheusRecorder(reg)
	}

	err = d.Dispatch(ctx, r.Token)

	if reg != nil {
		if werr := metrics.WriteTextfile(textfile, reg); werr != nil {
			slog.Warn("Failed to write metrics", logfields.Path(textfile), logfields.Error(werr))
		}
	}
	return err
}
