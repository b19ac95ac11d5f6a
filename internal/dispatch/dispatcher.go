package dispatch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/syncdocs"
	"git.home.luguber.info/inful/docsite/internal/toolchain"
)

// Syncer performs one documentation sync pass.
type Syncer interface {
	Sync(ctx context.Context) (syncdocs.Report, error)
}

// Watcher keeps syncing until the context ends.
type Watcher interface {
	Run(ctx context.Context) error
}

// Cleaner removes directories. Missing directories are not an error.
type Cleaner interface {
	Clean(dirs ...string) error
}

// RemoveAllCleaner deletes directories with os.RemoveAll.
type RemoveAllCleaner struct{}

func (RemoveAllCleaner) Clean(dirs ...string) error {
	for _, dir := range dirs {
		if _, err := os.Lstat(dir); errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Directory already absent", logfields.Path(dir))
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return derrors.FileSystemError("remove "+dir, err)
		}
		slog.Info("Removed directory", logfields.Path(dir))
	}
	return nil
}

// Dispatcher runs one command per invocation. It keeps no state between
// calls beyond its collaborators.
type Dispatcher struct {
	Config   *config.Config
	Runner   toolchain.Runner
	Syncer   Syncer
	Watcher  Watcher
	Cleaner  Cleaner
	Recorder metrics.Recorder
	Out      io.Writer

	// Dir is the site root. Relative directories in Config resolve against
	// it and delegated tools run in it. Empty means the working directory.
	Dir string
	// Prog is the program name shown in usage text.
	Prog string
	// Watch switches sync to watch mode.
	Watch bool
}

// NewDispatcher wires the production collaborators for cfg rooted at dir.
func NewDispatcher(cfg *config.Config, dir string) *Dispatcher {
	d := &Dispatcher{
		Config:   cfg,
		Runner:   toolchain.NewExecRunner(),
		Cleaner:  RemoveAllCleaner{},
		Recorder: metrics.NoopRecorder{},
		Out:      os.Stdout,
		Dir:      dir,
		Prog:     "docsite",
	}
	syncer := &syncdocs.Syncer{
		Source: d.path(cfg.Sync.Source),
		Dest:   d.path(cfg.Site.ContentDir),
	}
	d.Syncer = syncer
	d.Watcher = &syncdocs.Watcher{
		Syncer:   syncer,
		Interval: cfg.Sync.WatchInterval.Std(),
		OnSync: func(rep syncdocs.Report, err error) {
			if err == nil {
				d.recordSync(rep)
			}
		},
	}
	return d
}

// Dispatch runs the command named by token. An unknown or empty token prints
// usage and succeeds.
func (d *Dispatcher) Dispatch(ctx context.Context, token string) error {
	cmd, ok := ParseCommand(token)
	if !ok {
		if token != "" {
			slog.Debug("Unknown command; showing usage", logfields.Command(token))
		}
		d.recorder().IncCommandOutcome("help", metrics.ResultUsage)
		return WriteUsage(d.out(), d.prog(), d.Config)
	}

	log := slog.With(logfields.RunID(uuid.NewString()), logfields.Command(string(cmd)))
	log.Debug("Dispatching command")

	start := time.Now()
	err := d.run(ctx, cmd, log)
	elapsed := time.Since(start)

	d.recorder().ObserveCommandDuration(string(cmd), elapsed)
	d.recorder().IncCommandOutcome(string(cmd), outcome(ctx, err))

	if err != nil {
		log.Debug("Command failed", logfields.DurationMS(float64(elapsed.Milliseconds())), logfields.Error(err))
		return err
	}
	log.Debug("Command finished", logfields.DurationMS(float64(elapsed.Milliseconds())))
	return nil
}

func (d *Dispatcher) run(ctx context.Context, cmd Command, log *slog.Logger) error {
	switch cmd {
	case CommandClean:
		return d.clean(log)
	case CommandSync:
		return d.sync(ctx, log)
	default:
		return d.delegate(ctx, cmd, log)
	}
}

func (d *Dispatcher) delegate(ctx context.Context, cmd Command, log *slog.Logger) error {
	tool := d.Config.Tooling.PackageManager
	args, ok := d.Config.Tooling.Scripts[string(cmd)]
	if !ok {
		return derrors.ConfigurationError("no script configured for " + string(cmd)).
			WithContext("command", string(cmd))
	}
	inv := toolchain.Invocation{
		Name: tool,
		Args: args,
		Dir:  d.Dir,
		Env:  d.Config.Tooling.Env,
	}
	log.Info("Delegating to package tooling", logfields.Tool(tool), slog.String("invocation", inv.String()))

	err := d.Runner.Run(ctx, inv)
	if err == nil {
		return nil
	}
	var exitErr *toolchain.ExitError
	if errors.As(err, &exitErr) {
		return derrors.DelegationFailure(tool, exitErr.Code, err)
	}
	// The tool never started.
	return derrors.DelegationFailure(tool, 0, err)
}

func (d *Dispatcher) clean(log *slog.Logger) error {
	dirs := []string{d.path(d.Config.Site.BuildDir), d.path(d.Config.Site.CacheDir)}
	log.Info("Cleaning generated output", logfields.Count(len(dirs)))
	return d.cleaner().Clean(dirs...)
}

func (d *Dispatcher) sync(ctx context.Context, log *slog.Logger) error {
	if d.Watch && d.Watcher != nil {
		log.Info("Starting documentation sync in watch mode")
		return d.Watcher.Run(ctx)
	}
	rep, err := d.Syncer.Sync(ctx)
	d.recordSync(rep)
	return err
}

func (d *Dispatcher) recordSync(rep syncdocs.Report) {
	r := d.recorder()
	r.AddSyncFiles(metrics.SyncCreated, rep.Created)
	r.AddSyncFiles(metrics.SyncUpdated, rep.Updated)
	r.AddSyncFiles(metrics.SyncUnchanged, rep.Unchanged)
}

func (d *Dispatcher) path(p string) string {
	if p == "" || filepath.IsAbs(p) || d.Dir == "" {
		return p
	}
	return filepath.Join(d.Dir, p)
}

func (d *Dispatcher) recorder() metrics.Recorder {
	if d.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return d.Recorder
}

func (d *Dispatcher) cleaner() Cleaner {
	if d.Cleaner == nil {
		return RemoveAllCleaner{}
	}
	return d.Cleaner
}

func (d *Dispatcher) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

func (d *Dispatcher) prog() string {
	if d.Prog == "" {
		return "docsite"
	}
	return d.Prog
}

func outcome(ctx context.Context, err error) metrics.ResultLabel {
	switch {
	case ctx.Err() != nil:
		return metrics.ResultCanceled
	case err != nil:
		return metrics.ResultFailed
	default:
		return metrics.ResultSuccess
	}
}
