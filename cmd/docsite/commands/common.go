package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/dispatch"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Global carries process-wide collaborators into every command.
type Global struct {
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path, relative to --dir" default:"${config_path}"`
	Dir     string           `short:"C" name:"dir" help:"Site root directory" default:"." type:"existingdir"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run      RunCmd      `cmd:"" default:"withargs" help:"Run a site command: start, build, serve, clean, install, deploy or sync"`
	Nav      NavCmd      `cmd:"" help:"Inspect the sidebar navigation"`
	Features FeaturesCmd `cmd:"" help:"Validate and render the homepage feature list"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// Path resolves p against the site root.
func (c *CLI) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// LoadConfig loads the configuration file named by --config.
func (c *CLI) LoadConfig() (*config.Config, error) {
	path := c.Path(c.configPath())
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Configuration loaded", slog.String("path", path))
	return cfg, nil
}

// WriteUsage prints the dispatcher usage. Help must work even when the
// configuration is broken, so a config that fails to load falls back to the
// defaults.
func (c *CLI) WriteUsage(w io.Writer) error {
	cfg, err := config.Load(c.Path(c.configPath()))
	if err != nil {
		slog.Debug("Using default configuration for usage", logfields.Error(err))
		cfg = config.Default()
	}
	return dispatch.WriteUsage(w, "docsite", cfg)
}

func (c *CLI) configPath() string {
	if c.Config == "" {
		return config.DefaultPath
	}
	return c.Config
}
