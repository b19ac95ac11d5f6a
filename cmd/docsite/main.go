package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/cmd/docsite/commands"
	"git.home.luguber.info/inful/docsite/internal/config"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Exit))
}

// run parses args, executes the selected command and returns the exit code.
func run(args []string, stdout, stderr io.Writer, exit func(int)) int {
	cli := &commands.CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsite"),
		kong.Description("Developer helper for the Foundation Models documentation site."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Vars{
			"version":     version.String(),
			"config_path": config.DefaultPath,
		},
	)
	adapter := derrors.NewCLIErrorAdapter(false, slog.Default()).WithStderr(stderr)
	if err != nil {
		return adapter.Handle(derrors.InternalError("cannot build command line", err))
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		if isDispatchParseError(err) {
			// Stray flags or arguments to the default command are a request
			// for help, like any other unknown token.
			slog.Debug("Unparsable arguments; showing usage", slog.String("error", err.Error()))
			return adapter.Handle(cli.WriteUsage(stdout))
		}
		parser.Errorf("%s", err)
		return 2
	}

	err = kctx.Run(&commands.Global{Stdout: stdout}, cli)
	return derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithStderr(stderr).Handle(err)
}

// isDispatchParseError reports whether a parse error happened at the root or
// under the default run command rather than inside nav, features or init.
func isDispatchParseError(err error) bool {
	var perr *kong.ParseError
	if !errors.As(err, &perr) || perr.Context == nil {
		return true
	}
	selected := perr.Context.Selected()
	return selected == nil || selected.Name == "run"
}
