// Package dispatch maps a single command token onto the site's developer
// workflows: delegated package scripts, clean and sync.
package dispatch

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Command is one of the closed set of dispatcher tokens.
type Command string

const (
	CommandStart   Command = config.ScriptStart
	CommandBuild   Command = config.ScriptBuild
	CommandServe   Command = config.ScriptServe
	CommandClean   Command = "clean"
	CommandInstall Command = config.ScriptInstall
	CommandDeploy  Command = config.ScriptDeploy
	CommandSync    Command = "sync"
)

var commands = []Command{
	CommandStart,
	CommandBuild,
	CommandServe,
	CommandClean,
	CommandInstall,
	CommandDeploy,
	CommandSync,
}

// Commands returns every command in usage order.
func Commands() []Command {
	return append([]Command(nil), commands...)
}

// ParseCommand matches token exactly against the known commands.
func ParseCommand(token string) (Command, bool) {
	for _, c := range commands {
		if string(c) == token {
			return c, true
		}
	}
	return "", false
}

// Delegated reports whether the command is forwarded to the package tooling.
func (c Command) Delegated() bool {
	return c != CommandClean && c != CommandSync
}

func (c Command) describe(cfg *config.Config) string {
	switch c {
	case CommandStart:
		return "Start the development server with live reload"
	case CommandBuild:
		return fmt.Sprintf("Build the static site into %s/", cfg.Site.BuildDir)
	case CommandServe:
		return "Serve the built site locally"
	case CommandClean:
		return fmt.Sprintf("Remove %s/ and %s/", cfg.Site.BuildDir, cfg.Site.CacheDir)
	case CommandInstall:
		return "Install site dependencies"
	case CommandDeploy:
		return "Deploy the built site"
	case CommandSync:
		return fmt.Sprintf("Copy documentation from %s into %s/", filepath.ToSlash(cfg.Sync.Source), cfg.Site.ContentDir)
	}
	return ""
}

// WriteUsage prints the command list.
func WriteUsage(w io.Writer, prog string, cfg *config.Config) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s <command>\n\nCommands:\n", prog)
	tw := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c, c.describe(cfg))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}
