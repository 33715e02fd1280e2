// Package command provides CLI command definitions for snipsync-cli.
//
// It uses urfave/cli/v2 for command parsing and supports both
// single-command mode and interactive REPL mode.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/snipsync-go/internal/cli/config"
	"github.com/yndnr/snipsync-go/internal/cli/connection"
	"github.com/yndnr/snipsync-go/internal/cli/repl"
	"github.com/yndnr/snipsync-go/internal/infra/buildinfo"
)

// App creates the CLI application. Defaults for the server and output
// flags come from ~/.snipsync/cli.yaml when it exists.
func App() *cli.App {
	cfg, err := cliconfig.Load("")
	if err != nil {
		cfg = cliconfig.Default()
	}

	app := &cli.App{
		Name:    "snipsync-cli",
		Usage:   "Snippet synchronization command-line tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(cfg),
		Commands: []*cli.Command{
			SnippetCommand(),
			CollectionCommand(),
			SystemCommand(),
			ConfigCommand(),
		},
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "repl",
		Usage: "Start interactive mode",
		Action: func(c *cli.Context) error {
			r := repl.New(func(args []string) error {
				return app.Run(append([]string{"snipsync-cli"}, args...))
			})
			return r.Run()
		},
	})

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags(cfg *cliconfig.CLIConfig) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "snipsync server address (e.g., localhost:5180)",
			EnvVars: []string{"SNIPSYNC_SERVER"},
			Value:   cfg.DefaultServer,
		},
		&cli.StringFlag{
			Name:    "auth-token",
			Aliases: []string{"t"},
			Usage:   "Bearer token for authentication",
			EnvVars: []string{"SNIPSYNC_AUTH_TOKEN"},
			Value:   cfg.AuthToken,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   cfg.DefaultOutput,
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	// Server connection
	Server    string
	AuthToken string

	// Output format
	Output string // table, json, yaml
	Wide   bool

	// Other
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:    c.String("server"),
		AuthToken: c.String("auth-token"),
		Output:    c.String("output"),
		Wide:      c.Bool("wide"),
		Verbose:   c.Bool("verbose"),
	}
}

// EnsureConnected returns an HTTP client for the configured server.
func EnsureConnected(c *cli.Context) (*connection.HTTPClient, error) {
	flags := ParseGlobalFlags(c)

	if flags.Server == "" {
		return nil, fmt.Errorf("no server address configured (use --server or SNIPSYNC_SERVER)")
	}

	return connection.NewHTTPClient(flags.Server, flags.AuthToken), nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
