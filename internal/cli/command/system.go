// Package command provides CLI command definitions for snipsync-cli.
package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipsync-go/internal/cli/connection"
	"github.com/yndnr/snipsync-go/internal/cli/output"
	"github.com/yndnr/snipsync-go/internal/infra/buildinfo"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "System management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "health",
				Usage:  "Check server health",
				Action: systemHealth,
			},
			{
				Name:   "ready",
				Usage:  "Check server readiness",
				Action: systemReady,
			},
			{
				Name:   "version",
				Usage:  "Show client version",
				Action: systemVersion,
			},
		},
	}
}

func systemHealth(c *cli.Context) error {
	return checkEndpoint(c, "/health")
}

func systemReady(c *cli.Context) error {
	return checkEndpoint(c, "/ready")
}

func checkEndpoint(c *cli.Context, path string) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result map[string]any
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	switch output.Format(flags.Output) {
	case output.FormatJSON:
		return (&output.JSONFormatter{}).Format(os.Stdout, result)
	case output.FormatYAML:
		return (&output.YAMLFormatter{}).Format(os.Stdout, result)
	default:
		status := "ok"
		if s, ok := result["status"].(string); ok {
			status = s
		}
		fmt.Printf("Server %s: %s\n", client.BaseURL(), status)
		return nil
	}
}

func systemVersion(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	switch output.Format(flags.Output) {
	case output.FormatJSON:
		return (&output.JSONFormatter{}).Format(os.Stdout, buildinfo.Get())
	case output.FormatYAML:
		return (&output.YAMLFormatter{}).Format(os.Stdout, buildinfo.Get())
	default:
		fmt.Printf("snipsync-cli %s\n", buildinfo.String())
		return nil
	}
}
