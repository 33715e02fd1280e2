// Package command provides CLI command definitions for snipsync-cli.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/snipsync-go/internal/cli/config"
	"github.com/yndnr/snipsync-go/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show CLI configuration",
				Action: configShow,
			},
			{
				Name:      "set",
				Usage:     "Set a configuration value",
				ArgsUsage: "KEY VALUE",
				Description: "Supported keys: default_server, default_output, auth_token.\n" +
					"Values are written to ~/.snipsync/cli.yaml.",
				Action: configSet,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	cfg, err := cliconfig.Load("")
	if err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	switch output.Format(flags.Output) {
	case output.FormatJSON:
		return (&output.JSONFormatter{}).Format(os.Stdout, map[string]string{
			"default_server": cfg.DefaultServer,
			"default_output": cfg.DefaultOutput,
			"auth_token":     maskToken(cfg.AuthToken),
		})
	default:
		fmt.Printf("Config file:    %s\n", cliconfig.DefaultConfigPath())
		fmt.Printf("default_server: %s\n", cfg.DefaultServer)
		fmt.Printf("default_output: %s\n", cfg.DefaultOutput)
		fmt.Printf("auth_token:     %s\n", maskToken(cfg.AuthToken))
		return nil
	}
}

func configSet(c *cli.Context) error {
	key := c.Args().First()
	value := c.Args().Get(1)
	if key == "" || value == "" {
		return fmt.Errorf("usage: config set KEY VALUE")
	}

	cfg, err := cliconfig.Load("")
	if err != nil {
		return err
	}

	switch key {
	case "default_server":
		cfg.DefaultServer = value
	case "default_output":
		if value != "table" && value != "json" && value != "yaml" {
			return fmt.Errorf("invalid output format %q (table, json, yaml)", value)
		}
		cfg.DefaultOutput = value
	case "auth_token":
		cfg.AuthToken = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := cliconfig.Save(cfg, ""); err != nil {
		return err
	}

	fmt.Printf("Set %s.\n", key)
	return nil
}

// maskToken hides most of a token for display.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return token[:2] + "****" + token[len(token)-2:]
}
