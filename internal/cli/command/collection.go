// Package command provides CLI command definitions for snipsync-cli.
package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipsync-go/internal/cli/connection"
	"github.com/yndnr/snipsync-go/internal/cli/output"
)

// CollectionCommand returns the collection subcommand group.
func CollectionCommand() *cli.Command {
	return &cli.Command{
		Name:    "collection",
		Aliases: []string{"coll"},
		Usage:   "Whole-collection export and import",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Export the full collection as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Write to file instead of stdout",
					},
				},
				Action: collectionExport,
			},
			{
				Name:  "import",
				Usage: "Import a collection JSON file (replaces matching snippets)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Collection JSON file to import",
						Required: true,
					},
				},
				Action: collectionImport,
			},
		},
	}
}

func collectionExport(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/v1/export")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	body, err := connection.ReadRaw(resp)
	if err != nil {
		return err
	}

	if file := c.String("file"); file != "" {
		if err := os.WriteFile(file, body, 0644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		fmt.Printf("Collection exported to %s (%d bytes).\n", file, len(body))
		return nil
	}

	_, err = os.Stdout.Write(body)
	return err
}

func collectionImport(c *cli.Context) error {
	file := c.String("file")
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	spinner := output.NewSpinner(os.Stderr, "Importing collection...")
	spinner.Start()
	resp, err := client.PostRaw(ctx, "/v1/import", "application/json", bytes.NewReader(data))
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Imported int `json:"imported"`
	}
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	fmt.Printf("Imported %d snippets from %s.\n", result.Imported, file)
	return nil
}
