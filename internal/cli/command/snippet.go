// Package command provides CLI command definitions for snipsync-cli.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snipsync-go/internal/cli/connection"
	"github.com/yndnr/snipsync-go/internal/cli/output"
)

// snippetItem mirrors the server's snippet representation.
type snippetItem struct {
	ID                  string        `json:"id"`
	CurrentVersionIndex int           `json:"current_version_index"`
	CurrentContent      string        `json:"current_content"`
	VersionCount        int           `json:"version_count"`
	Versions            []versionItem `json:"versions,omitempty"`
}

// versionItem mirrors the server's version representation.
type versionItem struct {
	Number    int       `json:"version_number"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
}

// SnippetCommand returns the snippet subcommand group.
func SnippetCommand() *cli.Command {
	return &cli.Command{
		Name:    "snippet",
		Aliases: []string{"snip"},
		Usage:   "Snippet management commands",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List all snippets",
				Action:  snippetList,
			},
			{
				Name:      "get",
				Usage:     "Show a snippet with its version history",
				ArgsUsage: "SNIPPET_ID",
				Action:    snippetGet,
			},
			{
				Name:      "save",
				Usage:     "Save new snippet content, appending a version",
				ArgsUsage: "SNIPPET_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "content",
						Aliases: []string{"c"},
						Usage:   "Snippet content (mutually exclusive with --file)",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read content from file ('-' for stdin)",
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Author recorded on the new version",
					},
				},
				Action: snippetSave,
			},
			{
				Name:      "versions",
				Usage:     "List the version ledger of a snippet",
				ArgsUsage: "SNIPPET_ID",
				Action:    snippetVersions,
			},
			{
				Name:      "restore",
				Usage:     "Restore an older version as the newest one",
				ArgsUsage: "SNIPPET_ID VERSION_INDEX",
				Action:    snippetRestore,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a snippet and its history",
				ArgsUsage: "SNIPPET_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"y"},
						Usage:   "Skip confirmation prompt",
					},
				},
				Action: snippetDelete,
			},
		},
	}
}

func snippetList(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/v1/snippets")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		Items []snippetItem `json:"items"`
		Total int           `json:"total"`
	}
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
		table := &output.Table{
			Headers: []string{"SNIPPET ID", "VERSIONS", "CURRENT", "CONTENT"},
		}
		for _, item := range result.Items {
			table.Rows = append(table.Rows, []string{
				item.ID,
				strconv.Itoa(item.VersionCount),
				strconv.Itoa(item.CurrentVersionIndex),
				truncateContent(item.CurrentContent, 48),
			})
		}
		if err := table.Render(os.Stdout); err != nil {
			return err
		}
		fmt.Printf("\nTotal: %d snippets\n", result.Total)
		return nil
	}
}

func snippetGet(c *cli.Context) error {
	snippetID := c.Args().First()
	if snippetID == "" {
		return fmt.Errorf("snippet ID required")
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/v1/snippets/"+snippetID)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result snippetItem
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
		fmt.Printf("Snippet: %s\n", result.ID)
		fmt.Printf("Versions: %d (current index %d)\n\n", result.VersionCount, result.CurrentVersionIndex)
		fmt.Println(result.CurrentContent)
		return nil
	}
}

func snippetSave(c *cli.Context) error {
	snippetID := c.Args().First()
	if snippetID == "" {
		return fmt.Errorf("snippet ID required")
	}

	content, err := resolveContent(c)
	if err != nil {
		return err
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body := map[string]string{"content": content}
	if author := c.String("author"); author != "" {
		body["author"] = author
	}

	resp, err := client.Put(ctx, "/v1/snippets/"+snippetID, body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result versionItem
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	fmt.Printf("Saved snippet '%s' as version %d.\n", snippetID, result.Number)
	return nil
}

// resolveContent reads snippet content from --content, --file, or stdin.
func resolveContent(c *cli.Context) (string, error) {
	content := c.String("content")
	file := c.String("file")

	switch {
	case content != "" && file != "":
		return "", fmt.Errorf("--content and --file are mutually exclusive")
	case content != "":
		return content, nil
	case file == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("either --content or --file is required")
	}
}

func snippetVersions(c *cli.Context) error {
	snippetID := c.Args().First()
	if snippetID == "" {
		return fmt.Errorf("snippet ID required")
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/v1/snippets/"+snippetID+"/versions")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result struct {
		SnippetID string        `json:"snippet_id"`
		Versions  []versionItem `json:"versions"`
	}
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
		table := &output.Table{
			Headers: []string{"INDEX", "TIMESTAMP", "AUTHOR", "CONTENT"},
		}
		for i, v := range result.Versions {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(i),
				v.Timestamp.Format("2006-01-02 15:04:05"),
				v.Author,
				truncateContent(v.Content, 48),
			})
		}
		return table.Render(os.Stdout)
	}
}

func snippetRestore(c *cli.Context) error {
	snippetID := c.Args().First()
	if snippetID == "" {
		return fmt.Errorf("snippet ID required")
	}
	indexArg := c.Args().Get(1)
	if indexArg == "" {
		return fmt.Errorf("version index required")
	}
	index, err := strconv.Atoi(indexArg)
	if err != nil {
		return fmt.Errorf("invalid version index %q", indexArg)
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Post(ctx, "/v1/snippets/"+snippetID+"/restore", map[string]int{
		"version_index": index,
	})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result versionItem
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	fmt.Printf("Restored snippet '%s' version %d as version %d.\n", snippetID, index, result.Number)
	return nil
}

func snippetDelete(c *cli.Context) error {
	snippetID := c.Args().First()
	if snippetID == "" {
		return fmt.Errorf("snippet ID required")
	}

	if !c.Bool("force") {
		fmt.Printf("Are you sure you want to delete snippet '%s'? [y/N]: ", snippetID)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Delete(ctx, "/v1/snippets/"+snippetID)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if err := connection.ParseResponse(resp, nil); err != nil {
		return err
	}

	fmt.Printf("Snippet '%s' deleted.\n", snippetID)
	return nil
}

// truncateContent shortens content for table cells, collapsing newlines.
func truncateContent(s string, max int) string {
	out := make([]rune, 0, max)
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		out = append(out, r)
		if len(out) >= max {
			return string(out[:max-3]) + "..."
		}
	}
	return string(out)
}
