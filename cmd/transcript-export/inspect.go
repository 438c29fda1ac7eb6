// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcript-export/internal/export"
	"github.com/pdiddy/transcript-export/internal/render"
	"github.com/pdiddy/transcript-export/internal/resolve"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Preview an export without writing any documents",
	Long: `Inspect parses the export, resolves each conversation's message graph,
and prints what convert would produce: one line per conversation with its
date, turn count, node count, and title. Nothing is written to disk.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringP("input", "i", "", "path to the exported conversations JSON file")
	inspectCmd.Flags().Bool("json", false, "output as JSON")
	inspectCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(inspectCmd)
}

// inspectEntry is one conversation's preview row.
type inspectEntry struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Turns int    `json:"turns"`
	Nodes int    `json:"nodes"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")

	conversations, problems, err := export.ParseFile(input)
	if err != nil {
		return err
	}

	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "warning: %s\n", p)
	}

	entries := make([]inspectEntry, len(conversations))
	for i, c := range conversations {
		entries[i] = inspectEntry{
			Title: c.Title,
			Date:  render.Date(c.UpdateTime),
			Turns: len(resolve.Resolve(c)),
			Nodes: len(c.Mapping),
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-6s  %-6s  %s\n", "Date", "Turns", "Nodes", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-10s  %-6d  %-6d  %s\n", e.Date, e.Turns, e.Nodes, truncate(e.Title, 50))
	}
	fmt.Fprintf(os.Stdout, "\n%d conversation(s), %d problem(s)\n", len(entries), len(problems))
	return nil
}
