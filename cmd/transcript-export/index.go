// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcript-export/internal/index"
	"github.com/pdiddy/transcript-export/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Query the catalog of documents written by past runs",
	Long: `Index queries the SQLite catalog that convert --index maintains. Use
"list" to show every cataloged document or "search" to filter by title.`,
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cataloged documents, newest run first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		docs, err := store.List(context.Background())
		if err != nil {
			return err
		}
		return printDocuments(docs)
	},
}

var indexSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search cataloged documents by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		docs, err := store.Search(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printDocuments(docs)
	},
}

func init() {
	indexCmd.PersistentFlags().String("index-db", "", "catalog database path")

	indexCmd.AddCommand(indexListCmd)
	indexCmd.AddCommand(indexSearchCmd)
	rootCmd.AddCommand(indexCmd)
}

func openCatalog(cmd *cobra.Command) (*index.Store, error) {
	dbPath := stringSetting(cmd, "index-db", "index.db_path", index.DefaultDBFile)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("catalog %s not found: run convert --index first", dbPath)
	}
	return index.Open(types.CatalogConfig{DBPath: dbPath})
}

func printDocuments(docs []index.Document) error {
	if len(docs) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-8s  %-6s  %-45s  %s\n", "Date", "Status", "Turns", "Filename", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, d := range docs {
		fmt.Fprintf(os.Stdout, "%-10s  %-8s  %-6d  %-45s  %s\n",
			d.WrittenAt.Format("2006-01-02"), d.Status, d.Turns, truncate(d.Filename, 45), truncate(d.Title, 40))
	}
	fmt.Fprintf(os.Stdout, "\n%d document(s)\n", len(docs))
	return nil
}
