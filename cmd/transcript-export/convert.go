// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/transcript-export/internal/export"
	"github.com/pdiddy/transcript-export/internal/index"
	"github.com/pdiddy/transcript-export/internal/manifest"
	"github.com/pdiddy/transcript-export/internal/write"
	"github.com/pdiddy/transcript-export/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an export file into one Markdown document per conversation",
	Long: `Convert reads the exported conversations JSON file, follows each
conversation's message graph to the branch the user settled on, and writes
one Markdown document per conversation into the output directory.

Individual conversation failures are reported and tallied but do not abort
the run; pass --strict to turn any failure into a non-zero exit.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "path to the exported conversations JSON file")
	convertCmd.Flags().StringP("output-dir", "o", "", "directory for the rendered documents (created if absent)")
	convertCmd.Flags().Int("workers", 0, "worker pool size (default: number of CPUs)")
	convertCmd.Flags().String("empty-policy", "", "conversations with no renderable messages: write or skip (default: write)")
	convertCmd.Flags().Int("max-title", 0, "maximum sanitized title length in filenames (default: 100)")
	convertCmd.Flags().Bool("strict", false, "exit non-zero when any conversation fails")
	convertCmd.Flags().Bool("manifest", false, "write export-manifest.yaml into the output directory")
	convertCmd.Flags().Bool("index", false, "record the run in the document catalog")
	convertCmd.Flags().String("index-db", "", "catalog database path (default: <output-dir>/index.db)")
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output-dir")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	outDir, _ := cmd.Flags().GetString("output-dir")
	strict := boolSetting(cmd, "strict", "convert.strict")
	withManifest := boolSetting(cmd, "manifest", "convert.manifest")
	withIndex := boolSetting(cmd, "index", "convert.index")

	cfg := types.ConvertConfig{
		OutputDir:      outDir,
		Workers:        intSetting(cmd, "workers", "convert.workers", 0),
		EmptyPolicy:    types.EmptyPolicy(stringSetting(cmd, "empty-policy", "convert.empty_policy", "")),
		MaxTitleLength: intSetting(cmd, "max-title", "convert.max_title_length", 0),
	}

	conversations, problems, err := export.ParseFile(input)
	if err != nil {
		return err
	}

	result, err := write.Write(conversations, problems, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if withManifest || withIndex {
		m := manifest.New(input, outDir, result)
		if withManifest {
			if err := manifest.WriteFile(outDir, m); err != nil {
				return err
			}
			fmt.Printf("Manifest written: %s\n", filepath.Join(outDir, manifest.FileName))
		}
		if withIndex {
			if err := recordRun(cmd, outDir, m); err != nil {
				return err
			}
		}
	}

	if strict && result.HasFailures() {
		return fmt.Errorf("%d conversation(s) failed", result.Failed)
	}
	return nil
}

func recordRun(cmd *cobra.Command, outDir string, m manifest.Manifest) error {
	dbPath := stringSetting(cmd, "index-db", "index.db_path", filepath.Join(outDir, index.DefaultDBFile))

	store, err := index.Open(types.CatalogConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordRun(context.Background(), m); err != nil {
		return err
	}
	fmt.Printf("Run %s recorded in %s\n", m.RunID, dbPath)
	return nil
}

// stringSetting resolves a setting with flag > config file/env > default
// precedence.
func stringSetting(cmd *cobra.Command, flag, key, def string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return def
}

func intSetting(cmd *cobra.Command, flag, key string, def int) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return def
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	return viper.GetBool(key)
}
