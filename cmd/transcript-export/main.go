// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the transcript-export CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the transcript-export CLI.
var rootCmd = &cobra.Command{
	Use:   "transcript-export",
	Short: "Convert conversational-assistant exports into Markdown documents",
	Long: `transcript-export reads an exported conversations JSON file, reconstructs
each conversation from its message graph, and writes one Markdown document
per conversation.

Use "convert" to produce documents, "inspect" to preview an export without
writing anything, and "index" to query the catalog of past runs.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./transcript-export.yaml or ~/.config/transcript-export/config.yaml)")
	rootCmd.Flags().BoolP("version", "V", false, "print the version and exit")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("transcript-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "transcript-export"))
		}
	}

	viper.SetEnvPrefix("TRANSCRIPT_EXPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
