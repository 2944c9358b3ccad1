// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-engine CLI.
// Implements: prd001-research, prd002-writing, prd003-export,
//             prd004-pipeline (CLI surface).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// resolveKey returns the first non-empty credential among an explicit
// config value, the named environment variable, and the .secrets/ file.
func resolveKey(explicit, envName, secretName string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return loadedSecrets[secretName]
}

// rootCmd is the base command for the paper-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-engine",
	Short: "Research paper creation from a single topic",
	Long: `paper-engine turns a topic into a research paper. It runs a fixed
four-stage pipeline: plan the topic, research it through a web search API,
write the paper with a text-generation API, and export the result as Word
and PDF documents into an output directory.

Invoked with no arguments it behaves like the paper subcommand and prompts
for a topic; research and diagram expose individual pieces for inspection.`,
	RunE: runPaper,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional; a missing one is not an error.
		godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-engine.yaml or ~/.config/paper-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-engine"))
		}
	}

	viper.SetEnvPrefix("PAPER_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
