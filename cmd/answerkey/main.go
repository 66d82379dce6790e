// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the answerkey CLI.
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

// rootCmd is the base command for the answerkey CLI.
var rootCmd = &cobra.Command{
	Use:   "answerkey",
	Short: "Extract answer keys from LaTeX exams",
	Long: `answerkey reads a LaTeX exam written with the answerlist conventions
(\item \rtask questions, \doneitem[V.] true/false markers, \ti and \di
choices, or a trailing "% V" comment) and writes the answer key as
q<n>,<answer> lines.

Keys can also be archived in a local SQLite database with the store
subcommand and printed later with show.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./answerkey.yaml or ~/.config/answerkey/config.yaml)")
	rootCmd.PersistentFlags().String("store-dir", "answerkeys", "directory holding the answer-key database")

	viper.SetDefault("input", "P1A.tex")
	viper.SetDefault("output", "P1A.csv")
	viper.SetDefault("format", "csv")
	viper.SetDefault("preview", 10)
	viper.SetDefault("store_dir", "answerkeys")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("answerkey")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "answerkey"))
		}
	}

	viper.SetEnvPrefix("ANSWERKEY")
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
