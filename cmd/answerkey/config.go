// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/answerkey/pkg/types"
)

// bindFlags binds the running command's flags to viper keys so flags,
// config file, and ANSWERKEY_* variables resolve in that order. Flag
// names map to keys with dashes replaced by underscores. Binding happens
// per command because several subcommands share key names.
func bindFlags(cmd *cobra.Command, args []string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		bindErr = viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return bindErr
}

// extractionConfig assembles the run configuration from viper. A
// positional argument overrides the configured input path.
func extractionConfig(args []string) types.ExtractionConfig {
	cfg := types.ExtractionConfig{
		InputPath:    viper.GetString("input"),
		OutputPath:   viper.GetString("output"),
		Format:       types.OutputFormat(viper.GetString("format")),
		PreviewCount: viper.GetInt("preview"),
		ExamID:       viper.GetString("exam"),
	}
	if len(args) > 0 {
		cfg.InputPath = args[0]
	}
	return cfg
}

func keyStoreConfig() types.KeyStoreConfig {
	return types.KeyStoreConfig{Dir: viper.GetString("store_dir")}
}

// promptPath asks for a path on w and reads the answer from r. An empty
// answer selects def.
func promptPath(r *bufio.Reader, w io.Writer, prompt, def string) (string, error) {
	fmt.Fprintf(w, "%s (default: %s): ", prompt, def)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	if v := strings.TrimSpace(line); v != "" {
		return v, nil
	}
	return def, nil
}
