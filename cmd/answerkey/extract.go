// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/answerkey/internal/generate"
	"github.com/pdiddy/answerkey/internal/keystore"
)

var extractCmd = &cobra.Command{
	Use:   "extract [exam.tex]",
	Short: "Extract the answer key from a LaTeX exam",
	Long: `Extract splits the exam into questions at each \item \rtask marker and
recovers one answer per question. Inside an answerlist block a
\doneitem[V.] or \doneitem[F.] marker gives a true/false answer; otherwise
the position of the \di choice among the \ti and \di choices gives the
letter. Questions without a block fall back to a trailing "% V" or "% F"
comment. Questions with no answer are reported and left out.

The key is written as q<n>,<answer> lines (or YAML with --format yaml).
With --store the key is also archived in the answer-key database.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig(args)

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		r := bufio.NewReader(cmd.InOrStdin())
		var err error
		if cfg.InputPath, err = promptPath(r, cmd.OutOrStdout(), "LaTeX file path", cfg.InputPath); err != nil {
			return err
		}
		if cfg.OutputPath, err = promptPath(r, cmd.OutOrStdout(), "Output CSV file name", cfg.OutputPath); err != nil {
			return err
		}
	}

	g := &generate.Generator{
		Config: cfg,
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
	}
	if err := g.Validate(); err != nil {
		return err
	}

	// The key store is opened only once the input is known to be readable.
	content, err := generate.ReadDocument(cfg.InputPath)
	if err != nil {
		return err
	}

	if viper.GetBool("store") {
		store, err := keystore.Open(keyStoreConfig())
		if err != nil {
			return err
		}
		defer store.Close()
		g.Store = store
	}

	_, err = g.Process(context.Background(), content)
	return err
}

func init() {
	extractCmd.Flags().StringP("output", "o", "P1A.csv", "output file for the answer key")
	extractCmd.Flags().String("format", "csv", "output format: csv or yaml")
	extractCmd.Flags().Int("preview", 10, "number of answers to preview after writing (0 disables)")
	extractCmd.Flags().String("exam", "", "exam ID for YAML output and the key store (default: input file name)")
	extractCmd.Flags().Bool("store", false, "also archive the key in the answer-key database")
	extractCmd.Flags().BoolP("interactive", "i", false, "prompt for the input and output paths")

	rootCmd.AddCommand(extractCmd)
}
