// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answerkey/internal/emit"
	"github.com/pdiddy/answerkey/internal/generate"
	"github.com/pdiddy/answerkey/internal/keystore"
)

// --- store subcommand ---

var storeCmd = &cobra.Command{
	Use:   "store [exam.tex]",
	Short: "Extract an answer key and archive it in the answer-key database",
	Long: `Store extracts the answer key like extract does but, instead of writing a
CSV file, saves it to answerkeys/answerkeys.db. Storing the same exam
again replaces its previous key.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runStore,
}

func runStore(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig(args)
	cfg.OutputPath = ""

	content, err := generate.ReadDocument(cfg.InputPath)
	if err != nil {
		return err
	}

	store, err := keystore.Open(keyStoreConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	g := &generate.Generator{
		Config: cfg,
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Store:  store,
	}
	_, err = g.Process(context.Background(), content)
	return err
}

// --- show subcommand ---

var showCmd = &cobra.Command{
	Use:   "show [exam]",
	Short: "List archived answer keys or print one",
	Long: `Show without arguments lists the exams in the answer-key database. With
an exam ID it prints that exam's key as q<n>,<answer> lines.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := keystore.Open(keyStoreConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	w := cmd.OutOrStdout()

	if len(args) == 1 {
		answers, err := store.Load(ctx, args[0])
		if err != nil {
			return err
		}
		return emit.Write(w, answers)
	}

	exams, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(exams) == 0 {
		fmt.Fprintln(w, "No answer keys stored.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-8s  %-20s  %s\n", "Exam", "Answers", "Extracted", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range exams {
		id := e.ID
		if len(id) > 20 {
			id = id[:17] + "..."
		}
		fmt.Fprintf(w, "%-20s  %-8d  %-20s  %s\n",
			id, e.Total, e.ExtractedAt.Local().Format("2006-01-02 15:04"), e.SourcePath)
	}
	fmt.Fprintf(w, "\n%d exams\n", len(exams))
	return nil
}

func init() {
	storeCmd.Flags().String("exam", "", "exam ID (default: input file name)")
	storeCmd.Flags().Int("preview", 10, "number of answers to preview after storing (0 disables)")

	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(showCmd)
}
