// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate runs the answer-key workflow for one exam document:
// read the LaTeX source, extract the answers, write the key, and report.
// Question-level misses are warnings; only document-level failures are
// returned as errors.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/answerkey/internal/emit"
	"github.com/pdiddy/answerkey/internal/extract"
	"github.com/pdiddy/answerkey/internal/keystore"
	"github.com/pdiddy/answerkey/pkg/types"
)

// Document-level failures. Callers match them with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInputNotFound = errors.New("input file not found")
	ErrInputRead     = errors.New("reading input file")
	ErrNoAnswers     = errors.New("no answers found in the document")
	ErrOutputWrite   = errors.New("saving answer key")
)

const defaultPreview = 10

// KeySaver archives an extracted answer key. *keystore.Store implements it.
type KeySaver interface {
	Save(ctx context.Context, exam keystore.ExamRecord, answers []types.Answer) error
}

// Summary holds the outcome of a run.
type Summary struct {
	Segments int
	Resolved int
	Skipped  []int
	Answers  []types.Answer
}

// Generator extracts the answer key described by Config.
type Generator struct {
	Config types.ExtractionConfig

	// Out receives progress and the preview; Err receives warnings.
	Out io.Writer
	Err io.Writer

	// Store, when set, archives the key after extraction.
	Store KeySaver
}

// Validate checks the configuration before any file is touched.
func (g *Generator) Validate() error {
	switch g.Config.Format {
	case types.FormatCSV, types.FormatYAML, "":
		return nil
	default:
		return fmt.Errorf("%w: unsupported format %q (want csv or yaml)", ErrInvalidConfig, g.Config.Format)
	}
}

// Run reads Config.InputPath and processes it. The output file is written
// only when Config.OutputPath is set.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	if err := g.Validate(); err != nil {
		return Summary{}, err
	}
	content, err := ReadDocument(g.Config.InputPath)
	if err != nil {
		return Summary{}, err
	}
	return g.process(ctx, content)
}

// Process runs the workflow on document content that the caller has
// already read from Config.InputPath.
func (g *Generator) Process(ctx context.Context, content string) (Summary, error) {
	if err := g.Validate(); err != nil {
		return Summary{}, err
	}
	return g.process(ctx, content)
}

func (g *Generator) process(ctx context.Context, content string) (Summary, error) {
	out, errOut := g.Out, g.Err
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	fmt.Fprintln(out, "Processing questions...")
	result := extract.ExtractTo(content, errOut)

	summary := Summary{
		Segments: result.Segments,
		Resolved: result.Resolved(),
		Skipped:  result.Skipped,
		Answers:  result.Answers,
	}
	if len(result.Answers) == 0 {
		return summary, fmt.Errorf("%w: %s", ErrNoAnswers, g.Config.InputPath)
	}

	examID := g.examID()

	if path := g.Config.OutputPath; path != "" {
		if err := writeKey(path, g.Config.Format, examID, result.Answers); err != nil {
			return summary, fmt.Errorf("%w to %s: %w", ErrOutputWrite, path, err)
		}
		fmt.Fprintf(out, "\nAnswer key saved to: %s\n", path)
	}

	if g.Store != nil {
		rec := keystore.ExamRecord{ID: examID, SourcePath: g.Config.InputPath}
		if err := g.Store.Save(ctx, rec, result.Answers); err != nil {
			return summary, fmt.Errorf("%w to key store: %w", ErrOutputWrite, err)
		}
		fmt.Fprintf(out, "Answer key stored as: %s\n", examID)
	}

	fmt.Fprintf(out, "Total questions processed: %d\n", summary.Resolved)
	if n := len(summary.Skipped); n > 0 {
		fmt.Fprintf(errOut, "%d question(s) without an answer\n", n)
	}

	preview := g.Config.PreviewCount
	if preview < 0 {
		preview = defaultPreview
	}
	emit.Preview(out, result.Answers, preview)

	return summary, nil
}

// examID returns the configured exam ID or the input base name.
func (g *Generator) examID() string {
	if g.Config.ExamID != "" {
		return g.Config.ExamID
	}
	return ExamIDFromPath(g.Config.InputPath)
}

// ExamIDFromPath derives an exam ID from a document path: "exams/P1A.tex"
// becomes "P1A".
func ExamIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadDocument reads the LaTeX source at path. The content must be valid
// UTF-8.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return "", fmt.Errorf("%w %s: %w", ErrInputRead, path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w %s: not valid UTF-8", ErrInputRead, path)
	}
	return string(data), nil
}

func writeKey(path string, format types.OutputFormat, examID string, answers []types.Answer) error {
	switch format {
	case types.FormatYAML:
		return emit.WriteYAML(path, examID, answers)
	default:
		return emit.WriteFile(path, answers)
	}
}
