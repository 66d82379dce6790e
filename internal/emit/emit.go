// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit serializes answer keys as q<n>,<answer> lines and as YAML.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/answerkey/pkg/types"
)

// FormatLine returns the CSV line for a single answer, including the
// trailing newline.
func FormatLine(a types.Answer) string {
	return fmt.Sprintf("q%d,%s\n", a.QuestionNumber, a.Answer)
}

// Write writes one line per answer to w in the order given. No header or
// summary row is written.
func Write(w io.Writer, answers []types.Answer) error {
	for _, a := range answers {
		if _, err := io.WriteString(w, FormatLine(a)); err != nil {
			return fmt.Errorf("writing q%d: %w", a.QuestionNumber, err)
		}
	}
	return nil
}

// WriteFile creates or truncates path and writes the answers to it. The
// file is closed on every return path; a close error is returned when the
// writes themselves succeeded.
func WriteFile(path string, answers []types.Answer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Write(bw, answers); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// Preview writes the first n answers to w, indented, followed by a count
// of the answers left out. It writes nothing when n <= 0 or answers is empty.
func Preview(w io.Writer, answers []types.Answer, n int) {
	if n <= 0 || len(answers) == 0 {
		return
	}

	fmt.Fprintf(w, "\nPreview of the first %d answers:\n", n)
	shown := answers
	if len(shown) > n {
		shown = shown[:n]
	}
	for _, a := range shown {
		fmt.Fprintf(w, "  q%d,%s\n", a.QuestionNumber, a.Answer)
	}
	if rest := len(answers) - len(shown); rest > 0 {
		fmt.Fprintf(w, "  ... and %d more questions\n", rest)
	}
}

// AnswerKey is the YAML representation of an exam's answer key.
type AnswerKey struct {
	Exam    string     `yaml:"exam"`
	Total   int        `yaml:"total"`
	Answers []KeyEntry `yaml:"answers"`
}

// KeyEntry is one answer in an AnswerKey.
type KeyEntry struct {
	Question int              `yaml:"question"`
	Answer   string           `yaml:"answer"`
	Kind     types.AnswerKind `yaml:"kind"`
}

// NewAnswerKey builds the YAML document for exam from answers.
func NewAnswerKey(exam string, answers []types.Answer) AnswerKey {
	key := AnswerKey{
		Exam:    exam,
		Total:   len(answers),
		Answers: make([]KeyEntry, len(answers)),
	}
	for i, a := range answers {
		key.Answers[i] = KeyEntry{
			Question: a.QuestionNumber,
			Answer:   a.Answer,
			Kind:     a.Kind(),
		}
	}
	return key
}

// WriteYAML marshals the answer key for exam to a YAML file at path.
func WriteYAML(path, exam string, answers []types.Answer) error {
	data, err := yaml.Marshal(NewAnswerKey(exam, answers))
	if err != nil {
		return fmt.Errorf("marshaling answer key: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
