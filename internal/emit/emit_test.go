// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/answerkey/pkg/types"
)

var sample = []types.Answer{
	{QuestionNumber: 1, Answer: "F"},
	{QuestionNumber: 2, Answer: "B"},
	{QuestionNumber: 4, Answer: "V"},
}

// failingWriter fails once more than limit bytes have been written.
type failingWriter struct {
	limit   int
	written int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.written+len(p) > f.limit {
		return 0, errors.New("disk full")
	}
	f.written += len(p)
	return len(p), nil
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		answer types.Answer
		want   string
	}{
		{types.Answer{QuestionNumber: 1, Answer: "V"}, "q1,V\n"},
		{types.Answer{QuestionNumber: 12, Answer: "C"}, "q12,C\n"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatLine(tt.answer); got != tt.want {
				t.Errorf("FormatLine(%v) = %q, want %q", tt.answer, got, tt.want)
			}
		})
	}
}

func TestWritePreservesOrder(t *testing.T) {
	unordered := []types.Answer{
		{QuestionNumber: 3, Answer: "A"},
		{QuestionNumber: 1, Answer: "V"},
		{QuestionNumber: 3, Answer: "A"},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, unordered))
	assert.Equal(t, "q3,A\nq1,V\nq3,A\n", buf.String())
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteFailure(t *testing.T) {
	err := Write(&failingWriter{limit: 5}, sample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing q2")
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "P1A.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer\n"), 0o644))

	require.NoError(t, WriteFile(path, sample))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "q1,F\nq2,B\nq4,V\n", string(data))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := WriteFile(path, sample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name    string
		answers []types.Answer
		n       int
		want    string
	}{
		{
			name:    "all answers fit",
			answers: sample,
			n:       10,
			want:    "\nPreview of the first 10 answers:\n  q1,F\n  q2,B\n  q4,V\n",
		},
		{
			name:    "truncated",
			answers: sample,
			n:       2,
			want:    "\nPreview of the first 2 answers:\n  q1,F\n  q2,B\n  ... and 1 more questions\n",
		},
		{
			name:    "disabled",
			answers: sample,
			n:       0,
			want:    "",
		},
		{
			name: "no answers",
			n:    10,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Preview(&buf, tt.answers, tt.n)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "P1A.yaml")
	require.NoError(t, WriteYAML(path, "P1A", sample))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var key AnswerKey
	require.NoError(t, yaml.Unmarshal(data, &key))
	assert.Equal(t, "P1A", key.Exam)
	assert.Equal(t, 3, key.Total)
	require.Len(t, key.Answers, 3)
	assert.Equal(t, KeyEntry{Question: 1, Answer: "F", Kind: types.KindTrueFalse}, key.Answers[0])
	assert.Equal(t, KeyEntry{Question: 2, Answer: "B", Kind: types.KindChoice}, key.Answers[1])
}
