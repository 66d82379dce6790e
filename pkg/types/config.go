// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects how the answer key is written.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatYAML OutputFormat = "yaml"
)

// ExtractionConfig holds settings for one extraction run.
type ExtractionConfig struct {
	// InputPath is the LaTeX exam document (default "P1A.tex").
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is the destination file (default "P1A.csv").
	OutputPath string `json:"output" yaml:"output"`

	// Format selects the output format: csv or yaml.
	Format OutputFormat `json:"format" yaml:"format"`

	// PreviewCount is the number of records echoed after a run (default 10).
	// Zero disables the preview.
	PreviewCount int `json:"preview" yaml:"preview"`

	// ExamID names the exam in YAML exports and the key store. Defaults to
	// the input file name without extension.
	ExamID string `json:"exam" yaml:"exam"`
}

// KeyStoreConfig holds settings for the SQLite answer-key archive.
type KeyStoreConfig struct {
	// Dir is the directory holding answerkeys.db (default "answerkeys").
	Dir string `json:"dir" yaml:"dir"`
}
