//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and extracts the answer key of the exam named by
// $EXAM (default P1A.tex) into the matching .csv file.
func Extract() error {
	mg.Deps(Build)

	exam := os.Getenv("EXAM")
	if exam == "" {
		exam = "P1A.tex"
	}
	out := exam[:len(exam)-len(filepath.Ext(exam))] + ".csv"
	return sh.RunV(filepath.Join(binDir, binName), "extract", exam, "--output", out)
}
