// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// AnswerKind distinguishes true/false answers from multiple-choice letters.
type AnswerKind string

const (
	KindTrueFalse AnswerKind = "truefalse"
	KindChoice    AnswerKind = "choice"
)

// Answer is the recovered answer for one question of an exam.
type Answer struct {
	// QuestionNumber is the 1-based position of the question segment in the
	// document. It is never parsed from the markup.
	QuestionNumber int `json:"question" yaml:"question"`

	// Answer is a single character: V or F for true/false questions,
	// A through Z for multiple choice.
	Answer string `json:"answer" yaml:"answer"`
}

// Kind reports whether the answer is a true/false value or a choice letter.
func (a Answer) Kind() AnswerKind {
	if a.Answer == "V" || a.Answer == "F" {
		return KindTrueFalse
	}
	return KindChoice
}

func (a Answer) String() string {
	return fmt.Sprintf("q%d=%s", a.QuestionNumber, a.Answer)
}
