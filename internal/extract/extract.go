// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recovers answer keys from LaTeX exam documents.
// A document is split into question segments and each segment is run
// through an ordered chain of resolvers; the first resolver that finds an
// answer wins.
package extract

import (
	"fmt"
	"io"
	"regexp"

	"github.com/pdiddy/answerkey/pkg/types"
)

// space matches any Unicode whitespace character, including no-break
// spaces and \v. RE2's \s is ASCII-only.
const space = `[\t\n\x0b\f\r \x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	// questionStartRe matches the marker that opens a graded item: \item \rtask.
	questionStartRe = regexp.MustCompile(`\\item` + space + `+\\rtask`)

	// answerListRe matches the first \begin{answerlist} ... \end{answerlist} block.
	answerListRe = regexp.MustCompile(`(?s)\\begin\{answerlist\}.*?\\end\{answerlist\}`)

	// trueFalseRe matches \doneitem[V.] or \doneitem[F] style markers.
	trueFalseRe = regexp.MustCompile(`\\doneitem\[([VF])[.\]]`)

	// choiceRe matches the distractor (\ti) and designated-correct (\di)
	// choice markers when followed by whitespace or an optional argument.
	choiceRe = regexp.MustCompile(`\\(ti|di)(?:` + space + `|\[)`)

	// commentRe matches a line ending in a "% V" or "% F" comment.
	commentRe = regexp.MustCompile(`(?m)%` + space + `*([VF])` + space + `*$`)
)

// correctMarker is the choice command that tags the correct alternative.
const correctMarker = "di"

// Result holds the outcome of extracting one document.
type Result struct {
	// Answers are the resolved answers in question order.
	Answers []types.Answer

	// Skipped lists the question numbers for which no answer was found.
	Skipped []int

	// Segments is the number of question segments in the document.
	Segments int
}

// Resolved returns the number of questions with an answer.
func (r Result) Resolved() int {
	return len(r.Answers)
}

// resolver tries to recover an answer from a piece of markup.
type resolver func(text string) (string, bool)

// segmentResolvers is the fallback chain applied to each question segment.
var segmentResolvers = []resolver{
	resolveAnswerList,
	resolveComment,
}

// answerListResolvers is the chain applied inside an answerlist block.
// True/false markers take priority over choice markers.
var answerListResolvers = []resolver{
	resolveTrueFalse,
	resolveChoice,
}

// Extract splits content into question segments and resolves one answer per
// segment. Questions without an answer are recorded in Result.Skipped and do
// not stop processing. A document with no question markers yields an empty
// Result.
func Extract(content string) Result {
	segments := splitQuestions(content)
	result := Result{Segments: len(segments)}

	for i, seg := range segments {
		number := i + 1
		letter, ok := firstOf(segmentResolvers, seg)
		if !ok {
			result.Skipped = append(result.Skipped, number)
			continue
		}
		result.Answers = append(result.Answers, types.Answer{
			QuestionNumber: number,
			Answer:         letter,
		})
	}

	return result
}

// ExtractTo runs Extract and writes one warning line to w for every
// question whose answer could not be determined.
func ExtractTo(content string, w io.Writer) Result {
	result := Extract(content)
	for _, n := range result.Skipped {
		fmt.Fprintf(w, "warning: no answer found for question %d\n", n)
	}
	return result
}

// splitQuestions returns the text following each question-start marker.
// The preamble before the first marker is discarded.
func splitQuestions(content string) []string {
	parts := questionStartRe.Split(content, -1)
	if len(parts) <= 1 {
		return nil
	}
	return parts[1:]
}

// firstOf returns the answer of the first resolver in chain that succeeds.
func firstOf(chain []resolver, text string) (string, bool) {
	for _, r := range chain {
		if letter, ok := r(text); ok {
			return letter, true
		}
	}
	return "", false
}

// resolveAnswerList looks for an answerlist block in the segment and
// resolves the answer from its markers. A missing or unmarked block
// yields no answer so the caller can fall back to comments.
func resolveAnswerList(segment string) (string, bool) {
	block := answerListRe.FindString(segment)
	if block == "" {
		return "", false
	}
	return firstOf(answerListResolvers, block)
}

// resolveTrueFalse returns the letter of the first \doneitem[V|F] marker.
func resolveTrueFalse(block string) (string, bool) {
	m := trueFalseRe.FindStringSubmatch(block)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// resolveChoice maps the ordinal position of the first \di marker among all
// \ti and \di markers to a letter, starting at A.
func resolveChoice(block string) (string, bool) {
	for pos, m := range choiceRe.FindAllStringSubmatch(block, -1) {
		if m[1] != correctMarker {
			continue
		}
		return choiceLetter(pos)
	}
	return "", false
}

// choiceLetter converts a zero-based position to a letter A..Z.
func choiceLetter(pos int) (string, bool) {
	if pos < 0 || pos >= 26 {
		return "", false
	}
	return string(rune('A' + pos)), true
}

// resolveComment returns the letter of the first line ending in a
// "% V" or "% F" comment anywhere in the segment.
func resolveComment(segment string) (string, bool) {
	m := commentRe.FindStringSubmatch(segment)
	if m == nil {
		return "", false
	}
	return m[1], true
}
