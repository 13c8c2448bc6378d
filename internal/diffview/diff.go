// Package diffview produces line diffs between card versions for dry-run
// output.
package diffview

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/hubcard/hubcard/internal/ui"
)

// Line is one line of a computed diff.
type Line struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	OldLine int    `json:"old_line,omitempty"`
	NewLine int    `json:"new_line,omitempty"`
}

const (
	LineContext = "context"
	LineAdded   = "added"
	LineRemoved = "removed"
)

// Lines computes a line diff between two card versions.
func Lines(before, after string) []Line {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	oldLine := 1
	newLine := 1
	for _, diff := range diffs {
		chunkLines := strings.Split(diff.Text, "\n")
		if len(chunkLines) > 0 && chunkLines[len(chunkLines)-1] == "" {
			chunkLines = chunkLines[:len(chunkLines)-1]
		}
		for _, line := range chunkLines {
			switch diff.Type {
			case diffmatchpatch.DiffEqual:
				lines = append(lines, Line{Type: LineContext, Text: line, OldLine: oldLine, NewLine: newLine})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				lines = append(lines, Line{Type: LineRemoved, Text: line, OldLine: oldLine})
				oldLine++
			case diffmatchpatch.DiffInsert:
				lines = append(lines, Line{Type: LineAdded, Text: line, NewLine: newLine})
				newLine++
			}
		}
	}
	return lines
}

// Changed reports whether the diff contains any additions or removals.
func Changed(lines []Line) bool {
	for _, line := range lines {
		if line.Type != LineContext {
			return true
		}
	}
	return false
}

// contextRadius is how many unchanged lines surround each change in
// rendered output.
const contextRadius = 2

// Render formats a diff for terminal display, collapsing long runs of
// unchanged lines.
func Render(lines []Line) string {
	keep := make([]bool, len(lines))
	for i, line := range lines {
		if line.Type == LineContext {
			continue
		}
		lo := i - contextRadius
		if lo < 0 {
			lo = 0
		}
		hi := i + contextRadius
		if hi >= len(lines) {
			hi = len(lines) - 1
		}
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	var sb strings.Builder
	skipping := false
	for i, line := range lines {
		if !keep[i] {
			if !skipping {
				sb.WriteString(ui.Hint("  ...") + "\n")
				skipping = true
			}
			continue
		}
		skipping = false
		switch line.Type {
		case LineAdded:
			sb.WriteString("+ " + line.Text + "\n")
		case LineRemoved:
			sb.WriteString("- " + line.Text + "\n")
		default:
			sb.WriteString("  " + line.Text + "\n")
		}
	}
	return sb.String()
}
