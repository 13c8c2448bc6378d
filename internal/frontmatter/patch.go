// Package frontmatter reads and patches the YAML front matter block of
// markdown documents. The patcher is deliberately not a YAML round-trip:
// it locates the delimited header and edits individual lines so that every
// byte it was not asked to change survives verbatim.
package frontmatter

import (
	"errors"
	"strings"
)

var (
	// ErrNoEdits indicates the caller requested a patch with zero edits.
	ErrNoEdits = errors.New("frontmatter: no edits requested")

	// ErrUnclosedHeader indicates an opening --- delimiter with no
	// closing --- line before end of document.
	ErrUnclosedHeader = errors.New("frontmatter: unclosed front matter header")
)

// Edit is a single requested field change. Values are scalar strings;
// structured values are out of scope for the patcher.
type Edit struct {
	Field string
	Value string
}

// Patch sets or overwrites the given fields in the document's front matter
// and returns the complete reassembled document.
//
// Four input shapes are handled:
//   - no header: one is synthesized containing only the requested fields,
//     in caller order, and the original document becomes the body;
//   - well-formed header with the field present: the first matching line's
//     value is replaced in place, preserving indentation and position;
//   - well-formed header without the field: a "field: value" line is
//     appended to the end of the header;
//   - opening --- with no closing ---: ErrUnclosedHeader, no output.
//
// Everything outside the header, and every header line not named by an
// edit, is preserved byte for byte. Newlines the patcher emits use the
// document's inferred line-ending style (CRLF if any CRLF appears in the
// input, LF otherwise).
func Patch(content string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return "", ErrNoEdits
	}

	eol := inferLineEnding(content)

	header, body, _, err := splitHeader(content)
	if err != nil {
		return "", err
	}

	for _, edit := range edits {
		header = upsertField(header, edit.Field, edit.Value, eol)
	}

	var b strings.Builder
	b.Grow(len(header) + len(body) + 2*(3+len(eol)))
	b.WriteString("---")
	b.WriteString(eol)
	b.WriteString(header)
	b.WriteString("---")
	b.WriteString(eol)
	b.WriteString(body)
	return b.String(), nil
}

// inferLineEnding picks the line-ending style for lines the patcher emits.
// A single CRLF anywhere marks the whole document as CRLF-styled.
func inferLineEnding(content string) string {
	if strings.Contains(content, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// splitHeader divides a document into its header interior and body.
//
// A document has a header iff its first line is exactly "---" (ignoring
// the line ending). The interior is everything strictly between the
// delimiter lines, including its own trailing line ending; the body is
// everything after the closing delimiter line, verbatim. For a headerless
// document the interior is empty and the body is the whole input.
func splitHeader(content string) (header, body string, found bool, err error) {
	lines := splitLinesKeepEnds(content)
	if len(lines) == 0 || !isDelimiter(lines[0]) {
		return "", content, false, nil
	}

	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			return strings.Join(lines[1:i], ""), strings.Join(lines[i+1:], ""), true, nil
		}
	}

	return "", "", false, ErrUnclosedHeader
}

// splitLinesKeepEnds splits content after each newline so that joining the
// pieces reproduces the input exactly. A trailing empty piece (content
// ending in a newline) is dropped.
func splitLinesKeepEnds(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// isDelimiter reports whether a raw line (line ending still attached) is a
// front matter delimiter. Only a line that is exactly "---" counts;
// indented or decorated dashes do not.
func isDelimiter(line string) bool {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line == "---"
}

// upsertField sets field to value inside the header interior. The first
// line whose content (ignoring leading whitespace) starts with "field:"
// is rewritten in place; later duplicates are left untouched. When no line
// matches, a new "field: value" line is appended.
func upsertField(header, field, value, eol string) string {
	prefix := field + ":"
	lines := splitLinesKeepEnds(header)

	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		lines[i] = indent + field + ": " + value + eol
		return strings.Join(lines, "")
	}

	// Interior text always ends on a line boundary when a header existed;
	// guard anyway so a malformed interior cannot glue two fields together.
	if header != "" && !strings.HasSuffix(header, "\n") {
		header += eol
	}
	return header + field + ": " + value + eol
}
