// Package card extracts structure from model card markdown: the title,
// a short summary, and the section outline.
package card

import (
	"strings"

	goslug "github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading represents a parsed section heading.
type Heading struct {
	Level int
	Text  string
}

// Outline is the extracted structure of a model card body.
type Outline struct {
	// Title is the first level-1 heading, or the first heading of any
	// level when the card has no H1.
	Title string

	// Summary is the text of the first paragraph.
	Summary string

	// Headings lists every section heading in document order.
	Headings []Heading
}

// Extract parses the markdown body and returns its outline. Front matter
// should already be stripped; a leading metadata block would otherwise
// show up as thematic breaks and body text.
func Extract(body string) Outline {
	var outline Outline

	md := goldmark.New()
	reader := text.NewReader([]byte(body))
	doc := md.Parser().Parse(reader)
	source := []byte(body)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			headingText := nodeText(node, source)
			if headingText == "" {
				return ast.WalkContinue, nil
			}
			outline.Headings = append(outline.Headings, Heading{
				Level: node.Level,
				Text:  headingText,
			})
			if outline.Title == "" && node.Level == 1 {
				outline.Title = headingText
			}
		case *ast.Paragraph:
			// Only top-level paragraphs count as the summary; list items
			// and block quotes contain nested paragraphs.
			if outline.Summary == "" && node.Parent() == doc {
				outline.Summary = nodeText(node, source)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	if outline.Title == "" && len(outline.Headings) > 0 {
		outline.Title = outline.Headings[0].Text
	}
	return outline
}

// nodeText collects the plain text of a node's inline children.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	collectText(n, source, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(n ast.Node, source []byte, sb *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			sb.Write(textNode.Segment.Value(source))
			if textNode.SoftLineBreak() || textNode.HardLineBreak() {
				sb.WriteByte(' ')
			}
			continue
		}
		collectText(child, source, sb)
	}
}

// FileName converts a model id into a safe local filename for saved cards.
// Repo slashes become double dashes: "org/model" -> "org--model.md".
func FileName(modelID string) string {
	parts := strings.Split(modelID, "/")
	for i, part := range parts {
		slugged := goslug.Make(part)
		if slugged == "" {
			slugged = "card"
		}
		parts[i] = slugged
	}
	return strings.Join(parts, "--") + ".md"
}
