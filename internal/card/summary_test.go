package card

import "testing"

func TestExtractOutline(t *testing.T) {
	body := `# Llama 3 8B

Llama 3 is a family of large language models
pretrained on public data.

## Uses

Details here.

### Out of scope

- item one
- item two

## Training
`
	outline := Extract(body)

	if outline.Title != "Llama 3 8B" {
		t.Errorf("Title = %q", outline.Title)
	}
	if outline.Summary != "Llama 3 is a family of large language models pretrained on public data." {
		t.Errorf("Summary = %q", outline.Summary)
	}

	want := []Heading{
		{Level: 1, Text: "Llama 3 8B"},
		{Level: 2, Text: "Uses"},
		{Level: 3, Text: "Out of scope"},
		{Level: 2, Text: "Training"},
	}
	if len(outline.Headings) != len(want) {
		t.Fatalf("headings = %+v, want %d entries", outline.Headings, len(want))
	}
	for i, h := range want {
		if outline.Headings[i] != h {
			t.Errorf("heading[%d] = %+v, want %+v", i, outline.Headings[i], h)
		}
	}
}

func TestExtractTitleFallsBackToFirstHeading(t *testing.T) {
	outline := Extract("## Overview\n\nSome text.\n")
	if outline.Title != "Overview" {
		t.Errorf("Title = %q", outline.Title)
	}
}

func TestExtractSummarySkipsNestedParagraphs(t *testing.T) {
	body := "- a list item paragraph\n\nActual intro paragraph.\n"
	outline := Extract(body)
	if outline.Summary != "Actual intro paragraph." {
		t.Errorf("Summary = %q", outline.Summary)
	}
}

func TestExtractInlineFormatting(t *testing.T) {
	outline := Extract("# The **Best** `Model`\n")
	if outline.Title != "The Best Model" {
		t.Errorf("Title = %q", outline.Title)
	}
}

func TestExtractEmptyBody(t *testing.T) {
	outline := Extract("")
	if outline.Title != "" || outline.Summary != "" || len(outline.Headings) != 0 {
		t.Errorf("outline = %+v, want zero value", outline)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"org/model", "org--model.md"},
		{"Meta-Llama/Llama-3-8B", "meta-llama--llama-3-8b.md"},
		{"bert-base-uncased", "bert-base-uncased.md"},
	}
	for _, tt := range tests {
		if got := FileName(tt.id); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
