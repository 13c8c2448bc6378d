package frontmatter

import (
	"errors"
	"strings"
	"testing"
)

func TestPatchCreatesHeaderWhenMissing(t *testing.T) {
	input := "# Title\nBody text\n"
	got, err := Patch(input, []Edit{{Field: "pipeline_tag", Value: "text-generation"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\npipeline_tag: text-generation\n---\n# Title\nBody text\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchCreatesHeaderWithMultipleFieldsInCallerOrder(t *testing.T) {
	input := "Body\n"
	got, err := Patch(input, []Edit{
		{Field: "pipeline_tag", Value: "text-generation"},
		{Field: "library_name", Value: "transformers"},
	})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\npipeline_tag: text-generation\nlibrary_name: transformers\n---\nBody\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchReplacesExistingField(t *testing.T) {
	input := "---\npipeline_tag: old-value\nlicense: mit\n---\nBody\n"
	got, err := Patch(input, []Edit{{Field: "pipeline_tag", Value: "new-value"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\npipeline_tag: new-value\nlicense: mit\n---\nBody\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchAppendsMissingField(t *testing.T) {
	input := "---\nlicense: mit\n---\nBody\n"
	got, err := Patch(input, []Edit{{Field: "library_name", Value: "pytorch"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\nlicense: mit\nlibrary_name: pytorch\n---\nBody\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchPreservesIndentationAndPosition(t *testing.T) {
	input := "---\ntitle: demo\n  pipeline_tag: old\nlicense: mit\n---\nBody\n"
	got, err := Patch(input, []Edit{{Field: "pipeline_tag", Value: "new"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\ntitle: demo\n  pipeline_tag: new\nlicense: mit\n---\nBody\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchUpdatesOnlyFirstDuplicate(t *testing.T) {
	input := "---\npipeline_tag: one\npipeline_tag: two\n---\nBody\n"
	got, err := Patch(input, []Edit{{Field: "pipeline_tag", Value: "three"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\npipeline_tag: three\npipeline_tag: two\n---\nBody\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchDoesNotMatchFieldNameSuffix(t *testing.T) {
	// Editing "tag" must not touch "pipeline_tag".
	input := "---\npipeline_tag: text-generation\n---\nBody\n"
	got, err := Patch(input, []Edit{{Field: "tag", Value: "v1"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\npipeline_tag: text-generation\ntag: v1\n---\nBody\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchRejectsUnclosedHeader(t *testing.T) {
	input := "---\nlicense: mit\nBody with no closing delimiter"
	_, err := Patch(input, []Edit{{Field: "pipeline_tag", Value: "x"}})
	if !errors.Is(err, ErrUnclosedHeader) {
		t.Fatalf("Patch() error = %v, want ErrUnclosedHeader", err)
	}
}

func TestPatchRejectsEmptyEditSet(t *testing.T) {
	_, err := Patch("# Title\n", nil)
	if !errors.Is(err, ErrNoEdits) {
		t.Fatalf("Patch() error = %v, want ErrNoEdits", err)
	}
}

func TestPatchIgnoresDelimitersInBody(t *testing.T) {
	input := "# Title\n\n---\n\nA horizontal rule, not front matter.\n"
	got, err := Patch(input, []Edit{{Field: "library_name", Value: "pytorch"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\nlibrary_name: pytorch\n---\n" + input
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchIsIdempotent(t *testing.T) {
	inputs := []string{
		"# Title\nBody text\n",
		"---\npipeline_tag: old\nlicense: mit\n---\nBody\n",
		"---\nlicense: mit\n---\nBody\n",
		"---\r\nlicense: mit\r\n---\r\nBody\r\n",
	}
	edits := []Edit{
		{Field: "pipeline_tag", Value: "text-generation"},
		{Field: "library_name", Value: "transformers"},
	}

	for _, input := range inputs {
		once, err := Patch(input, edits)
		if err != nil {
			t.Fatalf("Patch(%q) error: %v", input, err)
		}
		twice, err := Patch(once, edits)
		if err != nil {
			t.Fatalf("Patch(Patch(%q)) error: %v", input, err)
		}
		if once != twice {
			t.Errorf("patch not idempotent for %q:\nfirst:  %q\nsecond: %q", input, once, twice)
		}
	}
}

func TestPatchPreservesBody(t *testing.T) {
	body := "# Model\n\nSome   spacing,\ttabs, and trailing blanks   \n\n\nmore\n"
	input := "---\nlicense: mit\n---\n" + body
	got, err := Patch(input, []Edit{{Field: "pipeline_tag", Value: "fill-mask"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	if !strings.HasSuffix(got, "---\n"+body) {
		t.Errorf("body not preserved verbatim:\n%q", got)
	}
}

func TestPatchUsesCRLFWhenInputIsCRLF(t *testing.T) {
	input := "---\r\nlicense: mit\r\n---\r\n# Title\r\nBody\r\n"
	got, err := Patch(input, []Edit{
		{Field: "pipeline_tag", Value: "text-generation"},
		{Field: "license", Value: "apache-2.0"},
	})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\r\nlicense: apache-2.0\r\npipeline_tag: text-generation\r\n---\r\n# Title\r\nBody\r\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
	if strings.Contains(strings.ReplaceAll(got, "\r\n", ""), "\n") {
		t.Errorf("output mixes LF into a CRLF document: %q", got)
	}
}

func TestPatchSynthesizesCRLFHeaderForCRLFBody(t *testing.T) {
	input := "# Title\r\nBody\r\n"
	got, err := Patch(input, []Edit{{Field: "pipeline_tag", Value: "fill-mask"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\r\npipeline_tag: fill-mask\r\n---\r\n# Title\r\nBody\r\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchHandlesEmptyDocument(t *testing.T) {
	got, err := Patch("", []Edit{{Field: "library_name", Value: "pytorch"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\nlibrary_name: pytorch\n---\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchHandlesClosingDelimiterAtEOF(t *testing.T) {
	// Closing --- without a trailing newline still closes the header.
	input := "---\nlicense: mit\n---"
	got, err := Patch(input, []Edit{{Field: "pipeline_tag", Value: "fill-mask"}})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	want := "---\nlicense: mit\npipeline_tag: fill-mask\n---\n"
	if got != want {
		t.Errorf("Patch() = %q, want %q", got, want)
	}
}

func TestPatchLoneOpenDelimiterIsUnclosed(t *testing.T) {
	_, err := Patch("---", []Edit{{Field: "license", Value: "mit"}})
	if !errors.Is(err, ErrUnclosedHeader) {
		t.Fatalf("Patch() error = %v, want ErrUnclosedHeader", err)
	}
}

func TestPatchFailureReturnsNoPartialDocument(t *testing.T) {
	input := "---\nlicense: mit\nno closing delimiter"
	got, err := Patch(input, []Edit{
		{Field: "pipeline_tag", Value: "a"},
		{Field: "library_name", Value: "b"},
	})
	if err == nil {
		t.Fatal("Patch() expected error for unclosed header")
	}
	if got != "" {
		t.Errorf("Patch() returned partial output %q alongside error", got)
	}
}
