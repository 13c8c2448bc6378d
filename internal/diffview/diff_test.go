package diffview

import (
	"strings"
	"testing"
)

func TestLinesClassifiesChanges(t *testing.T) {
	before := "---\nlicense: mit\n---\nBody\n"
	after := "---\nlicense: mit\npipeline_tag: text-generation\n---\nBody\n"

	lines := Lines(before, after)

	var added, removed, context int
	for _, line := range lines {
		switch line.Type {
		case LineAdded:
			added++
			if line.Text != "pipeline_tag: text-generation" {
				t.Errorf("added line = %q", line.Text)
			}
			if line.NewLine != 3 {
				t.Errorf("added line number = %d, want 3", line.NewLine)
			}
		case LineRemoved:
			removed++
		case LineContext:
			context++
		}
	}
	if added != 1 || removed != 0 || context != 4 {
		t.Errorf("added/removed/context = %d/%d/%d", added, removed, context)
	}
}

func TestLinesReplacement(t *testing.T) {
	lines := Lines("pipeline_tag: old\n", "pipeline_tag: new\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %+v", lines)
	}
	if lines[0].Type != LineRemoved || lines[1].Type != LineAdded {
		t.Errorf("line types = %q, %q", lines[0].Type, lines[1].Type)
	}
}

func TestChanged(t *testing.T) {
	same := "a\nb\n"
	if Changed(Lines(same, same)) {
		t.Error("identical content reported as changed")
	}
	if !Changed(Lines("a\n", "b\n")) {
		t.Error("differing content reported as unchanged")
	}
}

func TestRenderCollapsesContext(t *testing.T) {
	var before, after strings.Builder
	for i := 0; i < 20; i++ {
		before.WriteString("line\n")
		after.WriteString("line\n")
	}
	after.WriteString("tail\n")

	out := Render(Lines(before.String(), after.String()))
	if !strings.Contains(out, "...") {
		t.Errorf("expected collapsed context marker, got %q", out)
	}
	if !strings.Contains(out, "+ tail") {
		t.Errorf("expected added line, got %q", out)
	}
	if strings.Count(out, "line") > 4 {
		t.Errorf("expected distant context collapsed, got %q", out)
	}
}
