package markdown

import (
	"strings"
	"testing"
)

func TestRenderEmpty(t *testing.T) {
	if got := Render(80, 0, ""); got != "" {
		t.Errorf("Render(empty) = %q, want empty", got)
	}
	if got := Render(80, 0, "  \n \t"); got != "" {
		t.Errorf("Render(whitespace) = %q, want empty", got)
	}
}

func TestRenderIndents(t *testing.T) {
	got := Render(40, 2, "plain text")
	for _, line := range strings.Split(got, "\n") {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("line %q not indented", line)
		}
	}
}

func TestRenderNormalizesNewlines(t *testing.T) {
	got := Render(40, 0, "one\r\ntwo")
	if strings.Contains(got, "\r") {
		t.Errorf("rendered output contains carriage return: %q", got)
	}
}

func TestReflowParagraphs(t *testing.T) {
	input := "first   paragraph\nstill first\n\nsecond paragraph"
	got := ReflowParagraphs(input, 80)
	want := "first paragraph still first\n\nsecond paragraph"
	if got != want {
		t.Errorf("ReflowParagraphs = %q, want %q", got, want)
	}
}

func TestReflowParagraphsWraps(t *testing.T) {
	got := ReflowParagraphs("aaa bbb ccc", 7)
	if !strings.Contains(got, "\n") {
		t.Errorf("expected wrapped output, got %q", got)
	}
}
