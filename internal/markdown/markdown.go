// Package markdown formats task descriptions for terminal display.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/wordwrap"

	internalstrings "github.com/ordino/ordino/internal/strings"
)

var (
	rendererMu sync.Mutex
	renderers  = map[int]*glamour.TermRenderer{}
)

// Render formats markdown text for terminal output at the given width,
// indenting every rendered line. It falls back to the raw input when the
// renderer fails.
func Render(width, indent int, input string) string {
	value := internalstrings.NormalizeNewlines(input)
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}

	renderer, err := rendererForWidth(width)
	if err != nil {
		return indentLines(ReflowParagraphs(value, width), indent)
	}

	rendered, err := renderer.Render(value)
	if err != nil {
		return indentLines(ReflowParagraphs(value, width), indent)
	}

	rendered = internalstrings.TrimTrailingNewlines(rendered)
	rendered = strings.TrimPrefix(rendered, "\n")
	return indentLines(rendered, indent)
}

func rendererForWidth(width int) (*glamour.TermRenderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if renderer, ok := renderers[width]; ok {
		return renderer, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.NoTTYStyleConfig),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	renderers[width] = renderer
	return renderer, nil
}

// ReflowParagraphs wraps and normalizes paragraph text without markdown
// styling.
func ReflowParagraphs(value string, width int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}

	paragraphs := splitParagraphs(value)
	wrapped := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		normalized := internalstrings.NormalizeWhitespace(paragraph)
		if normalized == "" {
			continue
		}
		wrapped = append(wrapped, wordwrap.String(normalized, width))
	}
	return strings.Join(wrapped, "\n\n")
}

func splitParagraphs(value string) []string {
	lines := strings.Split(value, "\n")
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		paragraphs = append(paragraphs, strings.Join(current, " "))
		current = nil
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimSpace(line))
	}
	flush()
	return paragraphs
}

func indentLines(value string, indent int) string {
	if indent == 0 {
		return value
	}

	prefix := strings.Repeat(" ", indent)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
