package main

import (
	"strings"

	"github.com/ordino/ordino/internal/ui"
)

func logHighlighter(prefixLengths map[string]int) func(string) string {
	if prefixLengths == nil {
		prefixLengths = map[string]int{}
	}
	return func(id string) string {
		if id == "" {
			return id
		}
		prefixLen, ok := prefixLengths[strings.ToLower(id)]
		if !ok {
			return ui.HighlightID(id, 0)
		}
		return ui.HighlightID(id, prefixLen)
	}
}
