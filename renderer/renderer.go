// Package renderer turns profit reports into markdown, the exchange format
// of every pfl output: markdown renders nicely in a terminal, in a repo,
// and converts to HTML for sharing.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTML converts a rendered markdown report to a standalone HTML fragment.
// Tables require the GFM extension, the reports are mostly tables.
func HTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("cannot convert report to HTML: %w", err)
	}
	return buf.String(), nil
}
