// Package render turns note markdown into sanitized HTML fragments for
// the detail view. Notes are stored as raw markdown; rendering is a
// display concern only.
package render

import (
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// HTML renders markdown source to a sanitized HTML fragment.
// Raw HTML in the source survives parsing but not the sanitizer, so
// script injection through note content is stripped.
func HTML(source string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.HardLineBreak
	p := parser.NewWithExtensions(extensions)

	htmlFlags := mdhtml.CommonFlags | mdhtml.HrefTargetBlank
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: htmlFlags})

	unsafe := markdown.ToHTML([]byte(source), p, renderer)
	return string(policy.SanitizeBytes(unsafe))
}
