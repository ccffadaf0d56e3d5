// Package markup renders the lightweight markdown produced by the report model as HTML.
package markup

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	headingRe = regexp.MustCompile(`(?m)^#{1,3}[ \t]*(.+)$`)
	bulletRe  = regexp.MustCompile(`(?m)^- (.+)$`)
	listRe    = regexp.MustCompile(`(<li>.*</li>\n?)+`)
)

// RenderReport converts report text to an HTML fragment.
// The text is escaped first, so any markup produced by the model is shown literally.
func RenderReport(text string) string {
	out := strings.ReplaceAll(text, "\r\n", "\n")
	out = html.EscapeString(out)

	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = headingRe.ReplaceAllString(out, "<h3>$1</h3>")
	out = bulletRe.ReplaceAllString(out, "<li>$1</li>")
	out = listRe.ReplaceAllString(out, "<ul>${0}</ul>")
	out = strings.ReplaceAll(out, "\n\n", "</p><p>")
	out = strings.ReplaceAll(out, "\n", "<br>")

	if !strings.HasPrefix(out, "<") {
		out = "<p>" + out + "</p>"
	}
	return out
}
