package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	reScriptStyle = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)\s*>`)
	reLineBreaks  = regexp.MustCompile(`(?is)<br\s*/?>|</p\s*>`)
	reImages      = regexp.MustCompile(`(?is)<img[^>]*>`)
	reTags        = regexp.MustCompile(`(?is)<[^>]+>`)
	reSpaces      = regexp.MustCompile(`[ \t\r\f\v]+`)
	reBlankLines  = regexp.MustCompile(`\n\s*\n+`)
)

// StripMarkup reduces an HTML feed body to plain text: entities unescaped,
// script/style blocks removed, <br> and </p> kept as line breaks, images
// dropped, remaining tags stripped, whitespace collapsed.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = reScriptStyle.ReplaceAllString(s, " ")
	s = reLineBreaks.ReplaceAllString(s, "\n")
	s = reImages.ReplaceAllString(s, " ")
	s = reTags.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = reBlankLines.ReplaceAllString(s, "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
