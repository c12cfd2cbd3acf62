package cleaner

import (
	"regexp"
	"strings"
)

var (
	urlRe        = regexp.MustCompile(`https?://\S+`)
	mentionRe    = regexp.MustCompile(`@\w+`)
	multiSpaceRe = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
)

// Normalize strips URLs, @mentions and hashtag markers from raw post text,
// unescapes the HTML entities the X API leaves in post bodies, and collapses
// whitespace runs to a single space. Letter casing is preserved; consumers
// that need case-insensitive matching lowercase on their side.
func Normalize(text string) string {
	text = urlRe.ReplaceAllString(text, " ")
	text = mentionRe.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "#", "")
	text = entityReplacer.Replace(text)
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
