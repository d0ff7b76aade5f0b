package render

import "strings"

// textEscaper escapes text content for safe inclusion in HTML.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// attrEscaper additionally escapes whitespace that could break attribute
// parsing.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// escapeText escapes s for HTML content position.
func escapeText(s string) string { return textEscaper.Replace(s) }

// escapeAttr escapes s for HTML attribute-value position.
func escapeAttr(s string) string { return attrEscaper.Replace(s) }
