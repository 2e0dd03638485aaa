// Package sanitize neutralizes markup injection in user-supplied strings
// before they are interpolated into generated email bodies.
package sanitize

import "strings"

// The entity forms are fixed: &#039; rather than &#39;, &quot; rather than
// &#34;. Rendered bodies are compared against stored copies downstream, so
// the exact forms matter. This rules out html.EscapeString.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML-significant characters to their named
// entities. Empty input maps to empty output. Applying it twice is NOT
// idempotent: the ampersand of an already-produced entity is re-escaped
// (&lt; becomes &amp;lt;). Callers escape exactly once, before rendering.
func EscapeHTML(unsafe string) string {
	if unsafe == "" {
		return ""
	}
	return htmlEscaper.Replace(unsafe)
}
