package index

import "regexp"

// docstringPattern only anchors at the start of the text so literals further
// down the file are never picked up.
var docstringPattern = regexp.MustCompile(`(?s)\A[ \t]*(?i:r|u)?(?:"""(.*?)"""|'''(.*?)''')`)

// ExtractDocstring returns the body of the triple-quoted literal that opens
// the source text, or "" when the text does not start with one. The body is
// returned verbatim; escape sequences are not interpreted.
func ExtractDocstring(src string) string {
	m := docstringPattern.FindStringSubmatchIndex(src)
	if m == nil {
		return ""
	}
	for group := 1; group <= 2; group++ {
		if start := m[2*group]; start >= 0 {
			return src[start:m[2*group+1]]
		}
	}
	return ""
}
