package index

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// sectionPattern matches the markers only as whole lines, with an optional
// trailing \r for CRLF documents.
var sectionPattern = regexp.MustCompile(`(?ms)^` + regexp.QuoteMeta(SectionTitle) + `\r?$.*?^` + regexp.QuoteMeta(SectionEnd) + `\r?$`)

// Merge replaces the first managed section of document with table, or appends
// the table after a blank line when the document has none. The table is
// inserted literally.
func Merge(document, table string) string {
	loc := sectionPattern.FindStringIndex(document)
	if loc == nil {
		return document + "\n\n" + table
	}
	return document[:loc[0]] + table + document[loc[1]:]
}

// ErrInvalidDocument is returned for target paths that do not look like a README.
var ErrInvalidDocument = errors.New("invalid target document")

var documentExts = []string{"md", "rst", "txt"}

// CheckDocumentPath accepts paths whose base name contains "README" and whose
// extension is md, rst or txt, ignoring case.
func CheckDocumentPath(path string) error {
	name := filepath.Base(path)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !strings.Contains(strings.ToUpper(name), "README") || !slices.Contains(documentExts, ext) {
		return fmt.Errorf("%w: %s: file name must contain README and have an extension in %v", ErrInvalidDocument, path, documentExts)
	}
	return nil
}
