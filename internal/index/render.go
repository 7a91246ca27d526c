package index

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// SectionTitle opens the managed section of the document.
	SectionTitle = "# Scripts"
	// SectionEnd closes the managed section of the document.
	SectionEnd = "::"
)

// RenderTable renders docs as the managed markdown section. Rows are written
// in the order given; callers sort with SortDocInfos first.
func RenderTable(spec FieldSpec, docs []DocInfo) string {
	var b strings.Builder
	b.WriteString(SectionTitle)
	fmt.Fprintf(&b, "\n| Name | %s |", strings.Join(spec.Table, " | "))
	b.WriteString("\n|" + strings.Repeat(":---|", len(spec.Table)+1))
	for _, doc := range docs {
		b.WriteString("\n")
		writeRow(&b, spec, doc)
	}
	b.WriteString("\n" + SectionEnd)
	return b.String()
}

func writeRow(b *strings.Builder, spec FieldSpec, doc DocInfo) {
	cells := make([]string, len(spec.Table))
	for i, name := range spec.Table {
		// Missing fields stay as the empty string.
		cells[i] = doc.Fields[name].Cell()
	}
	fmt.Fprintf(b, "| `%s` | %s |", filepath.Base(doc.Path), strings.Join(cells, " | "))
}

// SortDocInfos orders docs by path, comparing one path component at a time.
func SortDocInfos(docs []DocInfo) {
	sort.Slice(docs, func(i, j int) bool {
		return comparePaths(docs[i].Path, docs[j].Path) < 0
	})
}

func comparePaths(a, b string) int {
	as := strings.Split(filepath.ToSlash(a), "/")
	bs := strings.Split(filepath.ToSlash(b), "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return len(as) - len(bs)
}
