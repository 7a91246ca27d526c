package index

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLinkFields is matched by errors returned from FieldSpec.Validate.
var ErrInvalidLinkFields = errors.New("link fields must be a subset of table fields")

// FieldSpec lists the table columns in display order and the subset of them
// rendered as hyperlinks.
type FieldSpec struct {
	Table []string
	Link  []string
}

// InvalidLinkFieldsError reports the link fields missing from the table.
type InvalidLinkFieldsError struct {
	Missing []string
	Spec    FieldSpec
}

func (e *InvalidLinkFieldsError) Error() string {
	return fmt.Sprintf("%v: link fields %q not in table fields %q", ErrInvalidLinkFields, e.Missing, e.Spec.Table)
}

func (e *InvalidLinkFieldsError) Is(target error) bool {
	return target == ErrInvalidLinkFields
}

// Validate checks that every link field is also a table field.
func (s FieldSpec) Validate() error {
	table := make(map[string]struct{}, len(s.Table))
	for _, name := range s.Table {
		table[name] = struct{}{}
	}
	var missing []string
	for _, name := range s.Link {
		if _, ok := table[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &InvalidLinkFieldsError{Missing: missing, Spec: s}
	}
	return nil
}

func (s FieldSpec) isLink(name string) bool {
	for _, link := range s.Link {
		if link == name {
			return true
		}
	}
	return false
}

// FieldValue is one extracted docstring value.
type FieldValue struct {
	Raw    string
	IsLink bool
}

// Cell renders the value as a table cell.
func (v FieldValue) Cell() string {
	if v.IsLink {
		return "[Link](" + v.Raw + ")"
	}
	return v.Raw
}

// DocInfo holds the fields found in one source file's docstring. Fields that
// were not found have no key.
type DocInfo struct {
	Path   string
	Fields map[string]FieldValue
}

// ParseFields scans the docstring for "<Field>: <value>" lines. A line is
// assigned to the first table field whose prefix it carries, and a later line
// for the same field replaces the earlier value.
func ParseFields(docstring string, spec FieldSpec) map[string]FieldValue {
	fields := make(map[string]FieldValue)
	for _, line := range strings.Split(docstring, "\n") {
		line = strings.TrimSpace(line)
		for _, name := range spec.Table {
			rest, ok := strings.CutPrefix(line, name+": ")
			if !ok {
				continue
			}
			fields[name] = FieldValue{Raw: rest, IsLink: spec.isLink(name)}
			break
		}
	}
	return fields
}
