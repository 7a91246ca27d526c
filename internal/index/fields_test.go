package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var descLink = FieldSpec{Table: []string{"Description", "Link"}, Link: []string{"Link"}}

func TestFieldSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    FieldSpec
		missing []string
	}{
		{name: "subset", spec: descLink},
		{name: "order does not matter", spec: FieldSpec{Table: []string{"A", "B", "C"}, Link: []string{"C", "A"}}},
		{name: "no link fields", spec: FieldSpec{Table: []string{"A"}}},
		{name: "empty", spec: FieldSpec{}},
		{name: "unknown link", spec: FieldSpec{Table: []string{"Description"}, Link: []string{"Link"}}, missing: []string{"Link"}},
		{name: "some unknown", spec: FieldSpec{Table: []string{"A", "B"}, Link: []string{"B", "X", "Y"}}, missing: []string{"X", "Y"}},
		{name: "case sensitive", spec: FieldSpec{Table: []string{"Link"}, Link: []string{"link"}}, missing: []string{"link"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidLinkFields)
			var linkErr *InvalidLinkFieldsError
			require.ErrorAs(t, err, &linkErr)
			assert.Equal(t, tt.missing, linkErr.Missing)
		})
	}
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name      string
		docstring string
		spec      FieldSpec
		want      map[string]FieldValue
	}{
		{
			name:      "description and link",
			docstring: "Description: This is a description\n\nLink: some_link.com/link1",
			spec:      descLink,
			want: map[string]FieldValue{
				"Description": {Raw: "This is a description"},
				"Link":        {Raw: "some_link.com/link1", IsLink: true},
			},
		},
		{
			name:      "missing field has no entry",
			docstring: "missing description start\n\nLink: some_other_link.com/link2",
			spec:      descLink,
			want: map[string]FieldValue{
				"Link": {Raw: "some_other_link.com/link2", IsLink: true},
			},
		},
		{
			name:      "last line wins",
			docstring: "Description: first\nDescription: second",
			spec:      descLink,
			want: map[string]FieldValue{
				"Description": {Raw: "second"},
			},
		},
		{
			name:      "indented lines are trimmed",
			docstring: "\n    Description: indented  \r\n\tLink: tabbed.com",
			spec:      descLink,
			want: map[string]FieldValue{
				"Description": {Raw: "indented"},
				"Link":        {Raw: "tabbed.com", IsLink: true},
			},
		},
		{
			name:      "prefix needs the space after the colon",
			docstring: "Description:no space\nLink:",
			spec:      descLink,
			want:      map[string]FieldValue{},
		},
		{
			name:      "prefix must start the line",
			docstring: "See Description: nope",
			spec:      descLink,
			want:      map[string]FieldValue{},
		},
		{
			name:      "unconfigured fields are ignored",
			docstring: "Author: someone\nDescription: kept",
			spec:      descLink,
			want: map[string]FieldValue{
				"Description": {Raw: "kept"},
			},
		},
		{
			name:      "first field in list order takes the line",
			docstring: "A: B: value",
			spec:      FieldSpec{Table: []string{"A", "A: B"}},
			want: map[string]FieldValue{
				"A": {Raw: "B: value"},
			},
		},
		{
			name:      "link flag comes from the field list not the content",
			docstring: "Description: https://example.com\nLink: not a url",
			spec:      descLink,
			want: map[string]FieldValue{
				"Description": {Raw: "https://example.com"},
				"Link":        {Raw: "not a url", IsLink: true},
			},
		},
		{
			name:      "empty docstring",
			docstring: "",
			spec:      descLink,
			want:      map[string]FieldValue{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFields(tt.docstring, tt.spec))
		})
	}
}

func TestFieldValueCell(t *testing.T) {
	assert.Equal(t, "plain", FieldValue{Raw: "plain"}.Cell())
	assert.Equal(t, "[Link](a.com/b)", FieldValue{Raw: "a.com/b", IsLink: true}.Cell())
	assert.Equal(t, "", FieldValue{}.Cell())
}
