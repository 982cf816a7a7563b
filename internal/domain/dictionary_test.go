package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedDoc = `{
	"_guid_type": "data_dictionary",
	"data_dictionary": {
		"title": "Pain scores",
		"data_dictionary": [
			{
				"name": "pain_score",
				"description": "Self-reported pain intensity",
				"type": "integer",
				"encodings": {"0": "No pain", "10": "Worst pain", "5": "Moderate"}
			},
			{
				"name": "visit_date",
				"type": "string",
				"format": "date"
			}
		]
	}
}`

const bareListDoc = `{
	"data_dictionary": [
		{
			"name": "pain_score",
			"description": "Self-reported pain intensity",
			"type": "integer",
			"encodings": {"0": "No pain", "10": "Worst pain", "5": "Moderate"}
		},
		{
			"name": "visit_date",
			"type": "string",
			"format": "date"
		}
	]
}`

func TestParseDictionary_BothShapesYieldSameFields(t *testing.T) {
	t.Parallel()

	nested, err := ParseDictionary("nested.json", []byte(nestedDoc))
	require.NoError(t, err)
	bare, err := ParseDictionary("bare.json", []byte(bareListDoc))
	require.NoError(t, err)

	require.Len(t, nested.Fields, 2)
	assert.Equal(t, nested.Fields, bare.Fields)
	assert.Equal(t, "nested.json", nested.ID)
	assert.Equal(t, "bare.json", bare.ID)
}

func TestParseDictionary_FieldAttributes(t *testing.T) {
	t.Parallel()

	dd, err := ParseDictionary("dd", []byte(nestedDoc))
	require.NoError(t, err)

	pain := dd.Fields[0]
	assert.Equal(t, "pain_score", pain.Name)
	assert.Equal(t, "Self-reported pain intensity", pain.Description)
	assert.Equal(t, "integer", pain.TypeFormat())
	assert.Equal(t, []Encoding{
		{Key: "0", Value: "No pain"},
		{Key: "10", Value: "Worst pain"},
		{Key: "5", Value: "Moderate"},
	}, pain.Encodings, "encodings keep document order")

	visit := dd.Fields[1]
	assert.Equal(t, "", visit.Description)
	assert.Equal(t, "string:date", visit.TypeFormat())
	assert.Empty(t, visit.Encodings)
}

func TestParseDictionary_EmptyShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"no data_dictionary key", `{"title": "x"}`},
		{"null data_dictionary", `{"data_dictionary": null}`},
		{"object without inner list", `{"data_dictionary": {"title": "x"}}`},
		{"empty list", `{"data_dictionary": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dd, err := ParseDictionary("dd", []byte(tt.doc))
			require.NoError(t, err)
			assert.Empty(t, dd.Fields)
		})
	}
}

func TestParseDictionary_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"top-level list", `[]`},
		{"string data_dictionary", `{"data_dictionary": "fields"}`},
		{"inner object", `{"data_dictionary": {"data_dictionary": {"name": "x"}}}`},
		{"field is a string", `{"data_dictionary": ["pain_score"]}`},
		{"encodings is a list", `{"data_dictionary": [{"name": "a", "encodings": ["x"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDictionary("dd", []byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedDocument), "got %v", err)
		})
	}
}

func TestParseDictionary_NonStringValues(t *testing.T) {
	t.Parallel()

	doc := `{"data_dictionary": [{"name": "flag", "type": "boolean", "encodings": {"1": true, "2": 3.5, "3": null, "4": {"a": 1}}}]}`
	dd, err := ParseDictionary("dd", []byte(doc))
	require.NoError(t, err)
	require.Len(t, dd.Fields, 1)

	assert.Equal(t, []Encoding{
		{Key: "1", Value: "true"},
		{Key: "2", Value: "3.5"},
		{Key: "3", Value: ""},
		{Key: "4", Value: `{"a":1}`},
	}, dd.Fields[0].Encodings)
}

func TestField_AnnotationText(t *testing.T) {
	t.Parallel()

	f := Field{
		Name:        "pain_score",
		Description: "Self-reported pain intensity",
		Encodings: []Encoding{
			{Key: "0", Value: "No pain"},
			{Key: "10", Value: "Worst pain"},
		},
	}

	want := "pain_score: Self-reported pain intensity\n0: No pain\n10: Worst pain\n"
	assert.Equal(t, want, f.AnnotationText())
}

func TestField_AnnotationText_EmptyField(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ": \n", Field{}.AnnotationText())
}

func TestField_AnnotationText_IgnoresType(t *testing.T) {
	t.Parallel()

	f := Field{Name: "visit_date", Type: "string", Format: "date", HasFormat: true}
	assert.Equal(t, "visit_date: \n", f.AnnotationText())
}
