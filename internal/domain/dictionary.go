package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DataDictionary is the field list of one dataset as published by the
// metadata service.
type DataDictionary struct {
	ID     string
	Fields []Field
}

// Field describes one attribute of a dataset.
type Field struct {
	Name        string
	Description string
	Type        string
	Format      string
	HasFormat   bool
	Encodings   []Encoding
}

// Encoding is one key/value pair of a field's value encodings, kept in
// document order.
type Encoding struct {
	Key   string
	Value string
}

// TypeFormat returns "type" or "type:format" when the field declares a format.
func (f Field) TypeFormat() string {
	if f.HasFormat {
		return f.Type + ":" + f.Format
	}
	return f.Type
}

// AnnotationText builds the text sent to the recognizer:
//
//	<name>: <description>
//	<key>: <value>
//	...
//
// Every encoding line, including the last, ends with a newline.
func (f Field) AnnotationText() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteString(": ")
	b.WriteString(f.Description)
	b.WriteString("\n")
	for _, enc := range f.Encodings {
		b.WriteString(enc.Line())
		b.WriteString("\n")
	}
	return b.String()
}

// Line renders the encoding as "key: value".
func (e Encoding) Line() string {
	return e.Key + ": " + e.Value
}

// UnmarshalJSON decodes a field object. Missing attributes default to empty;
// encodings keep the order in which they appear in the document.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: field: %v", ErrMalformedDocument, err)
	}

	*f = Field{
		Name:        renderValue(raw["name"]),
		Description: renderValue(raw["description"]),
		Type:        renderValue(raw["type"]),
	}
	if format, ok := raw["format"]; ok {
		f.Format = renderValue(format)
		f.HasFormat = true
	}

	encodings, err := decodeEncodings(raw["encodings"])
	if err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}
	f.Encodings = encodings
	return nil
}

// ParseDictionary decodes a downloaded data dictionary document.
//
// The field list normally sits at data_dictionary.data_dictionary, but some
// published documents carry it directly as a list under data_dictionary.
// Both shapes are accepted; anything else is rejected.
func ParseDictionary(id string, data []byte) (DataDictionary, error) {
	dd := DataDictionary{ID: id}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return dd, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, id, err)
	}

	outer := bytes.TrimSpace(doc["data_dictionary"])
	if isNull(outer) {
		return dd, nil
	}

	var list json.RawMessage
	switch outer[0] {
	case '[':
		list = outer
	case '{':
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(outer, &inner); err != nil {
			return dd, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, id, err)
		}
		list = bytes.TrimSpace(inner["data_dictionary"])
		if isNull(list) {
			return dd, nil
		}
		if list[0] != '[' {
			return dd, fmt.Errorf("%w: %s: data_dictionary.data_dictionary is not a list", ErrMalformedDocument, id)
		}
	default:
		return dd, fmt.Errorf("%w: %s: data_dictionary is neither a list nor an object", ErrMalformedDocument, id)
	}

	if err := json.Unmarshal(list, &dd.Fields); err != nil {
		return dd, fmt.Errorf("%s: %w", id, err)
	}
	return dd, nil
}

func decodeEncodings(data json.RawMessage) ([]Encoding, error) {
	data = bytes.TrimSpace(data)
	if isNull(data) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: encodings: %v", ErrMalformedDocument, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: encodings is not an object", ErrMalformedDocument)
	}

	var out []Encoding
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: encodings: %v", ErrMalformedDocument, err)
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: encodings[%q]: %v", ErrMalformedDocument, key, err)
		}
		out = append(out, Encoding{Key: key, Value: renderValue(value)})
	}
	return out, nil
}

// renderValue returns string values verbatim and any other JSON value as its
// compact JSON text. Missing and null values render as "".
func renderValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func isNull(raw []byte) bool {
	return len(raw) == 0 || string(raw) == "null"
}
