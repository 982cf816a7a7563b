package domain

import (
	"encoding/json"
	"fmt"
	"maps"
)

// ConceptNamespace prefixes every concept identifier written into a denotation.
const ConceptNamespace = "MESH"

// Token is one entity mention returned by the recognizer. Text is the
// mention itself; every other attribute (span, label, ...) is kept verbatim
// in Attributes and written back out with the denotation.
type Token struct {
	Text       string
	Attributes map[string]json.RawMessage
}

// UnmarshalJSON decodes a recognizer denotation. The text attribute must be
// a string; its emptiness is checked by the caller.
func (t *Token) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: token: %v", ErrMalformedResponse, err)
	}
	text, ok := raw["text"]
	if !ok {
		return fmt.Errorf("%w: token has no text attribute", ErrMalformedResponse)
	}
	var s string
	if err := json.Unmarshal(text, &s); err != nil {
		return fmt.Errorf("%w: token text: %v", ErrMalformedResponse, err)
	}
	delete(raw, "text")

	t.Text = s
	t.Attributes = raw
	return nil
}

// MarshalJSON writes the token back in its recognizer shape.
func (t Token) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Attributes)+1)
	for k, v := range t.Attributes {
		out[k] = v
	}
	out["text"] = t.Text
	return json.Marshal(out)
}

// Concept is one normalizer candidate for a token.
type Concept struct {
	CURIE         string      `json:"curie"`
	Label         string      `json:"label"`
	DistanceScore json.Number `json:"distance_score"`
}

// Denotation is a recognized mention linked to its closest concept.
type Denotation struct {
	Token
	Obj string
}

// NewDenotation copies the token and attaches the concept reference.
func NewDenotation(token Token, concept Concept) Denotation {
	return Denotation{
		Token: Token{
			Text:       token.Text,
			Attributes: maps.Clone(token.Attributes),
		},
		Obj: ConceptRef(concept),
	}
}

// ConceptRef formats a concept as "MESH:<curie> (<label>, score: <score>)".
func ConceptRef(c Concept) string {
	return fmt.Sprintf("%s:%s (%s, score: %s)", ConceptNamespace, c.CURIE, c.Label, c.DistanceScore)
}

// UnmarshalJSON reads a denotation previously written by MarshalJSON.
func (d *Denotation) UnmarshalJSON(data []byte) error {
	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	var obj string
	if raw, ok := t.Attributes["obj"]; ok {
		if err := json.Unmarshal(raw, &obj); err != nil {
			return fmt.Errorf("%w: denotation obj: %v", ErrMalformedResponse, err)
		}
		delete(t.Attributes, "obj")
	}
	d.Token = t
	d.Obj = obj
	return nil
}

// MarshalJSON writes the token attributes plus obj.
func (d Denotation) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Attributes)+2)
	for k, v := range d.Attributes {
		out[k] = v
	}
	out["text"] = d.Text
	out["obj"] = d.Obj
	return json.Marshal(out)
}
