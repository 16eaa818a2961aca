package jsonschema

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Schema is an OpenAPI-style schema object derived from a sample value.
// Field order matches the emitted JSON key order (see MarshalJSON).
type Schema struct {
	Type    string `json:"type"`
	Format  string `json:"format,omitempty"`
	Example any    `json:"example,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
}

// wireSchema is the encoded form of Schema. Nested schemas and the example are
// pre-encoded so the encoder never walks the recursive Schema type itself.
type wireSchema struct {
	Type                 string          `json:"type"`
	Format               string          `json:"format,omitempty"`
	Example              json.RawMessage `json:"example,omitempty"`
	Items                json.RawMessage `json:"items,omitempty"`
	Properties           json.RawMessage `json:"properties,omitempty"`
	Required             []string        `json:"required,omitempty"`
	AdditionalProperties json.RawMessage `json:"additionalProperties,omitempty"`
}

// MarshalJSON emits the keys in field order. Properties follow the Required
// order, then any remaining names sorted.
func (s Schema) MarshalJSON() ([]byte, error) {
	w := wireSchema{Type: s.Type, Format: s.Format, Required: s.Required}
	var err error
	if s.Example != nil {
		if w.Example, err = json.Marshal(s.Example); err != nil {
			return nil, err
		}
	}
	if s.Items != nil {
		if w.Items, err = s.Items.MarshalJSON(); err != nil {
			return nil, err
		}
	}
	if len(s.Properties) > 0 {
		if w.Properties, err = s.propertiesJSON(); err != nil {
			return nil, err
		}
	}
	if s.AdditionalProperties != nil {
		if w.AdditionalProperties, err = s.AdditionalProperties.MarshalJSON(); err != nil {
			return nil, err
		}
	}
	return json.Marshal(w)
}

// PropertyNames lists the property names in emitted order.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, k := range s.Required {
		if _, ok := s.Properties[k]; ok && !seen[k] {
			names = append(names, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range s.Properties {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func (s Schema) propertiesJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.PropertyNames() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		p := s.Properties[k]
		if p == nil {
			buf.WriteString("null")
			continue
		}
		v, err := p.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Placeholder returns the generic {"type": "object"} schema used for values
// that carry no description of their own.
func Placeholder() *Schema { return &Schema{Type: "object"} }

// JSON encodes the schema.
func (s *Schema) JSON() ([]byte, error) { return json.Marshal(s) }

// JSONIndent encodes the schema with two-space indentation.
func (s *Schema) JSONIndent() ([]byte, error) { return json.MarshalIndent(s, "", "  ") }

// YAML encodes the schema as block-style YAML. The document is produced from
// the JSON encoding so that examples keep their JSON shape and key order.
func (s *Schema) YAML() ([]byte, error) {
	data, err := s.JSON()
	if err != nil {
		return nil, err
	}
	return YAMLFromJSON(data)
}

// YAMLFromJSON re-encodes a JSON document as block-style YAML, keeping key
// order. Strings are quoted only where a plain scalar would change type.
func YAMLFromJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	blockStyle(&doc)
	return yaml.Marshal(&doc)
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
