package inferschema

import (
	"reflect"

	js "github.com/reoring/inferschema/jsonschema"
)

// arraySchema derives the schema of a Sequence sample. Elements must share the
// exact Go type of the first element; a Described first element supplies the
// item schema and the only surfaced example.
func (s *Sample) arraySchema() (*js.Schema, error) {
	rv := reflect.ValueOf(s.value)
	if rv.Len() == 0 {
		return &js.Schema{Type: "array", Items: js.Placeholder(), Example: []any{}}, nil
	}
	first := rv.Index(0).Interface()
	itemType := reflect.TypeOf(first)
	for i := 1; i < rv.Len(); i++ {
		v := rv.Index(i).Interface()
		if reflect.TypeOf(v) != itemType {
			return nil, errMixedType(indexPath(i), first, v)
		}
	}
	if d, ok := asDescribed(first); ok {
		nested, err := d.ToSchema()
		if err != nil {
			return nil, atPath(err, "/items")
		}
		return &js.Schema{Type: "array", Items: nested, Example: []any{nested.Example}}, nil
	}
	return &js.Schema{Type: "array", Items: js.Placeholder(), Example: s.value}, nil
}

// objectSchema derives the schema of a Mapping sample. Every key is required.
// When at least one value is Described the structured shape (required,
// properties) is emitted, otherwise the opaque shape (additionalProperties)
// with the original mapping as example.
func (s *Sample) objectSchema() (*js.Schema, error) {
	var (
		required []string
		wrapped  bool
		props    = map[string]*js.Schema{}
		examples = newExampleMap(s.value)
	)
	err := eachField(s.value, func(k string, v any) error {
		required = append(required, k)
		d, ok := asDescribed(v)
		if !ok {
			props[k] = js.Placeholder()
			examples.set(k, v)
			return nil
		}
		wrapped = true
		nested, err := d.ToSchema()
		if err != nil {
			return atPath(err, "/properties"+fieldPath(k))
		}
		props[k] = nested
		examples.set(k, nested.Example)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !wrapped {
		return &js.Schema{Type: "object", AdditionalProperties: js.Placeholder(), Example: s.value}, nil
	}
	return &js.Schema{Type: "object", Required: required, Properties: props, Example: examples.value()}, nil
}

// exampleMap collects object examples, keeping insertion order when the
// sample itself is ordered.
type exampleMap struct {
	ordered *OrderedMap
	plain   map[string]any
}

func newExampleMap(sample any) *exampleMap {
	if _, ok := sample.(*OrderedMap); ok {
		return &exampleMap{ordered: NewOrderedMap()}
	}
	return &exampleMap{plain: map[string]any{}}
}

func (m *exampleMap) set(k string, v any) {
	if m.ordered != nil {
		m.ordered.Set(k, v)
		return
	}
	m.plain[k] = v
}

func (m *exampleMap) value() any {
	if m.ordered != nil {
		return m.ordered
	}
	return m.plain
}
