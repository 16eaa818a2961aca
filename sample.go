package inferschema

import (
	"maps"
	"slices"

	js "github.com/reoring/inferschema/jsonschema"
)

// Sample is the Described implementation for native Go values. It remembers the
// Kind of its sample and the nested Described values found in Mapping and
// Sequence samples.
type Sample struct {
	value  any
	kind   Kind
	opts   options
	fields map[string]Described // Mapping: entries whose value is Described.
	items  []Described          // Sequence: Described elements, in order.
}

var _ Described = (*Sample)(nil)

// New wraps sample. Heterogeneous sequences are accepted here and rejected by
// ToSchema. A Described sample keeps KindObject and delegates both ToSchema
// and Deserialize to the wrapped value.
func New(sample any, opts ...Option) *Sample {
	o := options{formats: DefaultFormats()}
	for _, opt := range opts {
		opt(&o)
	}
	o.formats = o.formats.withDefaults()

	sample = normalizeNumber(sample)
	s := &Sample{value: sample, kind: KindOf(sample), opts: o}
	switch s.kind {
	case KindMapping:
		s.fields = map[string]Described{}
		_ = eachField(sample, func(k string, v any) error {
			if d, ok := asDescribed(v); ok {
				s.fields[k] = d
			}
			return nil
		})
	case KindSequence:
		_ = eachItem(sample, func(_ int, v any) error {
			if d, ok := asDescribed(v); ok {
				s.items = append(s.items, d)
			}
			return nil
		})
	}
	return s
}

// Kind reports the sample's classification.
func (s *Sample) Kind() Kind { return s.kind }

// Value returns the wrapped sample.
func (s *Sample) Value() any { return s.value }

// Formats returns the layouts in effect.
func (s *Sample) Formats() Formats { return s.opts.formats }

// NestedFields returns a copy of the Described entries of a Mapping sample.
func (s *Sample) NestedFields() map[string]Described { return maps.Clone(s.fields) }

// NestedItems returns a copy of the Described elements of a Sequence sample.
func (s *Sample) NestedItems() []Described { return slices.Clone(s.items) }

// ToSchema derives the schema for the sample. It fails with ErrInvalidSample
// for a nil sample, ErrMixedType for a heterogeneous sequence and
// ErrSchemaNotSerializable when the result cannot be JSON encoded.
func (s *Sample) ToSchema() (*js.Schema, error) {
	if s.value == nil {
		return nil, errInvalidSample()
	}
	sc, err := s.derive()
	if err != nil {
		return nil, err
	}
	if err := ensureSerializable(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Sample) derive() (*js.Schema, error) {
	switch s.kind {
	case KindSequence:
		return s.arraySchema()
	case KindMapping:
		return s.objectSchema()
	case KindRange:
		return rangeSchema(s.value.(IntRange)), nil
	case KindObject:
		if d, ok := asDescribed(s.value); ok {
			return d.ToSchema()
		}
		// Best effort for unrecognized values.
		return &js.Schema{Type: "object", Example: s.value}, nil
	default:
		return s.scalarSchema()
	}
}
