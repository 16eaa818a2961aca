package inferschema

import (
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/reoring/inferschema/codec"
)

// Deserialize converts JSON-decoded input into the sample's native
// representation:
//
//   - Date, DateTime and Time text is parsed with the configured layouts
//     (DateTime and Time also accept RFC3339 and common variants) into
//     civil.Date, time.Time and TimeOfDay
//   - Binary text is decoded from base64 into []byte
//   - Range input is a sequence of integers, returned as []int64
//   - Integer, Float, Boolean and String values take the sample's Go type
//   - Sequence and Mapping values have their nested Described entries
//     deserialized recursively
//
// The converted value must then have the sample's Kind; Object samples require
// the exact Go type. Failures are *Error values matching ErrParse or
// ErrTypeMismatch.
func (s *Sample) Deserialize(raw any) (any, error) {
	raw = normalizeNumber(raw)
	f := s.opts.formats
	switch s.kind {
	case KindDate:
		text, err := s.text(raw)
		if err != nil {
			return nil, err
		}
		d, err := codec.Date(f.Date).Decode(text)
		if err != nil {
			return nil, errParse("/", s.kind, KindString, err)
		}
		return d, nil
	case KindDateTime:
		text, err := s.text(raw)
		if err != nil {
			return nil, err
		}
		t, err := codec.DateTime(f.DateTime).Decode(text)
		if err != nil {
			return nil, errParse("/", s.kind, KindString, err)
		}
		return t, nil
	case KindTime:
		text, err := s.text(raw)
		if err != nil {
			return nil, err
		}
		t, err := codec.Clock(f.Time).Decode(text)
		if err != nil {
			return nil, errParse("/", s.kind, KindString, err)
		}
		return TimeOfDayOf(t), nil
	case KindBinary:
		text, err := s.text(raw)
		if err != nil {
			return nil, err
		}
		b, err := codec.Base64().Decode(text)
		if err != nil {
			return nil, errParse("/", s.kind, KindString, err)
		}
		return b, nil
	case KindRange:
		return s.rangeValues(raw)
	case KindInteger:
		// encoding/json decodes every number as float64.
		if fv, ok := raw.(float64); ok {
			if i, ok := integralFloat(fv); ok {
				raw = i
			}
		}
		return s.scalarValue(raw)
	case KindFloat, KindBoolean, KindString:
		return s.scalarValue(raw)
	case KindSequence:
		if KindOf(raw) != KindSequence {
			return nil, errTypeMismatch("/", s.kind, raw)
		}
		return s.sequenceValue(raw)
	case KindMapping:
		if KindOf(raw) != KindMapping {
			return nil, errTypeMismatch("/", s.kind, raw)
		}
		return s.mappingValue(raw)
	}
	return s.objectValue(raw)
}

// text returns raw as a string for the text-encoded kinds.
func (s *Sample) text(raw any) (string, error) {
	if raw != nil {
		if rv := reflect.ValueOf(raw); rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	}
	return "", errTypeMismatch("/", s.kind, raw)
}

func (s *Sample) scalarValue(raw any) (any, error) {
	if KindOf(raw) != s.kind {
		return nil, errTypeMismatch("/", s.kind, raw)
	}
	v, ok := convertScalar(raw, reflect.TypeOf(s.value))
	if !ok {
		return nil, errTypeMismatch("/", s.kind, raw)
	}
	return v, nil
}

func (s *Sample) rangeValues(raw any) (any, error) {
	if KindOf(raw) != KindSequence {
		return nil, errTypeMismatch("/", s.kind, raw)
	}
	rv := reflect.ValueOf(raw)
	out := make([]int64, rv.Len())
	for i := range out {
		v := normalizeNumber(rv.Index(i).Interface())
		if fv, ok := v.(float64); ok {
			if n, ok := integralFloat(fv); ok {
				v = n
			}
		}
		n, ok := toInt64Value(v)
		if !ok {
			return nil, errTypeMismatch(indexPath(i), KindInteger, v)
		}
		out[i] = n
	}
	return out, nil
}

func toInt64Value(v any) (int64, bool) {
	if KindOf(v) != KindInteger {
		return 0, false
	}
	return toInt64(reflect.ValueOf(v))
}

// sequenceValue deserializes every element with the first nested item when the
// sample holds Described elements; otherwise raw is returned as is.
func (s *Sample) sequenceValue(raw any) (any, error) {
	if len(s.items) == 0 {
		return raw, nil
	}
	item := s.items[0]
	out := []any{}
	err := eachItem(raw, func(i int, v any) error {
		nv, err := item.Deserialize(v)
		if err != nil {
			return atPath(err, indexPath(i))
		}
		out = append(out, nv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// mappingValue deserializes the entries whose sample value is Described.
// Other entries, and keys missing from raw, are left as they are.
func (s *Sample) mappingValue(raw any) (any, error) {
	if len(s.fields) == 0 {
		return raw, nil
	}
	out := newExampleMap(raw)
	err := eachField(raw, func(k string, v any) error {
		d, ok := s.fields[k]
		if !ok {
			out.set(k, v)
			return nil
		}
		nv, err := d.Deserialize(v)
		if err != nil {
			return atPath(err, fieldPath(k))
		}
		out.set(k, nv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out.value(), nil
}

func (s *Sample) objectValue(raw any) (any, error) {
	if d, ok := asDescribed(s.value); ok {
		return d.Deserialize(raw)
	}
	if s.opts.structDecoding {
		decoded, err := s.decodeStruct(raw)
		if err != nil {
			return nil, err
		}
		raw = decoded
	}
	if reflect.TypeOf(raw) != reflect.TypeOf(s.value) {
		return nil, errTypeMismatch("/", s.kind, raw)
	}
	return raw, nil
}

// decodeStruct decodes a mapping into a fresh value of the sample's struct type.
// Other inputs are returned unchanged for the type check to reject.
func (s *Sample) decodeStruct(raw any) (any, error) {
	t := reflect.TypeOf(s.value)
	if t == nil || KindOf(raw) != KindMapping {
		return raw, nil
	}
	ptr := t.Kind() == reflect.Pointer
	target := t
	if ptr {
		target = t.Elem()
	}
	if target.Kind() != reflect.Struct {
		return raw, nil
	}
	in := map[string]any{}
	_ = eachField(raw, func(k string, v any) error {
		in[k] = v
		return nil
	})
	out := reflect.New(target)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out.Interface(),
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return nil, errParse("/", KindObject, KindMapping, err)
	}
	if err := dec.Decode(in); err != nil {
		return nil, errParse("/", KindObject, KindMapping, err)
	}
	if ptr {
		return out.Interface(), nil
	}
	return out.Elem().Interface(), nil
}
