package inferschema

import (
	"math"
	"reflect"
	"time"

	"cloud.google.com/go/civil"

	"github.com/reoring/inferschema/codec"
	js "github.com/reoring/inferschema/jsonschema"
)

func scalar(typ, format string, example any) *js.Schema {
	return &js.Schema{Type: typ, Format: format, Example: example}
}

func (s *Sample) scalarSchema() (*js.Schema, error) {
	f := s.opts.formats
	switch s.kind {
	case KindInteger:
		return scalar("integer", "int64", s.value), nil
	case KindString:
		return scalar("string", "", s.value), nil
	case KindFloat:
		return scalar("number", "double", s.value), nil
	case KindBoolean:
		return scalar("boolean", "", s.value), nil
	case KindBinary:
		// Raw bytes are not JSON text; the example is base64.
		text, _ := codec.Base64().Encode(reflect.ValueOf(s.value).Bytes())
		return scalar("string", "byte", text), nil
	case KindDate:
		text, _ := codec.Date(f.Date).Encode(s.value.(civil.Date))
		return scalar("string", "date", text), nil
	case KindDateTime:
		text, _ := codec.DateTime(f.DateTime).Encode(dateTimeOf(s.value))
		return scalar("string", "date-time", text), nil
	case KindTime:
		text, _ := codec.Clock(f.Time).Encode(timeOfDayOf(s.value).On(referenceDate))
		return scalar("string", "time", text), nil
	}
	return &js.Schema{Type: "object", Example: s.value}, nil
}

// dateTimeOf returns the sample as an aware time. Naive values are UTC.
func dateTimeOf(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case civil.DateTime:
		return t.In(time.UTC)
	}
	return time.Time{}
}

func timeOfDayOf(v any) TimeOfDay {
	switch t := v.(type) {
	case TimeOfDay:
		return t
	case civil.Time:
		return TimeOfDay{Clock: t}
	}
	return TimeOfDay{}
}

func rangeSchema(r IntRange) *js.Schema {
	vals := r.Values()
	example := make([]any, len(vals))
	for i, v := range vals {
		example[i] = v
	}
	return &js.Schema{
		Type:    "array",
		Items:   &js.Schema{Type: "integer", Format: "int64"},
		Example: example,
	}
}

// convertScalar converts raw to the Go type t of an Integer, Float, Boolean or
// String sample. ok is false when raw does not fit t.
func convertScalar(raw any, t reflect.Type) (any, bool) {
	rv := reflect.ValueOf(raw)
	if rv.Type() == t {
		return raw, true
	}
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := toInt64(rv)
		if !ok || out.OverflowInt(i) {
			return nil, false
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, ok := toUint64(rv)
		if !ok || out.OverflowUint(u) {
			return nil, false
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if out.OverflowFloat(f) {
			return nil, false
		}
		out.SetFloat(f)
	case reflect.Bool:
		out.SetBool(rv.Bool())
	case reflect.String:
		out.SetString(rv.String())
	default:
		return nil, false
	}
	return out.Interface(), true
}

func toInt64(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

func toUint64(rv reflect.Value) (uint64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return 0, false
		}
		return uint64(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	}
	return 0, false
}

// integralFloat reports whether f holds a whole number that fits in int64.
func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
