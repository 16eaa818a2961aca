package inferschema

import (
	"reflect"
	"time"

	"cloud.google.com/go/civil"
	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind classifies a sample by its Go type. It is fixed for the lifetime of a
// Sample.
type Kind int

const (
	KindObject   Kind = iota // Unrecognized types, nil and Described values.
	KindInteger              // int*, uint*.
	KindFloat                // float32, float64.
	KindBoolean              // bool.
	KindString               // string.
	KindBinary               // []byte.
	KindDate                 // civil.Date.
	KindDateTime             // time.Time, civil.DateTime.
	KindTime                 // TimeOfDay, civil.Time.
	KindRange                // IntRange.
	KindSequence             // Slices and arrays.
	KindMapping              // Maps with string keys, ordered maps.
)

var kindNames = [...]string{
	KindObject:   "object",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindBoolean:  "boolean",
	KindString:   "string",
	KindBinary:   "binary",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindTime:     "time",
	KindRange:    "range",
	KindSequence: "sequence",
	KindMapping:  "mapping",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// OrderedMap is the insertion-ordered mapping accepted as a Mapping sample.
type OrderedMap = orderedmap.OrderedMap[string, any]

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap { return orderedmap.New[string, any]() }

var (
	typeDate      = reflect.TypeOf(civil.Date{})
	typeDateTime  = reflect.TypeOf(civil.DateTime{})
	typeCivilTime = reflect.TypeOf(civil.Time{})
	typeTime      = reflect.TypeOf(time.Time{})
	typeTimeOfDay = reflect.TypeOf(TimeOfDay{})
	typeRange     = reflect.TypeOf(IntRange{})
	typeOrdered   = reflect.TypeOf((*OrderedMap)(nil))
)

// KindOf classifies v by its Go type. json.Number values are first read as
// int64 or float64.
func KindOf(v any) Kind {
	if v == nil {
		return KindObject
	}
	if _, ok := v.(Described); ok {
		return KindObject
	}
	v = normalizeNumber(v)
	t := reflect.TypeOf(v)
	switch t {
	case typeDate:
		return KindDate
	case typeTime, typeDateTime:
		return KindDateTime
	case typeCivilTime, typeTimeOfDay:
		return KindTime
	case typeRange:
		return KindRange
	case typeOrdered:
		return KindMapping
	}
	switch t.Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindBinary
		}
		return KindSequence
	case reflect.Array:
		return KindSequence
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return KindMapping
		}
	}
	return KindObject
}

// normalizeNumber reads a json.Number as int64 when it is an integer literal
// and as float64 otherwise.
func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return v
}
