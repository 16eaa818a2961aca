package inferschema_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/reoring/inferschema"
	js "github.com/reoring/inferschema/jsonschema"
)

func mustSchema(t *testing.T, d inferschema.Described) *js.Schema {
	t.Helper()
	sc, err := d.ToSchema()
	if err != nil {
		t.Fatalf("ToSchema err: %v", err)
	}
	return sc
}

func mustJSON(t *testing.T, d inferschema.Described) string {
	t.Helper()
	b, err := inferschema.SchemaJSON(d)
	if err != nil {
		t.Fatalf("SchemaJSON err: %v", err)
	}
	return string(b)
}

var plus2 = time.FixedZone("", 2*3600)

func TestToSchema_Scalars(t *testing.T) {
	cases := []struct {
		name    string
		sample  any
		typ     string
		format  string
		example any
	}{
		{"int", 42, "integer", "int64", 42},
		{"int64", int64(-7), "integer", "int64", int64(-7)},
		{"uint16", uint16(7), "integer", "int64", uint16(7)},
		{"string", "hello", "string", "", "hello"},
		{"float", 3.25, "number", "double", 3.25},
		{"bool", false, "boolean", "", false},
		{"bytes", []byte("hello"), "string", "byte", "aGVsbG8="},
		{"empty bytes", []byte{}, "string", "byte", ""},
		{"date", civil.Date{Year: 2024, Month: time.January, Day: 2}, "string", "date", "2024-01-02"},
		{"datetime", time.Date(2024, 1, 2, 3, 4, 5, 123456000, plus2), "string", "date-time", "2024-01-02 03:04:05.123456 +0200"},
		{"naive datetime", civil.DateTime{Date: civil.Date{Year: 2024, Month: time.January, Day: 2}, Time: civil.Time{Hour: 3, Minute: 4, Second: 5}}, "string", "date-time", "2024-01-02 03:04:05.000000 +0000"},
		{"time", inferschema.TimeOfDay{Clock: civil.Time{Hour: 12, Minute: 30, Second: 45}, Location: plus2}, "string", "time", "12:30:45.000000 +0200"},
		{"naive time", civil.Time{Hour: 12, Minute: 30, Second: 45, Nanosecond: 500000000}, "string", "time", "12:30:45.500000 +0000"},
		{"naive time of day", inferschema.TimeOfDay{Clock: civil.Time{Hour: 1}}, "string", "time", "01:00:00.000000 +0000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustSchema(t, inferschema.New(tc.sample))
			want := &js.Schema{Type: tc.typ, Format: tc.format, Example: tc.example}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("schema mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeserialize_ExampleRoundtrip(t *testing.T) {
	date := civil.Date{Year: 2024, Month: time.February, Day: 29}
	naive := civil.DateTime{Date: date, Time: civil.Time{Hour: 23, Minute: 59, Second: 58, Nanosecond: 1000}}
	aware := time.Date(2024, 2, 29, 23, 59, 58, 1000, plus2)
	cases := []struct {
		name   string
		sample any
		equal  func(got any) bool
	}{
		{"int", 42, func(got any) bool { return got == 42 }},
		{"string", "hello", func(got any) bool { return got == "hello" }},
		{"float", 3.25, func(got any) bool { return got == 3.25 }},
		{"bool", true, func(got any) bool { return got == true }},
		{"bytes", []byte{0, 1, 2, 0xff}, func(got any) bool { return string(got.([]byte)) == "\x00\x01\x02\xff" }},
		{"date", date, func(got any) bool { return got == date }},
		{"datetime", aware, func(got any) bool { return got.(time.Time).Equal(aware) }},
		{"naive datetime", naive, func(got any) bool { return got.(time.Time).Equal(naive.In(time.UTC)) }},
		{"time", inferschema.TimeOfDay{Clock: civil.Time{Hour: 8, Minute: 1, Second: 2, Nanosecond: 3000}, Location: plus2}, func(got any) bool {
			return got.(inferschema.TimeOfDay).Equal(inferschema.TimeOfDay{Clock: civil.Time{Hour: 8, Minute: 1, Second: 2, Nanosecond: 3000}, Location: plus2})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := inferschema.New(tc.sample)
			sc := mustSchema(t, s)
			got, err := s.Deserialize(sc.Example)
			if err != nil {
				t.Fatalf("Deserialize(%v) err: %v", sc.Example, err)
			}
			if !tc.equal(got) {
				t.Fatalf("roundtrip mismatch: got %#v from %v", got, sc.Example)
			}
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	samples := []any{
		civil.Date{Year: 1999, Month: time.December, Day: 31},
		time.Date(2030, 7, 1, 0, 0, 0, 999999000, time.FixedZone("", -3*3600-1800)),
		civil.DateTime{Date: civil.Date{Year: 2001, Month: time.March, Day: 4}, Time: civil.Time{Hour: 5}},
		inferschema.TimeOfDay{Clock: civil.Time{Hour: 23, Minute: 59, Second: 59}, Location: plus2},
		civil.Time{Hour: 6, Minute: 7},
	}
	for _, sample := range samples {
		s := inferschema.New(sample)
		first := mustSchema(t, s).Example.(string)
		v, err := s.Deserialize(first)
		if err != nil {
			t.Fatalf("Deserialize(%q) err: %v", first, err)
		}
		second := mustSchema(t, inferschema.New(v)).Example.(string)
		if first != second {
			t.Fatalf("format not idempotent: %q != %q", first, second)
		}
	}
}

func TestDeserialize_BinaryRoundtrip(t *testing.T) {
	for _, b := range [][]byte{{}, {0}, []byte("any carnal pleas"), make([]byte, 257)} {
		s := inferschema.New([]byte("sample"))
		text := mustSchema(t, inferschema.New(b)).Example
		got, err := s.Deserialize(text)
		if err != nil {
			t.Fatalf("Deserialize err: %v", err)
		}
		if diff := cmp.Diff(b, got.([]byte)); diff != "" {
			t.Fatalf("bytes mismatch (-want +got):\n%s", diff)
		}
	}
	if _, err := inferschema.New([]byte{1}).Deserialize("%%%"); !errors.Is(err, inferschema.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestToSchema_Arrays(t *testing.T) {
	if got := mustJSON(t, inferschema.New([]int{1, 2, 3})); got != `{"type":"array","example":[1,2,3],"items":{"type":"object"}}` {
		t.Fatalf("unexpected schema: %s", got)
	}
	if got := mustJSON(t, inferschema.New([]any{})); got != `{"type":"array","example":[],"items":{"type":"object"}}` {
		t.Fatalf("unexpected empty schema: %s", got)
	}
	if got := mustJSON(t, inferschema.New([]string(nil))); got != `{"type":"array","example":[],"items":{"type":"object"}}` {
		t.Fatalf("unexpected nil-slice schema: %s", got)
	}
	if got := mustJSON(t, inferschema.New([2]bool{true, false})); got != `{"type":"array","example":[true,false],"items":{"type":"object"}}` {
		t.Fatalf("unexpected array schema: %s", got)
	}

	_, err := inferschema.New([]any{1, "a"}).ToSchema()
	if !errors.Is(err, inferschema.ErrMixedType) {
		t.Fatalf("expected ErrMixedType, got %v", err)
	}
	if e, ok := inferschema.AsError(err); !ok || e.Path != "/1" {
		t.Fatalf("expected mismatch at /1, got %v", err)
	}
	if !strings.Contains(err.Error(), "heterogeneous arrays") {
		t.Fatalf("unexpected message: %v", err)
	}
	// Exact types: int and int64 do not mix.
	if _, err := inferschema.New([]any{1, int64(1)}).ToSchema(); !errors.Is(err, inferschema.ErrMixedType) {
		t.Fatalf("expected ErrMixedType for int/int64, got %v", err)
	}
}

func TestToSchema_ArrayOfDescribed(t *testing.T) {
	s := inferschema.New([]any{inferschema.New(5), inferschema.New(6)})
	got := mustSchema(t, s)
	want := &js.Schema{
		Type:    "array",
		Items:   &js.Schema{Type: "integer", Format: "int64", Example: 5},
		Example: []any{5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
	if n := len(s.NestedItems()); n != 2 {
		t.Fatalf("expected 2 nested items, got %d", n)
	}
}

func TestToSchema_NestedObject(t *testing.T) {
	date := civil.Date{Year: 2024, Month: time.January, Day: 2}
	nested := inferschema.New(date)
	s := inferschema.New(map[string]any{"x": nested, "y": 5})
	got := mustSchema(t, s)
	want := &js.Schema{
		Type:     "object",
		Required: []string{"x", "y"},
		Properties: map[string]*js.Schema{
			"x": mustSchema(t, nested),
			"y": {Type: "object"},
		},
		Example: map[string]any{"x": "2024-01-02", "y": 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
	if _, ok := s.NestedFields()["x"]; !ok || len(s.NestedFields()) != 1 {
		t.Fatalf("expected only x in nested fields, got %v", s.NestedFields())
	}
}

func TestToSchema_FlatObject(t *testing.T) {
	got := mustJSON(t, inferschema.New(map[string]int{"a": 1, "b": 2}))
	want := `{"type":"object","example":{"a":1,"b":2},"additionalProperties":{"type":"object"}}`
	if got != want {
		t.Fatalf("unexpected schema:\n got %s\nwant %s", got, want)
	}
	sc := mustSchema(t, inferschema.New(map[string]any{}))
	if sc.Properties != nil || sc.Required != nil || sc.AdditionalProperties == nil {
		t.Fatalf("empty mapping should use the opaque shape: %+v", sc)
	}
}

func TestToSchema_OrderedMappingKeepsOrder(t *testing.T) {
	om := inferschema.NewOrderedMap()
	om.Set("zeta", inferschema.New(true))
	om.Set("alpha", 1)
	sc := mustSchema(t, inferschema.New(om))
	if diff := cmp.Diff([]string{"zeta", "alpha"}, sc.Required); diff != "" {
		t.Fatalf("required order (-want +got):\n%s", diff)
	}
	ex, err := json.Marshal(sc.Example)
	if err != nil {
		t.Fatalf("marshal example: %v", err)
	}
	if string(ex) != `{"zeta":true,"alpha":1}` {
		t.Fatalf("unexpected example order: %s", ex)
	}
}

func TestToSchema_DeeplyNested(t *testing.T) {
	inner := inferschema.New(map[string]any{"id": inferschema.New(7)})
	outer := inferschema.New(map[string]any{"list": inferschema.New([]any{inner})})
	got := mustJSON(t, outer)
	want := `{"type":"object","example":{"list":[{"id":7}]},"properties":{"list":{"type":"array","example":[{"id":7}],"items":{"type":"object","example":{"id":7},"properties":{"id":{"type":"integer","format":"int64","example":7}},"required":["id"]}}},"required":["list"]}`
	if got != want {
		t.Fatalf("unexpected schema:\n got %s\nwant %s", got, want)
	}
}

func TestToSchema_NestedErrorPath(t *testing.T) {
	s := inferschema.New(map[string]any{"a/b": inferschema.New([]any{1, 2.5})})
	_, err := s.ToSchema()
	e, ok := inferschema.AsError(err)
	if !ok || e.Code != inferschema.CodeMixedType {
		t.Fatalf("expected mixed_type, got %v", err)
	}
	if e.Path != "/properties/a~1b/1" {
		t.Fatalf("unexpected path %q", e.Path)
	}
}

func TestToSchema_Idempotent(t *testing.T) {
	s := inferschema.New(map[string]any{
		"b": inferschema.New([]byte("x")),
		"a": []int{1},
		"c": inferschema.New(inferschema.IntRange{Stop: 2}),
	})
	if first, second := mustJSON(t, s), mustJSON(t, s); first != second {
		t.Fatalf("repeated ToSchema differs:\n%s\n%s", first, second)
	}
}

func TestToSchema_Range(t *testing.T) {
	got := mustJSON(t, inferschema.New(inferschema.IntRange{Start: 0, Stop: 3}))
	if got != `{"type":"array","example":[0,1,2],"items":{"type":"integer","format":"int64"}}` {
		t.Fatalf("unexpected schema: %s", got)
	}
	got = mustJSON(t, inferschema.New(inferschema.IntRange{Start: 5, Stop: 5}))
	if got != `{"type":"array","example":[],"items":{"type":"integer","format":"int64"}}` {
		t.Fatalf("unexpected empty range schema: %s", got)
	}
}

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestToSchema_Unrecognized(t *testing.T) {
	got := mustJSON(t, inferschema.New(point{X: 1, Y: 2}))
	if got != `{"type":"object","example":{"x":1,"y":2}}` {
		t.Fatalf("unexpected schema: %s", got)
	}
}

func TestToSchema_NilSample(t *testing.T) {
	_, err := inferschema.New(nil).ToSchema()
	if !errors.Is(err, inferschema.ErrInvalidSample) {
		t.Fatalf("expected ErrInvalidSample, got %v", err)
	}
}

func TestToSchema_NotSerializable(t *testing.T) {
	_, err := inferschema.New(map[string]any{"c": make(chan int)}).ToSchema()
	if !errors.Is(err, inferschema.ErrSchemaNotSerializable) {
		t.Fatalf("expected ErrSchemaNotSerializable, got %v", err)
	}
	e, _ := inferschema.AsError(err)
	if e.Cause == nil || !strings.Contains(e.Message, e.Cause.Error()) {
		t.Fatalf("expected encoder message embedded, got %q", e.Message)
	}
}

func TestToSchema_CustomFormats(t *testing.T) {
	date := civil.Date{Year: 2024, Month: time.March, Day: 5}
	s := inferschema.New(date, inferschema.WithFormats(inferschema.Formats{Date: "02/01/2006"}))
	if ex := mustSchema(t, s).Example; ex != "05/03/2024" {
		t.Fatalf("unexpected example %v", ex)
	}
	if got := s.Formats().DateTime; got != inferschema.DateTimeFormat {
		t.Fatalf("empty layouts should default, got %q", got)
	}
	got, err := s.Deserialize("05/03/2024")
	if err != nil || got != date {
		t.Fatalf("Deserialize: %v, %v", got, err)
	}
	if _, err := s.Deserialize("2024-03-05"); !errors.Is(err, inferschema.ErrParse) {
		t.Fatalf("expected ErrParse for default layout, got %v", err)
	}
}

func TestToSchema_ArrayOfStructuredObjects(t *testing.T) {
	line := inferschema.New(map[string]any{"sku": inferschema.New("A"), "qty": inferschema.New(1)})
	order := inferschema.New(map[string]any{
		"lines": inferschema.New([]any{line}),
		"meta":  inferschema.New(map[string]any{"tags": inferschema.New([]any{inferschema.New(map[string]any{"k": inferschema.New(true)})})}),
	})
	got := mustJSON(t, order)
	var decoded map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("schema is not JSON: %v\n%s", err, got)
	}
	items := decoded["properties"].(map[string]any)["lines"].(map[string]any)["items"].(map[string]any)
	if diff := cmp.Diff([]any{"qty", "sku"}, items["required"]); diff != "" {
		t.Fatalf("item required (-want +got):\n%s", diff)
	}
}

// exploding fails inside the encoder.
type exploding struct{}

func (exploding) MarshalJSON() ([]byte, error) { panic("boom") }

func TestToSchema_EncoderPanicIsNotSerializable(t *testing.T) {
	_, err := inferschema.New(map[string]any{"x": exploding{}}).ToSchema()
	if !errors.Is(err, inferschema.ErrSchemaNotSerializable) {
		t.Fatalf("expected ErrSchemaNotSerializable, got %v", err)
	}
}

func TestToSchema_OrderedPropertiesFollowRequired(t *testing.T) {
	om := inferschema.NewOrderedMap()
	om.Set("zeta", inferschema.New(true))
	om.Set("alpha", inferschema.New(1))
	got := mustJSON(t, inferschema.New(om))
	want := `{"type":"object","example":{"zeta":true,"alpha":1},"properties":{"zeta":{"type":"boolean","example":true},"alpha":{"type":"integer","format":"int64","example":1}},"required":["zeta","alpha"]}`
	if got != want {
		t.Fatalf("unexpected schema:\n got %s\nwant %s", got, want)
	}
}
