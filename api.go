package inferschema

import (
	"fmt"

	json "github.com/goccy/go-json"

	js "github.com/reoring/inferschema/jsonschema"
)

// Described is implemented by values that can describe themselves as a schema
// and convert JSON-decoded input into their native form. A Mapping or Sequence
// sample delegates to the Described values it contains.
type Described interface {
	// Kind reports the classification that drives ToSchema and Deserialize.
	Kind() Kind
	// ToSchema derives a fresh schema on every call.
	ToSchema() (*js.Schema, error)
	// Deserialize converts raw (text, number, boolean, nil, sequence or
	// mapping) into the native representation, or fails with *Error.
	Deserialize(raw any) (any, error)
}

// Is returns true if raw deserializes against d.
func Is(d Described, raw any) bool {
	_, err := d.Deserialize(raw)
	return err == nil
}

// SchemaJSON derives d's schema and encodes it.
func SchemaJSON(d Described) ([]byte, error) {
	sc, err := d.ToSchema()
	if err != nil {
		return nil, err
	}
	return json.Marshal(sc)
}

// ensureSerializable round-trips the schema through the JSON encoder. Encoder
// panics are reported like encoder errors.
func ensureSerializable(sc *js.Schema) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errNotSerializable(fmt.Errorf("encoder panic: %v", r))
		}
	}()
	data, err := json.Marshal(sc)
	if err != nil {
		return errNotSerializable(err)
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return errNotSerializable(err)
	}
	return nil
}
