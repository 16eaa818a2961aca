package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/reoring/inferschema"
)

// JSON decodes exactly one JSON document from r. Duplicate object keys and
// trailing data are errors.
func JSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	d := &jsonDecoder{dec: dec}
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := d.value(tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.New("source: trailing data after JSON document")
		}
		return nil, err
	}
	return v, nil
}

// JSONBytes is JSON over a byte slice.
func JSONBytes(b []byte) (any, error) { return JSON(bytes.NewReader(b)) }

type jsonDecoder struct {
	dec *json.Decoder
}

func (d *jsonDecoder) next() (json.Token, error) {
	tok, err := d.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d *jsonDecoder) value(tok json.Token) (any, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return d.object()
		case '[':
			return d.array()
		}
		return nil, fmt.Errorf("source: unexpected delimiter %q", v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("source: invalid number %q: %w", v, err)
		}
		return f, nil
	case string, bool, nil:
		return v, nil
	}
	return nil, fmt.Errorf("source: unexpected token %v", tok)
}

func (d *jsonDecoder) object() (any, error) {
	out := inferschema.NewOrderedMap()
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return out, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("source: expected object key, got %v", tok)
		}
		if _, dup := out.Get(key); dup {
			return nil, &DuplicateKeyError{Key: key}
		}
		tok, err = d.next()
		if err != nil {
			return nil, err
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		out.Set(key, v)
	}
}

func (d *jsonDecoder) array() (any, error) {
	out := []any{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return out, nil
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}
