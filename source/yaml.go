package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"gopkg.in/yaml.v3"

	"github.com/reoring/inferschema"
	"github.com/reoring/inferschema/codec"
)

// Custom local tags understood by YAML.
const (
	TagDate  = "!date"  // civil.Date, "2006-01-02"
	TagTime  = "!time"  // civil.Time, or TimeOfDay when an offset is given
	TagRange = "!range" // IntRange from [start, stop] or [start, stop, step]
)

// YAML decodes the first document of r. Mappings become ordered maps and
// duplicate keys are rejected with *DuplicateKeyError. Besides the core schema
// the following tags are mapped:
//
//	!!binary     -> []byte
//	!!timestamp  -> time.Time, or civil.Date for a bare date
//	!date        -> civil.Date
//	!time        -> civil.Time / inferschema.TimeOfDay
//	!range       -> inferschema.IntRange
//
// An empty stream decodes to nil.
func YAML(r io.Reader) (any, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return nodeValue(&root)
}

// YAMLBytes is YAML over a byte slice.
func YAMLBytes(b []byte) (any, error) { return YAML(bytes.NewReader(b)) }

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		return mappingValue(n)
	case yaml.SequenceNode:
		if n.Tag == TagRange {
			return rangeValue(n)
		}
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, nil
}

func mappingValue(n *yaml.Node) (any, error) {
	m := inferschema.NewOrderedMap()
	first := make(map[string][2]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("source: non-scalar mapping key at %d:%d", k.Line, k.Column)
		}
		key := k.Value
		if pos, dup := first[key]; dup {
			return nil, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
		}
		first[key] = [2]int{k.Line, k.Column}
		val, err := nodeValue(v)
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
	return m, nil
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return i, nil
		}
		return n.Value, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return n.Value, nil
		}
		return f, nil
	case "!!binary":
		b, err := codec.Base64().Decode(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, positioned(n, err)
		}
		return b, nil
	case "!!timestamp":
		if d, err := civil.ParseDate(n.Value); err == nil {
			return d, nil
		}
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, positioned(n, err)
		}
		return t, nil
	case TagDate:
		d, err := civil.ParseDate(n.Value)
		if err != nil {
			return nil, positioned(n, err)
		}
		return d, nil
	case TagTime:
		if t, err := civil.ParseTime(n.Value); err == nil {
			return t, nil
		}
		t, err := codec.Clock(inferschema.TimeFormat).Decode(n.Value)
		if err != nil {
			return nil, positioned(n, err)
		}
		return inferschema.TimeOfDayOf(t), nil
	}
	return n.Value, nil
}

func rangeValue(n *yaml.Node) (any, error) {
	if len(n.Content) < 2 || len(n.Content) > 3 {
		return nil, positioned(n, errors.New("!range needs [start, stop] or [start, stop, step]"))
	}
	bounds := make([]int64, len(n.Content))
	for i, c := range n.Content {
		v, err := strconv.ParseInt(c.Value, 0, 64)
		if err != nil {
			return nil, positioned(c, err)
		}
		bounds[i] = v
	}
	r := inferschema.IntRange{Start: bounds[0], Stop: bounds[1]}
	if len(bounds) == 3 {
		r.Step = bounds[2]
	}
	return r, nil
}

func positioned(n *yaml.Node, err error) error {
	return fmt.Errorf("source: %s at %d:%d: %w", n.Tag, n.Line, n.Column, err)
}
