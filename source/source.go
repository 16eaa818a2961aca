// Package source reads sample values from JSON and YAML documents.
//
// Objects become insertion-ordered maps (*inferschema.OrderedMap) so that
// derived schemas list properties in document order. JSON numbers become int64
// when they are integer literals and float64 otherwise. YAML tags select the
// richer kinds the engine understands (see YAML).
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/inferschema"
)

// DuplicateKeyError reports a key that appears twice in one object or mapping.
// Line and column are 1-based; they are zero when the decoder cannot report
// positions (JSON).
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("duplicate key %q", e.Key)
	}
	return fmt.Sprintf("duplicate key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// File reads a sample from path. ".yaml" and ".yml" files are read as YAML,
// everything else as JSON.
func File(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML(f)
	default:
		return JSON(f)
	}
}

// Describe wraps v so that every mapping value and sequence element is itself
// a Sample, all the way down. The resulting schema describes each level in
// full instead of using {"type": "object"} placeholders.
func Describe(v any, opts ...inferschema.Option) *inferschema.Sample {
	return inferschema.New(describe(v, opts), opts...)
}

func describe(v any, opts []inferschema.Option) any {
	switch t := v.(type) {
	case *inferschema.OrderedMap:
		out := inferschema.NewOrderedMap()
		for p := t.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, inferschema.New(describe(p.Value, opts), opts...))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = inferschema.New(describe(e, opts), opts...)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = inferschema.New(describe(e, opts), opts...)
		}
		return out
	}
	return v
}
