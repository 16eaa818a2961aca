// Package openapi converts derived schemas into kin-openapi schemas so they
// can be embedded in OpenAPI documents and checked with kin-openapi's
// validator.
package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/reoring/inferschema"
	js "github.com/reoring/inferschema/jsonschema"
)

// FromDescribed derives d's schema and converts it.
func FromDescribed(d inferschema.Described) (*openapi3.Schema, error) {
	sc, err := d.ToSchema()
	if err != nil {
		return nil, err
	}
	return Convert(sc), nil
}

// Convert maps a derived schema onto openapi3.Schema one field at a time.
func Convert(sc *js.Schema) *openapi3.Schema {
	return convert(sc, false)
}

// convert builds the kin-openapi schema. In loose mode {"type": "object"}
// placeholders accept any value and formats are dropped, so that examples
// rendered with configurable layouts can be checked structurally.
func convert(sc *js.Schema, loose bool) *openapi3.Schema {
	if sc == nil {
		return nil
	}
	if loose && isPlaceholder(sc) {
		return &openapi3.Schema{}
	}
	out := &openapi3.Schema{
		Type:     &openapi3.Types{sc.Type},
		Example:  sc.Example,
		Required: sc.Required,
	}
	if !loose {
		out.Format = sc.Format
	}
	if sc.Items != nil {
		out.Items = openapi3.NewSchemaRef("", convert(sc.Items, loose))
	}
	if len(sc.Properties) > 0 {
		out.Properties = make(openapi3.Schemas, len(sc.Properties))
		for k, p := range sc.Properties {
			out.Properties[k] = openapi3.NewSchemaRef("", convert(p, loose))
		}
	}
	if sc.AdditionalProperties != nil {
		out.AdditionalProperties = openapi3.AdditionalProperties{
			Schema: openapi3.NewSchemaRef("", convert(sc.AdditionalProperties, loose)),
		}
	}
	return out
}

func isPlaceholder(sc *js.Schema) bool {
	return sc.Type == "object" && sc.Example == nil && sc.Items == nil &&
		sc.Properties == nil && sc.AdditionalProperties == nil
}

// Validate checks that d's schema is a well-formed OpenAPI schema. Examples
// are not validated here; see VisitExample.
func Validate(ctx context.Context, d inferschema.Described) error {
	s, err := FromDescribed(d)
	if err != nil {
		return err
	}
	if err := s.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("openapi: invalid schema: %w", err)
	}
	return nil
}

// VisitExample checks the derived example against the schema's structure:
// types, required properties and item shapes. Formats are not checked.
func VisitExample(d inferschema.Described) error {
	sc, err := d.ToSchema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(sc.Example)
	if err != nil {
		return err
	}
	var example any
	if err := json.Unmarshal(data, &example); err != nil {
		return err
	}
	if err := convert(sc, true).VisitJSON(example, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("openapi: example does not match schema: %w", err)
	}
	return nil
}

// Document wraps d's schema as the named component of a minimal OpenAPI 3
// document.
func Document(name string, d inferschema.Described) (*openapi3.T, error) {
	s, err := FromDescribed(d)
	if err != nil {
		return nil, err
	}
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: name, Version: "1.0.0"},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{name: openapi3.NewSchemaRef("", s)},
		},
	}, nil
}
