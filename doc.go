// Package inferschema describes expected input and output values by example.
//
// A Sample wraps one example value and provides:
//
// - ToSchema: an OpenAPI-style schema object (type, format, example, items,
// properties, required, additionalProperties) derived from the sample's shape
// - Deserialize: conversion of JSON-decoded input back into the sample's
// native representation, validated against the sample's Kind
//
// Nested values that implement Described (including *Sample) are delegated to
// rather than re-derived, so composite samples can mix typed descriptions and
// plain scalars.
//
// Design policy:
// - Keep the engine in the root package; put codecs under codec/, the schema
// model under jsonschema/, sample file readers under source/, the kin-openapi
// bridge under openapi/, settings under config/ and the CLI under
// cmd/inferschema.
// - The engine is synchronous and does no I/O; a Sample is immutable after New
// and safe for concurrent use.
//
// Typical usage:
//
//	s := inferschema.New(map[string]any{
//		"when":  inferschema.New(time.Now()),
//		"count": 3,
//	})
//	sc, err := s.ToSchema()
//	v, err := s.Deserialize(decodedRequestBody)
package inferschema
