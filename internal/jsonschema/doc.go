// Package jsonschema derives JSON Schema documents from Go types via
// reflection. The generated schemas describe tool parameters to LLM
// providers, which expect a JSON Schema object for every advertised tool.
//
// Use [Generate] with a type parameter to produce a schema. Field metadata is
// read from `json` tags (names, omitempty) and `jsonschema` tags
// (description, enum values, required markers).
package jsonschema
