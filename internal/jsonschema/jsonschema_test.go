package jsonschema

import (
	"encoding/json"
	"testing"
)

type calcInput struct {
	A  float64 `json:"A"  jsonschema:"description=First operand,required"`
	B  float64 `json:"B"  jsonschema:"description=Second operand,required"`
	Op string  `json:"Op" jsonschema:"description=Operation type,enum=add,enum=sub,required"`
}

func TestGenerate_Struct(t *testing.T) {
	schema := Generate[calcInput]()

	if schema.Type != "object" {
		t.Fatalf("expected object schema, got %q", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(schema.Properties))
	}

	a, ok := schema.Properties["A"]
	if !ok {
		t.Fatal("property A missing")
	}
	if a.Type != "number" {
		t.Errorf("expected A to be number, got %q", a.Type)
	}
	if a.Description != "First operand" {
		t.Errorf("unexpected description: %q", a.Description)
	}

	op := schema.Properties["Op"]
	if op == nil {
		t.Fatal("property Op missing")
	}
	if len(op.Enum) != 2 || op.Enum[0] != "add" || op.Enum[1] != "sub" {
		t.Errorf("unexpected enum values: %v", op.Enum)
	}

	if len(schema.Required) != 3 {
		t.Errorf("expected all fields required, got %v", schema.Required)
	}
}

func TestGenerate_OmitEmptyIsOptional(t *testing.T) {
	type input struct {
		Query string `json:"query"`
		Limit int    `json:"limit,omitempty"`
	}

	schema := Generate[input]()

	if len(schema.Required) != 1 || schema.Required[0] != "query" {
		t.Errorf("expected only query required, got %v", schema.Required)
	}
	if schema.Properties["limit"].Type != "integer" {
		t.Errorf("expected limit to be integer, got %q", schema.Properties["limit"].Type)
	}
}

func TestGenerate_SkipsUnexportedAndDashed(t *testing.T) {
	type input struct {
		Visible string `json:"visible"`
		Hidden  string `json:"-"`
		secret  string //nolint:unused
	}

	schema := Generate[input]()

	if len(schema.Properties) != 1 {
		t.Fatalf("expected 1 property, got %d: %v", len(schema.Properties), schema.Properties)
	}
	if _, ok := schema.Properties["visible"]; !ok {
		t.Error("visible property missing")
	}
}

func TestGenerate_NestedAndCollections(t *testing.T) {
	type inner struct {
		Name string `json:"name"`
	}
	type outer struct {
		Items []inner           `json:"items"`
		Meta  map[string]string `json:"meta,omitempty"`
		Child *inner            `json:"child,omitempty"`
	}

	schema := Generate[outer]()

	items := schema.Properties["items"]
	if items.Type != "array" || items.Items == nil || items.Items.Type != "object" {
		t.Errorf("unexpected items schema: %+v", items)
	}
	if schema.Properties["meta"].Type != "object" {
		t.Errorf("expected meta to be object, got %q", schema.Properties["meta"].Type)
	}
	if schema.Properties["child"].Type != "object" {
		t.Errorf("expected pointer to dereference to object, got %q", schema.Properties["child"].Type)
	}
}

type recursive struct {
	Name     string       `json:"name"`
	Children []*recursive `json:"children,omitempty"`
}

func TestGenerate_RecursiveTypeTerminates(t *testing.T) {
	schema := Generate[recursive]()

	children := schema.Properties["children"]
	if children == nil || children.Type != "array" {
		t.Fatalf("unexpected children schema: %+v", children)
	}
	// The nested reference must be cut off rather than recursing forever.
	if children.Items == nil || children.Items.Type != "object" {
		t.Errorf("expected recursion cutoff object, got %+v", children.Items)
	}
}

func TestSchema_MarshalOmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(&Schema{Type: "string"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"type":"string"}` {
		t.Errorf("unexpected JSON: %s", raw)
	}
}
