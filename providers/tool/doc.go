// Package tool provides the typed tool abstraction the agent loop dispatches
// to. A [Tool] binds a name and description to a strongly-typed Go function
// and derives JSON schemas for its input and output via reflection; the
// [GenericTool] interface erases the type parameters so tools can be stored
// in a [Catalog] and invoked with the raw JSON arguments the model produces.
package tool
