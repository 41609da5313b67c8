// Package parse converts LLM-produced strings into Go values. Models do not
// always emit strictly valid JSON for tool arguments or structured outputs,
// so complex types get a repair-and-retry pass (via jsonrepair) before the
// parse is declared failed.
package parse
