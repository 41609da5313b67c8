// Package server implements the development HTTP server that exposes
// registered agent graphs over a small JSON API: health and info probes,
// assistant discovery, and thread endpoints for running conversations with
// persistent per-thread history.
//
// Graphs are declared in a JSON manifest (reactagent.json) and registered
// on the [Server] with [Server.RegisterGraph]; each registered graph is
// surfaced as one assistant.
package server
