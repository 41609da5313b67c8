// Package webfetch provides a tool that fetches a web page and converts its
// HTML content to Markdown so the model receives readable text instead of
// raw markup.
package webfetch
