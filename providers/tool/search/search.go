package search

import (
	"context"
	"strings"

	"github.com/leofalp/react-agent/providers/tool"
)

// Canned results returned by [Search]. Queries mentioning San Francisco get
// the foggy answer; everything else is sunny.
const (
	ResultFoggy = "It's 60 degrees and foggy."
	ResultSunny = "It's 90 degrees and sunny."
)

// New returns a [tool.Tool] that performs the demo search.
//
// Example:
//
//	searchTool := search.New()
//	agent, _ := react.New(provider, react.WithTools(searchTool))
func New() *tool.Tool[Input, Output] {
	return tool.New(
		"search",
		Search,
		tool.WithDescription("Search for information. Returns the search result for the given query."),
	)
}

// Search returns a canned result for the query. Matching is case-insensitive
// and recognizes both the "sf" abbreviation and the full city name.
func Search(_ context.Context, req Input) (Output, error) {
	query := strings.ToLower(req.Query)
	if strings.Contains(query, "sf") || strings.Contains(query, "san francisco") {
		return Output{Result: ResultFoggy}, nil
	}
	return Output{Result: ResultSunny}, nil
}

// Input holds the search query.
type Input struct {
	Query string `json:"query" jsonschema:"description=The search query to look up,required"`
}

// Output carries the search result text.
type Output struct {
	Result string `json:"result" jsonschema:"description=The search result"`
}
