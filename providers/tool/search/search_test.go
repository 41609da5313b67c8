package search

import (
	"context"
	"strings"
	"testing"
)

func TestSearch_CannedResults(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"sf abbreviation", "What is the weather in SF?", ResultFoggy},
		{"full city name", "weather in San Francisco today", ResultFoggy},
		{"mixed case", "WEATHER IN sAn FrAnCiScO", ResultFoggy},
		{"other city", "What is the weather in NYC?", ResultSunny},
		{"empty query", "", ResultSunny},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output, err := Search(context.Background(), Input{Query: tc.query})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Result != tc.want {
				t.Errorf("expected %q, got %q", tc.want, output.Result)
			}
		})
	}
}

func TestNew_ToolContract(t *testing.T) {
	searchTool := New()

	info := searchTool.ToolInfo()
	if info.Name != "search" {
		t.Errorf("unexpected tool name: %q", info.Name)
	}
	if info.Parameters == nil || info.Parameters.Properties["query"] == nil {
		t.Fatalf("query parameter missing from schema: %+v", info.Parameters)
	}

	output, err := searchTool.Call(context.Background(), `{"query":"weather in sf"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "60 degrees") {
		t.Errorf("unexpected output: %s", output)
	}
}
