package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args uses default", args: nil, want: DefaultQuery},
		{name: "empty slice uses default", args: []string{}, want: DefaultQuery},
		{name: "single arg forwarded verbatim", args: []string{"what time is it?"}, want: "what time is it?"},
		{name: "multiple args joined", args: []string{"weather", "in", "Rome"}, want: "weather in Rome"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := queryFromArgs(testCase.args); got != testCase.want {
				t.Errorf("expected %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestRun_AgainstStubAPI(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5",
			"content": [{"type": "text", "text": "sunny"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 1, "output_tokens": 1}
		}`)
	}))
	defer stub.Close()

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_API_BASE_URL", stub.URL)
	t.Setenv("REACT_AGENT_MODEL", "")

	if err := run([]string{"weather", "in", "Rome"}); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
}

func TestRun_MissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("REACT_AGENT_MODEL", "")

	if err := run(nil); err == nil {
		t.Fatal("expected error when no API key is configured")
	}
}
