package react

import (
	"context"
	"testing"

	"github.com/leofalp/react-agent/patterns/graph"
	"github.com/leofalp/react-agent/providers/ai"
)

func TestExecuteStream_EventsAndResponse(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*ai.ChatResponse{
			{
				FinishReason: "tool_calls",
				ToolCalls:    []ai.ToolCall{toolCall("call_1", "echo", `{"text":"hi"}`)},
			},
			{Content: "all done", FinishReason: "stop"},
		},
	}

	agent, err := New(provider, WithTools(echoTool()))
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}

	stream, err := agent.ExecuteStream(context.Background(), "stream it")
	if err != nil {
		t.Fatalf("unexpected stream start error: %v", err)
	}

	var nodes []string
	var done bool
	for event, err := range stream.Events() {
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		if event.Type == graph.EventNodeStart {
			nodes = append(nodes, event.Node)
		}
		if event.Type == graph.EventDone {
			done = true
		}
	}

	if !done {
		t.Error("stream never reported completion")
	}

	// agent -> tools -> agent
	want := []string{NodeAgent, NodeTools, NodeAgent}
	if len(nodes) != len(want) {
		t.Fatalf("expected node sequence %v, got %v", want, nodes)
	}
	for index := range want {
		if nodes[index] != want[index] {
			t.Fatalf("expected node sequence %v, got %v", want, nodes)
		}
	}

	response, err := stream.Response()
	if err != nil {
		t.Fatalf("unexpected response error: %v", err)
	}
	if response.Content != "all done" {
		t.Errorf("unexpected final content: %q", response.Content)
	}

	// The accumulated transcript ends with the final assistant message.
	messages := stream.Messages()
	last := messages[len(messages)-1]
	if last.Role != ai.RoleAssistant || last.Content != "all done" {
		t.Errorf("unexpected last message: %+v", last)
	}
}

func TestExecuteStream_ResponseBeforeModelCall(t *testing.T) {
	provider := &scriptedProvider{}

	agent, err := New(provider)
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}

	stream, err := agent.ExecuteStream(context.Background(), "not consumed yet")
	if err != nil {
		t.Fatalf("unexpected stream start error: %v", err)
	}

	if _, err := stream.Response(); err == nil {
		t.Error("expected error before any model response")
	}
}
