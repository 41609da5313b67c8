package graph

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leofalp/react-agent/providers/ai"
)

// countingNode returns a NodeFunc that increments a counter in state.
func countingNode(key string) NodeFunc {
	return func(_ context.Context, state *State) error {
		count := 0
		if value, ok := state.Get(key); ok {
			count = value.(int)
		}
		state.Set(key, count+1)
		return nil
	}
}

func TestBuilder_Validation(t *testing.T) {
	noop := func(_ context.Context, _ *State) error { return nil }

	tests := []struct {
		name    string
		build   func() (*Graph, error)
		wantErr string
	}{
		{
			name: "empty node ID",
			build: func() (*Graph, error) {
				return NewBuilder().AddNode("", noop).SetEntryPoint("a").Build()
			},
			wantErr: "node ID must not be empty",
		},
		{
			name: "reserved node ID",
			build: func() (*Graph, error) {
				return NewBuilder().AddNode(End, noop).SetEntryPoint(End).Build()
			},
			wantErr: "reserved",
		},
		{
			name: "nil function",
			build: func() (*Graph, error) {
				return NewBuilder().AddNode("a", nil).SetEntryPoint("a").Build()
			},
			wantErr: "function must not be nil",
		},
		{
			name: "duplicate node ID",
			build: func() (*Graph, error) {
				return NewBuilder().AddNode("a", noop).AddNode("a", noop).SetEntryPoint("a").Build()
			},
			wantErr: "duplicate node ID",
		},
		{
			name: "no nodes",
			build: func() (*Graph, error) {
				return NewBuilder().Build()
			},
			wantErr: "at least one node",
		},
		{
			name: "unknown edge target",
			build: func() (*Graph, error) {
				return NewBuilder().AddNode("a", noop).AddEdge("a", "missing").SetEntryPoint("a").Build()
			},
			wantErr: "non-existent target",
		},
		{
			name: "unknown edge source",
			build: func() (*Graph, error) {
				return NewBuilder().AddNode("a", noop).AddEdge("missing", "a").SetEntryPoint("a").Build()
			},
			wantErr: "non-existent source",
		},
		{
			name: "missing entry point",
			build: func() (*Graph, error) {
				return NewBuilder().AddNode("a", noop).Build()
			},
			wantErr: "entry point must be set",
		},
		{
			name: "unknown entry point",
			build: func() (*Graph, error) {
				return NewBuilder().AddNode("a", noop).SetEntryPoint("missing").Build()
			},
			wantErr: "does not exist",
		},
		{
			name: "double outgoing route",
			build: func() (*Graph, error) {
				return NewBuilder().
					AddNode("a", noop).
					AddNode("b", noop).
					AddEdge("a", "b").
					AddConditionalEdge("a", func(_ context.Context, _ *State) string { return End }).
					SetEntryPoint("a").
					Build()
			},
			wantErr: "already has an outgoing edge",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := testCase.build()
			if err == nil {
				t.Fatal("expected build error, got nil")
			}
			if !strings.Contains(err.Error(), testCase.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), testCase.wantErr)
			}
		})
	}
}

func TestGraph_LinearExecution(t *testing.T) {
	var order []string
	record := func(name string) NodeFunc {
		return func(_ context.Context, _ *State) error {
			order = append(order, name)
			return nil
		}
	}

	agentGraph, err := NewBuilder().
		AddNode("first", record("first")).
		AddNode("second", record("second")).
		AddNode("third", record("third")).
		AddEdge("first", "second").
		AddEdge("second", "third").
		AddEdge("third", End).
		SetEntryPoint("first").
		Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	if _, err := agentGraph.Execute(context.Background(), NewState()); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}

	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Errorf("unexpected execution order: %v", order)
	}
}

func TestGraph_ImplicitEnd(t *testing.T) {
	// A node with no outgoing route terminates the run.
	agentGraph, err := NewBuilder().
		AddNode("only", countingNode("runs")).
		SetEntryPoint("only").
		Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	state, err := agentGraph.Execute(context.Background(), NewState())
	if err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}

	runs, _ := state.Get("runs")
	if runs != 1 {
		t.Errorf("expected node to run once, got %v", runs)
	}
}

func TestGraph_ConditionalLoop(t *testing.T) {
	agentGraph, err := NewBuilder().
		AddNode("work", countingNode("iterations")).
		AddConditionalEdge("work", func(_ context.Context, state *State) string {
			if count, _ := state.Get("iterations"); count.(int) >= 3 {
				return End
			}
			return "work"
		}).
		SetEntryPoint("work").
		Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	state, err := agentGraph.Execute(context.Background(), NewState())
	if err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}

	iterations, _ := state.Get("iterations")
	if iterations != 3 {
		t.Errorf("expected 3 iterations, got %v", iterations)
	}
}

func TestGraph_MaxStepsExceeded(t *testing.T) {
	agentGraph, err := NewBuilder(WithMaxSteps(5)).
		AddNode("loop", countingNode("iterations")).
		AddEdge("loop", "loop").
		SetEntryPoint("loop").
		Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	_, err = agentGraph.Execute(context.Background(), NewState())
	if !errors.Is(err, ErrMaxStepsExceeded) {
		t.Errorf("expected ErrMaxStepsExceeded, got %v", err)
	}
}

func TestGraph_NodeError(t *testing.T) {
	boom := errors.New("boom")
	agentGraph, err := NewBuilder().
		AddNode("fail", func(_ context.Context, _ *State) error { return boom }).
		SetEntryPoint("fail").
		Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	_, err = agentGraph.Execute(context.Background(), NewState())
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped node error, got %v", err)
	}
	if !strings.Contains(err.Error(), `node "fail"`) {
		t.Errorf("error should name the failing node: %v", err)
	}
}

func TestGraph_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	agentGraph, err := NewBuilder().
		AddNode("first", func(_ context.Context, _ *State) error {
			cancel() // cancel mid-run; the next step must not execute
			return nil
		}).
		AddNode("second", countingNode("second_runs")).
		AddEdge("first", "second").
		SetEntryPoint("first").
		Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	state := NewState()
	_, err = agentGraph.Execute(ctx, state)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, ran := state.Get("second_runs"); ran {
		t.Error("second node ran after cancellation")
	}
}

func TestGraph_NilStateDefaults(t *testing.T) {
	agentGraph, err := NewBuilder().
		AddNode("seed", func(_ context.Context, state *State) error {
			state.AppendMessages(ai.Message{Role: ai.RoleAssistant, Content: "hello"})
			return nil
		}).
		SetEntryPoint("seed").
		Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	state, err := agentGraph.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	if state == nil || state.MessageCount() != 1 {
		t.Errorf("expected fresh state with one message, got %+v", state)
	}
}
