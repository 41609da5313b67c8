package inmemory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/leofalp/react-agent/providers/ai"
)

func TestArrayMemory_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	store := New()

	store.AppendMessage(ctx, &ai.Message{Role: ai.RoleUser, Content: "first"})
	store.AppendMessage(ctx, &ai.Message{Role: ai.RoleAssistant, Content: "second"})
	store.AppendMessage(ctx, nil) // no-op

	count, _ := store.Count(ctx)
	if count != 2 {
		t.Fatalf("expected 2 messages, got %d", count)
	}

	messages, _ := store.AllMessages(ctx)
	if messages[0].Content != "first" || messages[1].Content != "second" {
		t.Errorf("unexpected order: %+v", messages)
	}

	// Mutating the returned slice must not affect the store.
	messages[0].Content = "mutated"
	fresh, _ := store.AllMessages(ctx)
	if fresh[0].Content != "first" {
		t.Error("returned slice aliases internal state")
	}
}

func TestArrayMemory_LastMessages(t *testing.T) {
	ctx := context.Background()
	store := New()
	for i := range 5 {
		store.AppendMessage(ctx, &ai.Message{Role: ai.RoleUser, Content: fmt.Sprintf("msg-%d", i)})
	}

	last, _ := store.LastMessages(ctx, 2)
	if len(last) != 2 || last[0].Content != "msg-3" || last[1].Content != "msg-4" {
		t.Errorf("unexpected tail: %+v", last)
	}

	all, _ := store.LastMessages(ctx, 100)
	if len(all) != 5 {
		t.Errorf("expected all 5 messages, got %d", len(all))
	}

	none, _ := store.LastMessages(ctx, 0)
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", none)
	}
}

func TestArrayMemory_Clear(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.AppendMessage(ctx, &ai.Message{Role: ai.RoleUser, Content: "gone"})

	store.ClearMessages(ctx)

	count, _ := store.Count(ctx)
	if count != 0 {
		t.Errorf("expected empty store, got %d messages", count)
	}
}

func TestArrayMemory_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.AppendMessage(ctx, &ai.Message{Role: ai.RoleUser, Content: fmt.Sprintf("msg-%d", n)})
		}(i)
	}
	wg.Wait()

	count, _ := store.Count(ctx)
	if count != 50 {
		t.Errorf("expected 50 messages, got %d", count)
	}
}
