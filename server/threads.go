package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leofalp/react-agent/providers/memory/inmemory"
)

// Thread is a single conversation with its own message history.
type Thread struct {
	// ID is the thread's unique identifier.
	ID string

	// CreatedAt is when the thread was created.
	CreatedAt time.Time

	// History stores the thread's messages; runs against the thread read
	// and append to it through the agent's memory hook.
	History *inmemory.ArrayMemory
}

// threadStore keeps all threads in process memory, keyed by thread ID.
type threadStore struct {
	mu      sync.RWMutex
	threads map[string]*Thread
}

func newThreadStore() *threadStore {
	return &threadStore{
		threads: make(map[string]*Thread),
	}
}

// Create registers a new thread. When threadID is empty a random UUID is
// assigned; an already-used ID returns the existing thread, which makes
// thread creation idempotent.
func (store *threadStore) Create(threadID string) *Thread {
	store.mu.Lock()
	defer store.mu.Unlock()

	if threadID == "" {
		threadID = uuid.NewString()
	}

	if existing, exists := store.threads[threadID]; exists {
		return existing
	}

	thread := &Thread{
		ID:        threadID,
		CreatedAt: time.Now().UTC(),
		History:   inmemory.New(),
	}
	store.threads[threadID] = thread
	return thread
}

// Get returns the thread with the given ID, or false when it is unknown.
func (store *threadStore) Get(threadID string) (*Thread, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	thread, exists := store.threads[threadID]
	return thread, exists
}

// Delete removes a thread and reports whether it existed.
func (store *threadStore) Delete(threadID string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, exists := store.threads[threadID]; !exists {
		return false
	}
	delete(store.threads, threadID)
	return true
}
