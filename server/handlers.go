package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/observability"
)

/*
	WIRE TYPES
*/

type okResponse struct {
	OK bool `json:"ok"`
}

type infoResponse struct {
	Version string   `json:"version"`
	Graphs  []string `json:"graphs"`
}

type assistantsSearchRequest struct {
	GraphID string `json:"graph_id,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

type createThreadRequest struct {
	ThreadID string `json:"thread_id,omitempty"`
}

type threadResponse struct {
	ThreadID  string    `json:"thread_id"`
	CreatedAt time.Time `json:"created_at"`
}

type threadStateResponse struct {
	Values stateValues `json:"values"`
}

type stateValues struct {
	Messages []ai.Message `json:"messages"`
}

type runRequest struct {
	AssistantID string   `json:"assistant_id"`
	Input       runInput `json:"input"`
}

type runInput struct {
	Messages []inputMessage `json:"messages"`
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type runResponse struct {
	RunID    string      `json:"run_id"`
	ThreadID string      `json:"thread_id"`
	Status   string      `json:"status"`
	Values   stateValues `json:"values"`
}

type errorResponse struct {
	Error string `json:"error"`
}

/*
	HANDLERS
*/

func (s *Server) handleOK(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, infoResponse{
		Version: Version,
		Graphs:  s.graphIDs(),
	})
}

func (s *Server) handleAssistantsSearch(w http.ResponseWriter, r *http.Request) {
	var request assistantsSearchRequest
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.RLock()
	matched := make([]Assistant, 0, len(s.assistants))
	for _, assistant := range s.assistants {
		if request.GraphID == "" || assistant.GraphID == request.GraphID {
			matched = append(matched, assistant)
		}
	}
	s.mu.RUnlock()

	if request.Offset > 0 {
		if request.Offset >= len(matched) {
			matched = matched[:0]
		} else {
			matched = matched[request.Offset:]
		}
	}
	if request.Limit > 0 && request.Limit < len(matched) {
		matched = matched[:request.Limit]
	}

	respondJSON(w, http.StatusOK, matched)
}

func (s *Server) handleCreateThread(w http.ResponseWriter, r *http.Request) {
	var request createThreadRequest
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	thread := s.threads.Create(request.ThreadID)
	respondJSON(w, http.StatusOK, threadResponse{
		ThreadID:  thread.ID,
		CreatedAt: thread.CreatedAt,
	})
}

func (s *Server) handleGetThread(w http.ResponseWriter, r *http.Request) {
	thread, exists := s.threads.Get(chi.URLParam(r, "threadID"))
	if !exists {
		respondError(w, http.StatusNotFound, fmt.Errorf("thread not found"))
		return
	}

	respondJSON(w, http.StatusOK, threadResponse{
		ThreadID:  thread.ID,
		CreatedAt: thread.CreatedAt,
	})
}

func (s *Server) handleDeleteThread(w http.ResponseWriter, r *http.Request) {
	if !s.threads.Delete(chi.URLParam(r, "threadID")) {
		respondError(w, http.StatusNotFound, fmt.Errorf("thread not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleThreadState(w http.ResponseWriter, r *http.Request) {
	thread, exists := s.threads.Get(chi.URLParam(r, "threadID"))
	if !exists {
		respondError(w, http.StatusNotFound, fmt.Errorf("thread not found"))
		return
	}

	messages, err := thread.History.AllMessages(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, threadStateResponse{
		Values: stateValues{Messages: messages},
	})
}

func (s *Server) handleRunWait(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	threadID := chi.URLParam(r, "threadID")

	thread, exists := s.threads.Get(threadID)
	if !exists {
		respondError(w, http.StatusNotFound, fmt.Errorf("thread not found"))
		return
	}

	var request runRequest
	if err := decodeJSON(r, &request); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if request.AssistantID == "" {
		respondError(w, http.StatusBadRequest, fmt.Errorf("assistant_id is required"))
		return
	}
	if len(request.Input.Messages) == 0 {
		respondError(w, http.StatusBadRequest, fmt.Errorf("input.messages must not be empty"))
		return
	}

	assistant, factory, found := s.resolveAssistant(request.AssistantID)
	if !found {
		respondError(w, http.StatusNotFound, fmt.Errorf("unknown assistant %q", request.AssistantID))
		return
	}

	prompt, err := preparePrompt(r, thread, request.Input.Messages)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	agent, err := factory(ctx, thread.History)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Errorf("building agent: %w", err))
		return
	}

	runID := uuid.NewString()
	if s.observer != nil {
		s.observer.Info("run starting",
			observability.String(observability.AttrRunID, runID),
			observability.String(observability.AttrThreadID, threadID),
			observability.String(observability.AttrAssistantGraphID, assistant.GraphID),
		)
	}

	if _, err := agent.Execute(ctx, prompt); err != nil {
		if s.observer != nil {
			s.observer.Error("run failed",
				observability.String(observability.AttrRunID, runID),
				observability.Error(err),
			)
		}
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	messages, err := thread.History.AllMessages(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, runResponse{
		RunID:    runID,
		ThreadID: threadID,
		Status:   "success",
		Values:   stateValues{Messages: messages},
	})
}

// preparePrompt extracts the prompt from the input messages. The final
// message must come from the user; any earlier messages are appended to the
// thread history as provided context.
func preparePrompt(r *http.Request, thread *Thread, messages []inputMessage) (string, error) {
	last := messages[len(messages)-1]
	if role := normalizeRole(last.Role); role != ai.RoleUser {
		return "", fmt.Errorf("last input message must have role \"user\" or \"human\", got %q", last.Role)
	}
	if last.Content == "" {
		return "", fmt.Errorf("last input message has no content")
	}

	for _, message := range messages[:len(messages)-1] {
		historyMessage := ai.Message{Role: normalizeRole(message.Role), Content: message.Content}
		if err := thread.History.AppendMessage(r.Context(), &historyMessage); err != nil {
			return "", err
		}
	}

	return last.Content, nil
}

// normalizeRole maps client role aliases onto the internal vocabulary.
// "human" and "ai" are accepted for interoperability with clients speaking
// the common agent-protocol dialect.
func normalizeRole(role string) ai.MessageRole {
	switch role {
	case "human", "user", "":
		return ai.RoleUser
	case "ai", "assistant":
		return ai.RoleAssistant
	case "system":
		return ai.RoleSystem
	case "tool":
		return ai.RoleTool
	default:
		return ai.MessageRole(role)
	}
}

/*
	JSON HELPERS
*/

// decodeJSON parses the request body into destination. An empty body is
// tolerated so endpoints with all-optional fields accept bare POSTs.
func decodeJSON(r *http.Request, destination any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(destination); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, errorResponse{Error: err.Error()})
}
