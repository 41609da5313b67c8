package openai

import (
	"github.com/leofalp/react-agent/providers/ai"
)

// requestFromGeneric converts an ai.ChatRequest into the chat completions
// wire format. The system prompt, when present, is prepended as a system
// message since OpenAI carries it inline in the message list.
func requestFromGeneric(request ai.ChatRequest) chatCompletionRequest {
	req := chatCompletionRequest{
		Model:    request.Model,
		Messages: make([]chatMessage, 0, len(request.Messages)+1),
	}

	if request.SystemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: request.SystemPrompt})
	}

	for _, message := range request.Messages {
		req.Messages = append(req.Messages, messageFromGeneric(message))
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature > 0 {
			temp := float64(cfg.Temperature)
			req.Temperature = &temp
		}
		if cfg.TopP > 0 {
			topP := float64(cfg.TopP)
			req.TopP = &topP
		}
		if cfg.MaxTokens > 0 {
			maxTokens := cfg.MaxTokens
			req.MaxCompletionTokens = &maxTokens
		}
	}

	for _, tool := range request.Tools {
		req.Tools = append(req.Tools, chatTool{
			Type: "function",
			Function: chatFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	return req
}

// messageFromGeneric maps a single generic message onto the wire format,
// carrying through tool-call linkage fields.
func messageFromGeneric(message ai.Message) chatMessage {
	out := chatMessage{
		Role:       string(message.Role),
		Content:    message.Content,
		Name:       message.Name,
		ToolCallID: message.ToolCallID,
	}

	for _, call := range message.ToolCalls {
		wireCall := chatToolCall{ID: call.ID, Type: "function"}
		wireCall.Function.Name = call.Function.Name
		wireCall.Function.Arguments = call.Function.Arguments
		out.ToolCalls = append(out.ToolCalls, wireCall)
	}

	return out
}

// responseToGeneric maps the first choice of a chat completion onto the
// vendor-neutral ai.ChatResponse.
func responseToGeneric(resp chatCompletionResponse) *ai.ChatResponse {
	out := &ai.ChatResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Created: resp.Created,
	}

	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	if len(resp.Choices) == 0 {
		return out
	}

	choice := resp.Choices[0]
	out.Content = choice.Message.Content
	out.FinishReason = choice.FinishReason

	for _, call := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ai.ToolCall{
			ID:   call.ID,
			Type: "function",
			Function: ai.ToolCallFunction{
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			},
		})
	}

	return out
}
