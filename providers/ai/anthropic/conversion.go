package anthropic

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/leofalp/react-agent/providers/ai"
)

// defaultMaxTokens is applied when the caller supplies no generation config;
// Anthropic rejects requests without max_tokens.
const defaultMaxTokens = 4096

// requestToAnthropic converts an ai.ChatRequest into an anthropicRequest
// ready to POST to the Messages API.
func requestToAnthropic(request ai.ChatRequest) (anthropicRequest, error) {
	messages, err := buildMessages(request.Messages)
	if err != nil {
		return anthropicRequest{}, err
	}

	req := anthropicRequest{
		Model:     request.Model,
		Messages:  messages,
		System:    request.SystemPrompt,
		MaxTokens: defaultMaxTokens,
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.MaxTokens > 0 {
			req.MaxTokens = cfg.MaxTokens
		}
		if cfg.Temperature > 0 {
			temp := float64(cfg.Temperature)
			req.Temperature = &temp
		}
		if cfg.TopP > 0 {
			topP := float64(cfg.TopP)
			req.TopP = &topP
		}
	}

	if len(request.Tools) > 0 {
		req.Tools, err = buildTools(request.Tools)
		if err != nil {
			return anthropicRequest{}, err
		}
	}

	return req, nil
}

// buildMessages converts generic messages into Anthropic message objects.
// System messages are skipped (the system prompt travels in its own field),
// assistant tool calls become tool_use blocks, and tool results are wrapped
// in user-role tool_result blocks as the Messages API requires.
func buildMessages(messages []ai.Message) ([]anthropicMessage, error) {
	out := make([]anthropicMessage, 0, len(messages))

	for _, message := range messages {
		switch message.Role {
		case ai.RoleSystem:
			continue

		case ai.RoleAssistant:
			blocks := []anthropicContentBlock{}
			if message.Content != "" {
				blocks = append(blocks, anthropicContentBlock{Type: "text", Text: message.Content})
			}
			for _, call := range message.ToolCalls {
				input := json.RawMessage(call.Function.Arguments)
				if !json.Valid(input) {
					return nil, fmt.Errorf("tool call %q carries invalid JSON arguments: %s",
						call.Function.Name, call.Function.Arguments)
				}
				blocks = append(blocks, anthropicContentBlock{
					Type:  "tool_use",
					ID:    call.ID,
					Name:  call.Function.Name,
					Input: input,
				})
			}
			if len(blocks) == 0 {
				// Anthropic rejects empty content arrays.
				blocks = append(blocks, anthropicContentBlock{Type: "text", Text: ""})
			}
			out = append(out, anthropicMessage{Role: "assistant", Content: blocks})

		case ai.RoleTool:
			out = append(out, anthropicMessage{
				Role: "user",
				Content: []anthropicContentBlock{{
					Type:      "tool_result",
					ToolUseID: message.ToolCallID,
					Content:   message.Content,
				}},
			})

		default: // ai.RoleUser
			out = append(out, anthropicMessage{
				Role:    "user",
				Content: []anthropicContentBlock{{Type: "text", Text: message.Content}},
			})
		}
	}

	return out, nil
}

// buildTools converts generic tool descriptions into Anthropic tool objects,
// serializing each parameter schema into the input_schema field.
func buildTools(tools []ai.ToolDescription) ([]anthropicTool, error) {
	out := make([]anthropicTool, 0, len(tools))
	for _, tool := range tools {
		schema, err := json.Marshal(tool.Parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema for tool %q: %w", tool.Name, err)
		}
		out = append(out, anthropicTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		})
	}
	return out, nil
}

// responseToGeneric maps an anthropicResponse onto the vendor-neutral
// ai.ChatResponse. Text blocks are concatenated into Content; tool_use
// blocks become ToolCalls with their input re-serialized as an arguments
// string.
func responseToGeneric(resp anthropicResponse) *ai.ChatResponse {
	out := &ai.ChatResponse{
		ID:           resp.ID,
		Model:        resp.Model,
		Created:      time.Now().Unix(),
		FinishReason: resp.StopReason,
		Usage: &ai.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}

	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Content += block.Text
		case "tool_use":
			out.ToolCalls = append(out.ToolCalls, ai.ToolCall{
				ID:   block.ID,
				Type: "function",
				Function: ai.ToolCallFunction{
					Name:      block.Name,
					Arguments: string(block.Input),
				},
			})
		}
	}

	return out
}
