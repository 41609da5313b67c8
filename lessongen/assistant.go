package lessongen

import (
	"context"
	"fmt"
	"strings"

	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/memory"
)

// Assistant adapts the pipeline to the dev server's run contract: one user
// prompt in, one response out. The prompt is treated as the lesson topic
// and the pipeline runs in dry-run mode, so HTTP runs never write to the
// server's filesystem; the rendered lesson comes back as the response
// content.
type Assistant struct {
	pipeline *Pipeline
	domain   string
	history  memory.Provider
}

// Assistant wraps the pipeline for the dev server, generating lessons for
// the given domain. history, when non-nil, accumulates the topic/lesson
// exchange so thread state reflects past runs.
func (p *Pipeline) Assistant(domain string, history memory.Provider) *Assistant {
	return &Assistant{
		pipeline: p,
		domain:   domain,
		history:  history,
	}
}

// Execute generates a lesson for the prompt topic and returns it as the
// response content. Validation failures are reported in the response
// rather than as errors, mirroring how the pipeline itself treats them as
// an outcome.
func (a *Assistant) Execute(ctx context.Context, prompt string) (*ai.ChatResponse, error) {
	result, err := a.pipeline.Run(ctx, Request{
		Topic:  prompt,
		Domain: a.domain,
		DryRun: true,
	})
	if err != nil {
		return nil, err
	}

	content := result.RenderedCode
	if result.Status != StatusDryRun {
		content = fmt.Sprintf("Lesson generation failed (status=%s).", result.Status)
		if len(result.ValidationErrors) > 0 {
			content += "\nValidation errors:\n- " + strings.Join(result.ValidationErrors, "\n- ")
		}
	}

	if a.history != nil {
		userMessage := ai.Message{Role: ai.RoleUser, Content: prompt}
		if err := a.history.AppendMessage(ctx, &userMessage); err != nil {
			return nil, err
		}
		assistantMessage := ai.Message{Role: ai.RoleAssistant, Content: content}
		if err := a.history.AppendMessage(ctx, &assistantMessage); err != nil {
			return nil, err
		}
	}

	return &ai.ChatResponse{Content: content, FinishReason: "stop"}, nil
}
