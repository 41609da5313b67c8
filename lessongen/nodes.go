package lessongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/leofalp/react-agent/patterns/graph"
	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/observability"
)

// State keys used by the pipeline nodes.
const (
	keyTopic            = "topic"
	keyDomainName       = "domain_name"
	keyTargetDir        = "target_dir"
	keyTemplateContent  = "template_content"
	keyExistingLessons  = "existing_lessons"
	keyRenderedCode     = "rendered_code"
	keyMetadataJSON     = "metadata_json"
	keyValidationOK     = "validation_ok"
	keyValidationErrors = "validation_errors"
	keyIteration        = "iteration"
	keyMaxIterations    = "max_iterations"
	keyDryRun           = "dry_run"
	keyForce            = "force"
	keyOutputPath       = "output_path"
	keyStatus           = "status"
)

// loadContext reads the domain's template and existing lessons, and resets
// the retry counter.
func (p *Pipeline) loadContext(ctx context.Context, state *graph.State) error {
	config, err := p.registry.Get(stateString(state, keyDomainName))
	if err != nil {
		return err
	}

	template, err := ReadTemplate(config)
	if err != nil {
		return err
	}

	existing, err := ListExistingLessons(config, stateString(state, keyTargetDir))
	if err != nil {
		return err
	}

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Debug("lesson context loaded",
			observability.String("lesson.domain", config.Name),
			observability.Int("lesson.existing_count", len(existing)),
		)
	}

	state.Set(keyTemplateContent, template)
	state.Set(keyExistingLessons, existing)
	state.Set(keyIteration, 0)
	state.Set(keyStatus, StatusPending)
	return nil
}

// topicCharPattern and underscoreRunPattern implement filename
// sanitization: everything outside [a-z0-9_] becomes an underscore, runs
// collapse, and leading/trailing underscores are trimmed.
var (
	topicCharPattern     = regexp.MustCompile(`[^a-z0-9_]`)
	underscoreRunPattern = regexp.MustCompile(`_+`)
)

// safeTopicName turns a free-form topic into a filename-safe slug.
func safeTopicName(topic string) string {
	safe := topicCharPattern.ReplaceAllString(strings.ToLower(topic), "_")
	safe = underscoreRunPattern.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}

// generateLesson asks the model for a new lesson and records the rendered
// code plus its metadata.
func (p *Pipeline) generateLesson(ctx context.Context, state *graph.State) error {
	config, err := p.registry.Get(stateString(state, keyDomainName))
	if err != nil {
		return err
	}

	number, err := NextLessonNumber(config, stateString(state, keyTargetDir))
	if err != nil {
		return err
	}

	topic := stateString(state, keyTopic)
	filename := fmt.Sprintf("%03d_%s.py", number, safeTopicName(topic))

	existing := strings.Join(stateStrings(state, keyExistingLessons), "\n")
	if existing == "" {
		existing = "(none)"
	}

	system, user := generatePrompts(
		stateString(state, keyTemplateContent),
		existing,
		number,
		filename,
		topic,
		config.Name,
	)

	code, err := p.complete(ctx, system, user)
	if err != nil {
		return fmt.Errorf("generating lesson: %w", err)
	}

	metadata, err := json.Marshal(LessonMetadata{
		Number:   number,
		Title:    topic,
		Filename: filename,
	})
	if err != nil {
		return fmt.Errorf("encoding lesson metadata: %w", err)
	}

	state.Set(keyRenderedCode, code)
	state.Set(keyMetadataJSON, string(metadata))
	state.Set(keyStatus, StatusGenerated)
	return nil
}

// validateLesson runs the quality pipeline on the rendered code.
func (p *Pipeline) validateLesson(ctx context.Context, state *graph.State) error {
	config, err := p.registry.Get(stateString(state, keyDomainName))
	if err != nil {
		return err
	}

	result := p.validator.Validate(ctx, stateString(state, keyRenderedCode), config)

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Debug("lesson validated",
			observability.Bool("lesson.valid", result.Valid),
			observability.Int("lesson.error_count", len(result.Errors)),
		)
	}

	state.Set(keyValidationOK, result.Valid)
	state.Set(keyValidationErrors, result.Errors)
	return nil
}

// fixLesson feeds validation errors back to the model and bumps the retry
// counter.
func (p *Pipeline) fixLesson(ctx context.Context, state *graph.State) error {
	system, user := fixPrompts(
		stateString(state, keyRenderedCode),
		strings.Join(stateStrings(state, keyValidationErrors), "\n"),
	)

	code, err := p.complete(ctx, system, user)
	if err != nil {
		return fmt.Errorf("fixing lesson: %w", err)
	}

	state.Set(keyRenderedCode, code)
	state.Set(keyIteration, stateInt(state, keyIteration)+1)
	return nil
}

// shouldRetry routes after validation: commit valid code, give up once the
// retry budget is spent, otherwise try a fix.
func (p *Pipeline) shouldRetry(_ context.Context, state *graph.State) string {
	if stateBool(state, keyValidationOK) {
		return nodeWriteOutput
	}
	if stateInt(state, keyIteration) >= stateInt(state, keyMaxIterations) {
		return nodeWriteOutput
	}
	return nodeFixLesson
}

// writeOutput commits the lesson to the target directory. Invalid code and
// dry runs never touch the filesystem; the resolved path must stay inside
// the target directory and must not clobber an existing file unless force
// is set.
func (p *Pipeline) writeOutput(_ context.Context, state *graph.State) error {
	if !stateBool(state, keyValidationOK) {
		state.Set(keyStatus, StatusFailed)
		return nil
	}

	if stateBool(state, keyDryRun) {
		state.Set(keyStatus, StatusDryRun)
		return nil
	}

	var metadata LessonMetadata
	if err := json.Unmarshal([]byte(stateString(state, keyMetadataJSON)), &metadata); err != nil {
		return fmt.Errorf("decoding lesson metadata: %w", err)
	}

	targetDir, err := filepath.Abs(stateString(state, keyTargetDir))
	if err != nil {
		return fmt.Errorf("resolving target directory: %w", err)
	}

	target := filepath.Join(targetDir, metadata.Filename)
	if !withinDir(targetDir, target) {
		state.Set(keyStatus, StatusFailed)
		state.Set(keyValidationErrors, []string{"path traversal detected"})
		return nil
	}

	err = WriteLesson(target, stateString(state, keyRenderedCode), stateBool(state, keyForce))
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			state.Set(keyStatus, StatusFailed)
			state.Set(keyValidationErrors, []string{fmt.Sprintf("file exists: %s", target)})
			return nil
		}
		return err
	}

	state.Set(keyOutputPath, target)
	state.Set(keyStatus, StatusCommitted)
	return nil
}

// withinDir reports whether path stays inside dir after cleaning.
func withinDir(dir, path string) bool {
	relative, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return relative != ".." && !strings.HasPrefix(relative, ".."+string(filepath.Separator))
}

// complete sends one system+user exchange to the provider and returns the
// model's code output with stray markdown fences removed.
func (p *Pipeline) complete(ctx context.Context, system, user string) (string, error) {
	response, err := p.provider.SendMessage(ctx, ai.ChatRequest{
		Model:        p.model,
		SystemPrompt: system,
		Messages:     []ai.Message{{Role: ai.RoleUser, Content: user}},
	})
	if err != nil {
		return "", err
	}
	return stripCodeFences(response.Content), nil
}

// fencePattern matches content wrapped in a complete pair of markdown code
// fences (three or more backticks, optional language tag).
var fencePattern = regexp.MustCompile("(?s)^`{3,}[a-zA-Z0-9]*\n(.*)\n?`{3,}$")

// stripCodeFences removes one outer pair of markdown code fences from model
// output. Content without a complete fence pair passes through unchanged
// apart from whitespace trimming; backticks inside the code survive.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	match := fencePattern.FindStringSubmatch(trimmed)
	if match == nil {
		return trimmed
	}
	return strings.TrimSpace(match[1])
}

/*
	STATE ACCESSORS
*/

func stateString(state *graph.State, key string) string {
	value, _ := state.Get(key)
	text, _ := value.(string)
	return text
}

func stateInt(state *graph.State, key string) int {
	value, _ := state.Get(key)
	number, _ := value.(int)
	return number
}

func stateBool(state *graph.State, key string) bool {
	value, _ := state.Get(key)
	flag, _ := value.(bool)
	return flag
}

func stateStrings(state *graph.State, key string) []string {
	value, _ := state.Get(key)
	list, _ := value.([]string)
	return list
}

func stateStatus(state *graph.State, key string) Status {
	value, _ := state.Get(key)
	status, _ := value.(Status)
	return status
}
