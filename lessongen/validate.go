package lessongen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ValidationResult is the outcome of running quality checks on generated
// code.
type ValidationResult struct {
	// Valid reports whether every executed check passed.
	Valid bool

	// Errors holds one message per failed check.
	Errors []string

	// ToolsRun names the checks that were executed, in order.
	ToolsRun []string

	// NormalizedCode carries the formatter's output when formatting
	// changed the input. Empty otherwise.
	NormalizedCode string
}

// Validator checks generated lesson code against a domain's quality bar.
type Validator interface {
	Validate(ctx context.Context, code string, config DomainConfig) ValidationResult
}

// DefaultToolTimeout bounds each external check.
const DefaultToolTimeout = 120 * time.Second

// commandRunner executes one external command and reports its combined
// outcome. err is non-nil only for failures to run at all (including
// context timeouts); a non-zero exit is reported through exitCode.
type commandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr string, exitCode int, err error)

// CommandValidator runs the Python quality pipeline in a temporary
// directory: a syntax check, ruff format (normalization), ruff check, mypy
// (strict per the domain), and pytest --doctest-modules per the domain's
// doctest strategy. Each step is bounded by Timeout.
type CommandValidator struct {
	// Python is the interpreter used to launch every check. Defaults to
	// "python3".
	Python string

	// Timeout bounds each individual check. Defaults to
	// [DefaultToolTimeout].
	Timeout time.Duration

	// run executes commands; replaced in tests.
	run commandRunner
}

// NewCommandValidator creates a validator with the default interpreter and
// timeout.
func NewCommandValidator() *CommandValidator {
	return &CommandValidator{}
}

func (v *CommandValidator) python() string {
	if v.Python == "" {
		return "python3"
	}
	return v.Python
}

func (v *CommandValidator) timeout() time.Duration {
	if v.Timeout <= 0 {
		return DefaultToolTimeout
	}
	return v.Timeout
}

func (v *CommandValidator) runner() commandRunner {
	if v.run == nil {
		return execRunner
	}
	return v.run
}

// Validate writes code to a temporary lesson.py and runs the pipeline on
// it. The first hard failure (syntax error, tool timeout, tool unrunnable)
// short-circuits; soft failures (lint, type, doctest errors) accumulate so
// the fix step sees all of them at once.
func (v *CommandValidator) Validate(ctx context.Context, code string, config DomainConfig) ValidationResult {
	tempDir, err := os.MkdirTemp("", "lessongen-*")
	if err != nil {
		return ValidationResult{Errors: []string{fmt.Sprintf("creating temp dir: %v", err)}}
	}
	defer os.RemoveAll(tempDir)

	lessonPath := filepath.Join(tempDir, "lesson.py")
	if err := os.WriteFile(lessonPath, []byte(code), 0o644); err != nil {
		return ValidationResult{Errors: []string{fmt.Sprintf("writing temp lesson: %v", err)}}
	}

	result := ValidationResult{}

	// Syntax check via py_compile. A file that does not parse makes every
	// later tool report noise, so stop here.
	stdout, stderr, exitCode, err := v.runTool(ctx, "-m", "py_compile", lessonPath)
	result.ToolsRun = append(result.ToolsRun, "compile")
	if err != nil {
		result.Errors = append(result.Errors, toolRunError("compile", err, v.timeout()))
		return result
	}
	if exitCode != 0 {
		result.Errors = append(result.Errors, toolFailure("syntax error", stdout, stderr))
		return result
	}

	// ruff format normalizes the code; a diff is reported back through
	// NormalizedCode rather than treated as a failure.
	_, _, _, err = v.runTool(ctx, "-m", "ruff", "format", lessonPath)
	result.ToolsRun = append(result.ToolsRun, "ruff_format")
	if err != nil {
		result.Errors = append(result.Errors, toolRunError("ruff format", err, v.timeout()))
		return result
	}
	formatted, err := os.ReadFile(lessonPath)
	if err == nil && string(formatted) != code {
		result.NormalizedCode = string(formatted)
	}

	stdout, stderr, exitCode, err = v.runTool(ctx, "-m", "ruff", "check", lessonPath)
	result.ToolsRun = append(result.ToolsRun, "ruff")
	if err != nil {
		result.Errors = append(result.Errors, toolRunError("ruff", err, v.timeout()))
		return result
	}
	if exitCode != 0 {
		result.Errors = append(result.Errors, toolFailure("ruff", stdout, stderr))
	}

	mypyArgs := []string{"-m", "mypy"}
	if config.StrictMypy {
		mypyArgs = append(mypyArgs, "--strict")
	}
	mypyArgs = append(mypyArgs, lessonPath)
	stdout, stderr, exitCode, err = v.runTool(ctx, mypyArgs...)
	result.ToolsRun = append(result.ToolsRun, "mypy")
	if err != nil {
		result.Errors = append(result.Errors, toolRunError("mypy", err, v.timeout()))
		return result
	}
	if exitCode != 0 {
		result.Errors = append(result.Errors, toolFailure("mypy", stdout, stderr))
	}

	if config.doctestStrategy() != DoctestSkip {
		pytestArgs := []string{"-m", "pytest", "--doctest-modules"}
		if config.doctestStrategy() == DoctestEllipsis {
			pytestArgs = append(pytestArgs, "-o", "doctest_optionflags=ELLIPSIS NORMALIZE_WHITESPACE")
		}
		pytestArgs = append(pytestArgs, lessonPath)
		stdout, stderr, exitCode, err = v.runTool(ctx, pytestArgs...)
		result.ToolsRun = append(result.ToolsRun, "pytest")
		if err != nil {
			result.Errors = append(result.Errors, toolRunError("pytest", err, v.timeout()))
			return result
		}
		// Exit code 5 is "no tests collected", fine for lessons without
		// doctests.
		if exitCode != 0 && exitCode != 5 {
			result.Errors = append(result.Errors, toolFailure("pytest", stdout, stderr))
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// runTool launches the interpreter with args under the per-tool timeout.
func (v *CommandValidator) runTool(ctx context.Context, args ...string) (string, string, int, error) {
	toolCtx, cancel := context.WithTimeout(ctx, v.timeout())
	defer cancel()
	return v.runner()(toolCtx, v.python(), args...)
}

// execRunner is the production commandRunner backed by os/exec.
func execRunner(ctx context.Context, name string, args ...string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return stdout.String(), stderr.String(), 0, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return stdout.String(), stderr.String(), 0, err
	}
	return stdout.String(), stderr.String(), 0, nil
}

// toolRunError renders a failure to execute a check at all.
func toolRunError(tool string, err error, timeout time.Duration) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("%s: timed out after %s", tool, timeout)
	}
	return fmt.Sprintf("%s: %v", tool, err)
}

// toolFailure renders a check that ran and rejected the code.
func toolFailure(tool, stdout, stderr string) string {
	message := strings.TrimSpace(stdout)
	if trimmed := strings.TrimSpace(stderr); trimmed != "" {
		if message != "" {
			message += "\n"
		}
		message += "stderr: " + trimmed
	}
	return fmt.Sprintf("%s: %s", tool, message)
}
