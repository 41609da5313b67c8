package lessongen

import "fmt"

// generateSystemPrompt carries the lesson conventions, the template to
// follow, and the existing-lesson inventory so the model avoids overlap.
const generateSystemPrompt = `You are an expert Python instructor creating learning content.

CONVENTIONS (must follow):
- Use ` + "`from __future__ import annotations`" + ` at the top
- Use namespace imports for stdlib: ` + "`import typing as t`, `import pathlib`" + `, etc.
- Exception: ` + "`from dataclasses import dataclass, field`" + ` is OK
- NumPy-style docstrings on all public functions
- Type hints on all functions (mypy --strict compatible)
- Include doctests in Examples sections
- Ensure ` + "`pytest --doctest-modules`" + ` passes
- Keep lessons self-contained and runnable
- Include a ` + "`main()`" + ` function and ` + "`if __name__ == '__main__'`" + ` guard

TEMPLATE (follow this structure):
` + "`````" + `
%s
` + "`````" + `

EXISTING LESSONS in this project (avoid overlap):
%s

The lesson number is %d and filename is %s.`

const generateUserPrompt = `Generate a complete, self-contained Python lesson on: %s

Domain: %s

OUTPUT RULES:
1. Return ONLY valid Python source code
2. Do NOT wrap the output in markdown code fences (no ` + "```" + ` or ` + "```python" + `)
3. The first line must be a Python docstring or comment`

const fixSystemPrompt = `You are fixing a Python lesson that failed validation.

CONVENTIONS (same as original):
- ` + "`from __future__ import annotations`" + ` at the top
- Namespace imports for stdlib
- NumPy-style docstrings
- Type hints (mypy --strict compatible)
- Doctests must pass under ` + "`pytest --doctest-modules`"

const fixUserPrompt = `The following code failed validation:

` + "`````python" + `
%s
` + "`````" + `

Errors:
%s

OUTPUT RULES:
1. Return ONLY valid Python source code
2. Do NOT wrap the output in markdown code fences (no ` + "```" + ` or ` + "```python" + `)
3. The first line must be a Python docstring or comment`

// generatePrompts renders the system and user messages for the generate
// step.
func generatePrompts(template, existing string, number int, filename, topic, domain string) (string, string) {
	system := fmt.Sprintf(generateSystemPrompt, template, existing, number, filename)
	user := fmt.Sprintf(generateUserPrompt, topic, domain)
	return system, user
}

// fixPrompts renders the system and user messages for the fix step.
func fixPrompts(code, errorsText string) (string, string) {
	user := fmt.Sprintf(fixUserPrompt, code, errorsText)
	return fixSystemPrompt, user
}
