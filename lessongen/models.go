package lessongen

// PedagogyStyle is the teaching approach a domain uses. Each style maps to
// a different built-in lesson template.
type PedagogyStyle string

const (
	// PedagogyConceptFirst suits algorithmic domains: pure Python lessons
	// with heavy doctests.
	PedagogyConceptFirst PedagogyStyle = "concept_first"

	// PedagogyIntegrationFirst suits framework domains: lessons built
	// around integration patterns.
	PedagogyIntegrationFirst PedagogyStyle = "integration_first"

	// PedagogyApplicationFirst suits web domains: a functioning app
	// scaffold with tests.
	PedagogyApplicationFirst PedagogyStyle = "application_first"
)

// ProjectType is the structure of the target learning project.
type ProjectType string

const (
	// ProjectLessonBased targets numbered lesson files (NNN_topic.py).
	ProjectLessonBased ProjectType = "lesson_based"

	// ProjectAppBased targets an application layout (src/app/ + tests/).
	ProjectAppBased ProjectType = "app_based"
)

// Doctest strategies controlling how validate runs doctests.
const (
	// DoctestDeterministic runs doctests with exact output matching.
	DoctestDeterministic = "deterministic"

	// DoctestEllipsis enables ELLIPSIS and NORMALIZE_WHITESPACE so lessons
	// with nondeterministic output (timings, event ordering) still pass.
	DoctestEllipsis = "ellipsis"

	// DoctestSkip disables the doctest step entirely.
	DoctestSkip = "skip"
)

// Status is the pipeline outcome recorded in the run state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusGenerated Status = "generated"
	StatusCommitted Status = "committed"
	StatusFailed    Status = "failed"
	StatusDryRun    Status = "dry_run"
)

// DomainConfig describes one content generation domain: where its project
// lives, how lessons are laid out, and how strictly to validate them.
type DomainConfig struct {
	// Name is the domain identifier (e.g. "dsa", "asyncio").
	Name string `json:"name"`

	// Pedagogy selects the teaching approach and built-in template.
	Pedagogy PedagogyStyle `json:"pedagogy"`

	// ProjectType is the target project structure.
	ProjectType ProjectType `json:"project_type"`

	// ProjectPath is the absolute path of the target learning project.
	// Empty when the project is not on disk; lessons then require an
	// explicit output directory.
	ProjectPath string `json:"project_path,omitempty"`

	// LessonDir is the lesson subdirectory within the project. Empty
	// resolves to "src".
	LessonDir string `json:"lesson_dir,omitempty"`

	// TemplatePath is the project-relative path of the lesson template.
	// When empty or missing on disk, the built-in template for the
	// domain's pedagogy style is used.
	TemplatePath string `json:"template_path,omitempty"`

	// SourceRefs maps reference names to source-material paths.
	SourceRefs map[string]string `json:"source_refs,omitempty"`

	// StrictMypy runs mypy with --strict during validation.
	StrictMypy bool `json:"strict_mypy"`

	// DoctestStrategy is one of [DoctestDeterministic], [DoctestEllipsis]
	// or [DoctestSkip]. Empty resolves to deterministic.
	DoctestStrategy string `json:"doctest_strategy,omitempty"`
}

// ResolvedLessonDir resolves the lesson subdirectory, defaulting to "src".
func (c DomainConfig) ResolvedLessonDir() string {
	if c.LessonDir == "" {
		return "src"
	}
	return c.LessonDir
}

// doctestStrategy resolves the doctest strategy, defaulting to
// [DoctestDeterministic].
func (c DomainConfig) doctestStrategy() string {
	if c.DoctestStrategy == "" {
		return DoctestDeterministic
	}
	return c.DoctestStrategy
}

// LessonMetadata describes a generated lesson. It travels through the run
// state as JSON and is returned on the [Result].
type LessonMetadata struct {
	// Number is the lesson sequence number within the target directory.
	Number int `json:"number"`

	// Title is the human-readable lesson title (the requested topic).
	Title string `json:"title"`

	// Filename is the output filename, e.g. "003_hash_tables.py".
	Filename string `json:"filename"`

	// Prerequisites lists lessons this one builds on.
	Prerequisites []string `json:"prerequisites,omitempty"`

	// Narrative is a brief context blurb for the lesson.
	Narrative string `json:"narrative,omitempty"`
}
