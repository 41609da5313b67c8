package lessongen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// EnvStudyRoot overrides the root directory under which domain projects are
// resolved. Defaults to ~/study/python.
const EnvStudyRoot = "LESSON_STUDY_ROOT"

// Registry holds the known domains. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	domains map[string]DomainConfig
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{domains: make(map[string]DomainConfig)}
}

// Register adds or replaces a domain configuration under its name.
func (r *Registry) Register(config DomainConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.domains[config.Name] = config
}

// Get looks up a domain by name. The error names the available domains so
// a typo on the command line is self-explanatory.
func (r *Registry) Get(name string) (DomainConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, exists := r.domains[name]
	if !exists {
		return DomainConfig{}, fmt.Errorf("unknown domain %q (available: %s)", name, joinSorted(r.domains))
	}
	return config, nil
}

// Names returns the registered domain names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.domains))
	for name := range r.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinSorted(domains map[string]DomainConfig) string {
	names := make([]string, 0, len(domains))
	for name := range domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// ValidateEnvironment checks whether a domain's target project exists on
// disk. It returns true with an explanation when the domain has no project
// path (an explicit output directory is then required), and false with a
// remediation hint when the configured path is missing.
func ValidateEnvironment(config DomainConfig) (bool, string) {
	if config.ProjectPath == "" {
		return true, "no project path configured; an explicit output directory is required"
	}
	info, err := os.Stat(config.ProjectPath)
	if err != nil || !info.IsDir() {
		return false, fmt.Sprintf("target project not found at %s: use -out to specify an explicit output path", config.ProjectPath)
	}
	return true, "OK"
}

// StudyRoot resolves the directory under which domain projects live:
// [EnvStudyRoot] when set, otherwise ~/study/python.
func StudyRoot() string {
	if root := os.Getenv(EnvStudyRoot); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("study", "python")
	}
	return filepath.Join(home, "study", "python")
}

// DefaultRegistry builds the registry of built-in domains. Project paths
// are resolved under [StudyRoot] at call time, so tests and deployments can
// redirect them via the environment.
func DefaultRegistry() *Registry {
	root := StudyRoot()

	registry := NewRegistry()
	registry.Register(DomainConfig{
		Name:            "dsa",
		Pedagogy:        PedagogyConceptFirst,
		ProjectType:     ProjectLessonBased,
		ProjectPath:     filepath.Join(root, "learning-dsa"),
		LessonDir:       "src/algorithms",
		TemplatePath:    "notes/lesson_template.py",
		SourceRefs:      defaultSourceRefs(),
		StrictMypy:      true,
		DoctestStrategy: DoctestDeterministic,
	})
	registry.Register(DomainConfig{
		Name:            "asyncio",
		Pedagogy:        PedagogyConceptFirst,
		ProjectType:     ProjectLessonBased,
		ProjectPath:     filepath.Join(root, "learning-asyncio"),
		LessonDir:       "src",
		TemplatePath:    "notes/lesson_template.py",
		SourceRefs:      defaultSourceRefs(),
		StrictMypy:      true,
		DoctestStrategy: DoctestEllipsis,
	})
	return registry
}

// defaultSourceRefs builds a fresh source-reference map per domain so one
// domain's edits never leak into another.
func defaultSourceRefs() map[string]string {
	home, err := os.UserHomeDir()
	if err != nil {
		return map[string]string{}
	}
	return map[string]string{"cpython": filepath.Join(home, "study", "c", "cpython")}
}
