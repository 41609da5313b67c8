package lessongen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newProjectDir builds a project on disk with a lesson template and two
// numbered lessons, returning its matching domain config.
func newProjectDir(t *testing.T) DomainConfig {
	t.Helper()

	root := t.TempDir()

	notes := filepath.Join(root, "notes")
	if err := os.MkdirAll(notes, 0o755); err != nil {
		t.Fatal(err)
	}
	template := "#!/usr/bin/env python\n\"\"\"Template.\"\"\"\n"
	if err := os.WriteFile(filepath.Join(notes, "lesson_template.py"), []byte(template), 0o644); err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(root, "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"__init__.py":   "",
		"001_intro.py":  "\"\"\"Intro lesson.\"\"\"\n",
		"002_basics.py": "\"\"\"Basics lesson.\"\"\"\n",
	} {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return DomainConfig{
		Name:         "test",
		Pedagogy:     PedagogyConceptFirst,
		ProjectType:  ProjectLessonBased,
		ProjectPath:  root,
		LessonDir:    "src",
		TemplatePath: "notes/lesson_template.py",
	}
}

func TestReadTemplate_ProjectTemplate(t *testing.T) {
	config := newProjectDir(t)

	template, err := ReadTemplate(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(template, "Template") {
		t.Errorf("expected the project template, got %q", template)
	}
}

func TestReadTemplate_FallbackWithoutProject(t *testing.T) {
	config := DomainConfig{
		Name:        "noproject",
		Pedagogy:    PedagogyConceptFirst,
		ProjectType: ProjectLessonBased,
	}

	template, err := ReadTemplate(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(template, "demonstrate_concept") {
		t.Errorf("expected the built-in concept template, got %q", template)
	}
}

func TestReadTemplate_FallbackWhenTemplateMissing(t *testing.T) {
	config := DomainConfig{
		Name:         "test",
		Pedagogy:     PedagogyConceptFirst,
		ProjectType:  ProjectLessonBased,
		ProjectPath:  t.TempDir(),
		TemplatePath: "nonexistent.py",
	}

	template, err := ReadTemplate(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(template, "demonstrate_concept") {
		t.Errorf("expected the built-in concept template, got %q", template)
	}
}

func TestBuiltinTemplate_AllStyles(t *testing.T) {
	for _, style := range []PedagogyStyle{
		PedagogyConceptFirst,
		PedagogyIntegrationFirst,
		PedagogyApplicationFirst,
	} {
		template, err := BuiltinTemplate(style)
		if err != nil {
			t.Errorf("style %s: unexpected error: %v", style, err)
			continue
		}
		if !strings.Contains(template, "from __future__ import annotations") {
			t.Errorf("style %s: template should follow the lesson conventions", style)
		}
	}

	if _, err := BuiltinTemplate(PedagogyStyle("bogus")); err == nil {
		t.Error("expected error for unknown pedagogy style")
	}
}

func TestListExistingLessons(t *testing.T) {
	config := newProjectDir(t)

	lessons, err := ListExistingLessons(config, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"001_intro.py", "002_basics.py"}
	if len(lessons) != len(want) {
		t.Fatalf("expected %v, got %v", want, lessons)
	}
	for index := range want {
		if lessons[index] != want[index] {
			t.Fatalf("expected %v, got %v", want, lessons)
		}
	}
}

func TestListExistingLessons_EmptyWithoutProject(t *testing.T) {
	config := DomainConfig{Name: "none", Pedagogy: PedagogyConceptFirst, ProjectType: ProjectLessonBased}

	lessons, err := ListExistingLessons(config, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lessons) != 0 {
		t.Errorf("expected no lessons, got %v", lessons)
	}
}

func TestListExistingLessons_NestedDirs(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "subdir")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "001_nested.py"), []byte("# nested"), 0o644); err != nil {
		t.Fatal(err)
	}

	config := DomainConfig{
		Name:        "nested",
		Pedagogy:    PedagogyConceptFirst,
		ProjectType: ProjectLessonBased,
		ProjectPath: root,
		LessonDir:   "src",
	}

	lessons, err := ListExistingLessons(config, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lessons) != 1 || lessons[0] != "subdir/001_nested.py" {
		t.Errorf("expected the nested lesson relative to the lesson dir, got %v", lessons)
	}
}

func TestNextLessonNumber(t *testing.T) {
	config := newProjectDir(t)

	number, err := NextLessonNumber(config, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != 3 {
		t.Errorf("expected 3 after lessons 001 and 002, got %d", number)
	}
}

func TestNextLessonNumber_TargetDirOverride(t *testing.T) {
	override := t.TempDir()
	for _, name := range []string{"001_a.py", "005_b.py"} {
		if err := os.WriteFile(filepath.Join(override, name), []byte("# x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	config := DomainConfig{Name: "test", Pedagogy: PedagogyConceptFirst, ProjectType: ProjectLessonBased}

	number, err := NextLessonNumber(config, override)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != 6 {
		t.Errorf("expected 6 after highest prefix 005, got %d", number)
	}
}

func TestNextLessonNumber_StartsAtOne(t *testing.T) {
	config := DomainConfig{
		Name:        "empty",
		Pedagogy:    PedagogyConceptFirst,
		ProjectType: ProjectLessonBased,
		ProjectPath: t.TempDir(),
		LessonDir:   "src",
	}

	number, err := NextLessonNumber(config, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != 1 {
		t.Errorf("expected 1 for an empty project, got %d", number)
	}
}

func TestWriteLesson_CreatesFileAndParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "001_test.py")

	if err := WriteLesson(path, "# test content", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written lesson: %v", err)
	}
	if string(content) != "# test content" {
		t.Errorf("unexpected content %q", content)
	}
}

func TestWriteLesson_OverwriteProtection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "001_test.py")
	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteLesson(path, "overwrite", false)
	if err == nil {
		t.Fatal("expected error when the file exists")
	}
	if !errors.Is(err, os.ErrExist) {
		t.Errorf("error should wrap os.ErrExist, got %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "original" {
		t.Errorf("existing file must not be touched, got %q", content)
	}
}

func TestWriteLesson_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "001_test.py")
	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteLesson(path, "new content", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "new content" {
		t.Errorf("expected force to overwrite, got %q", content)
	}
}
