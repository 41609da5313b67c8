package lessongen

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ReadTemplate reads the lesson template for a domain: the project-specific
// template when it exists on disk, otherwise the built-in template for the
// domain's pedagogy style.
func ReadTemplate(config DomainConfig) (string, error) {
	if config.ProjectPath != "" && config.TemplatePath != "" {
		templateFile := filepath.Join(config.ProjectPath, config.TemplatePath)
		content, err := os.ReadFile(templateFile)
		if err == nil {
			return string(content), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("reading template %s: %w", templateFile, err)
		}
	}
	return BuiltinTemplate(config.Pedagogy)
}

// ListExistingLessons lists the .py files under the domain's lesson
// directory, relative to it and sorted. Dunder files (__init__.py and
// anything under __pycache__) are excluded. targetDir overrides the
// directory to scan; when empty the domain's project lesson directory is
// used. A missing directory or an unconfigured project yields an empty
// list, matching a fresh project.
func ListExistingLessons(config DomainConfig, targetDir string) ([]string, error) {
	lessonDir := targetDir
	if lessonDir == "" {
		if config.ProjectPath == "" {
			return nil, nil
		}
		lessonDir = filepath.Join(config.ProjectPath, config.ResolvedLessonDir())
	}

	info, err := os.Stat(lessonDir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(lessonDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(entry.Name(), "__") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".py") {
			return nil
		}
		relative, err := filepath.Rel(lessonDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(relative))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning lessons in %s: %w", lessonDir, err)
	}

	sort.Strings(files)
	return files, nil
}

// lessonNumberPattern matches a leading numeric prefix like "003" in
// "003_topic.py".
var lessonNumberPattern = regexp.MustCompile(`^(\d+)`)

// NextLessonNumber determines the next lesson number from existing files:
// the highest leading numeric prefix plus one, or 1 when no numbered
// lessons exist. targetDir overrides the directory to scan as in
// [ListExistingLessons].
func NextLessonNumber(config DomainConfig, targetDir string) (int, error) {
	lessons, err := ListExistingLessons(config, targetDir)
	if err != nil {
		return 0, err
	}

	maxNumber := 0
	for _, lesson := range lessons {
		base := filepath.Base(filepath.FromSlash(lesson))
		match := lessonNumberPattern.FindString(base)
		if match == "" {
			continue
		}
		number, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if number > maxNumber {
			maxNumber = number
		}
	}
	return maxNumber + 1, nil
}

// WriteLesson writes lesson content to disk, creating parent directories as
// needed. Unless force is set, an existing file is an error wrapping
// [os.ErrExist] so callers can distinguish the collision from I/O failures.
func WriteLesson(path, content string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("file already exists: %s (pass force to overwrite): %w", path, os.ErrExist)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating lesson directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing lesson %s: %w", path, err)
	}
	return nil
}
