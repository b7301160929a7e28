package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"
)

//go:embed all:templates
var templateFS embed.FS

// DefaultTemplate is the template set used by create-project.
const DefaultTemplate = "express"

// ErrFileSystem wraps failures writing the project tree.
var ErrFileSystem = errors.New("file system error")

// ProjectData holds all template variables available to project templates.
type ProjectData struct {
	Name      string // npm package name, e.g., "my-api"
	Generator string // CLI name, e.g., "stackseed"
	Year      int
}

// Result holds the outcome of a project generation.
type Result struct {
	OutputDir string
	Files     []string // slash-separated, relative to OutputDir
	Warnings  []string
}

var invalidNameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// NewProjectData derives template data from the destination directory.
func NewProjectData(outputDir, generator string) *ProjectData {
	name := "backend"
	if abs, err := filepath.Abs(outputDir); err == nil {
		name = packageName(filepath.Base(abs))
	}
	return &ProjectData{
		Name:      name,
		Generator: generator,
		Year:      time.Now().Year(),
	}
}

// packageName turns a directory name into a valid npm package name.
func packageName(base string) string {
	name := invalidNameChars.ReplaceAllString(strings.ToLower(base), "-")
	name = strings.Trim(name, "-._")
	if name == "" {
		return "backend"
	}
	return name
}

// Generate copies the named template set into outputDir. Existing files with
// the same name are overwritten; nothing else in outputDir is touched.
func Generate(templateName string, data *ProjectData, outputDir string) (*Result, error) {
	root := path.Join("templates", templateName)
	if _, err := fs.Stat(templateFS, root); err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", templateName, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %w", ErrFileSystem, err)
	}

	result := &Result{OutputDir: outputDir}

	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if rel == "" {
			return nil
		}

		if d.IsDir() {
			if err := os.MkdirAll(filepath.Join(outputDir, filepath.FromSlash(rel)), 0755); err != nil {
				return fmt.Errorf("%w: creating %s: %w", ErrFileSystem, rel, err)
			}
			return nil
		}

		content, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		outRel := rel
		if strings.HasSuffix(rel, ".tmpl") {
			outRel = strings.TrimSuffix(rel, ".tmpl")
			content, err = render(rel, content, data)
			if err != nil {
				return err
			}
		}

		outPath := filepath.Join(outputDir, filepath.FromSlash(outRel))
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return fmt.Errorf("%w: writing %s: %w", ErrFileSystem, outPath, err)
		}
		result.Files = append(result.Files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := EnsureGitignore(outputDir, DefaultIgnoreEntries); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not generate .gitignore: %v", err))
	} else {
		result.Files = append(result.Files, GitignoreFile)
	}

	return result, nil
}

func render(name string, content []byte, data *ProjectData) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
