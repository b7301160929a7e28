package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/stackseed-labs/stackseed/internal/ai"
	"github.com/stackseed-labs/stackseed/internal/deps"
	"github.com/stackseed-labs/stackseed/internal/installer"
	"github.com/stackseed-labs/stackseed/internal/snippet"
)

var (
	// ErrMissingDependencyEntry is returned by CopyPredefined when a bundled
	// snippet has no entry in the dependency table.
	ErrMissingDependencyEntry = errors.New("no dependency entry for snippet")

	// ErrFileSystem wraps failures creating or writing the destination file.
	ErrFileSystem = errors.New("file system error")
)

// DefaultTimeout bounds a single AI request.
const DefaultTimeout = 60 * time.Second

// CredentialSource yields the API key for the AI backend.
type CredentialSource interface {
	Get(ctx context.Context) (string, error)
}

// GeneratorFactory builds an AI generator for an API key.
type GeneratorFactory func(apiKey string) (ai.Generator, error)

// Result describes a materialized snippet.
type Result struct {
	// Path is the written file. Empty when nothing was written.
	Path string
	// Install is the installer outcome; nil when installation was not attempted.
	Install *installer.Result
	// Notice is an informational message for the user, e.g. that
	// dependencies must be installed manually.
	Notice string
}

// Materializer copies or generates snippet files and installs their dependencies.
type Materializer struct {
	Store        snippet.Store
	Deps         deps.Table
	Installer    installer.Installer
	Credentials  CredentialSource
	NewGenerator GeneratorFactory

	// Language names the snippet language in AI prompts.
	Language string
	// Timeout bounds the AI request; zero means DefaultTimeout.
	Timeout time.Duration
	// SkipInstall writes the file but never runs the installer.
	SkipInstall bool
	// Progress receives human-readable status lines; nil discards them.
	Progress io.Writer
}

// CopyPredefined copies bundled snippet id into destDir and installs its
// dependencies. Unknown ids fail with snippet.ErrNotFound and ids without a
// dependency entry fail with ErrMissingDependencyEntry; neither writes a file.
// An installer failure is returned alongside the Result, the file is kept.
func (m *Materializer) CopyPredefined(ctx context.Context, id, destDir string) (*Result, error) {
	if !m.Store.Exists(id) {
		return nil, fmt.Errorf("%w: %q does not exist", snippet.ErrNotFound, id)
	}

	packages, ok := m.Deps.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingDependencyEntry, id)
	}

	data, err := m.Store.Read(id)
	if err != nil {
		return nil, err
	}

	dst := m.destPath(destDir, id)
	if err := writeFileAtomic(dst, data); err != nil {
		return nil, err
	}

	result := &Result{Path: dst}
	if err := m.install(ctx, destDir, packages, result); err != nil {
		return result, err
	}
	return result, nil
}

// GenerateWithAI asks the AI backend for snippet id, writes the reply verbatim
// to destDir, and installs dependencies when the table knows them. A missing
// dependency entry is not an error here: the Result carries a notice instead.
// Nothing is written when the request fails.
func (m *Materializer) GenerateWithAI(ctx context.Context, id, destDir string) (*Result, error) {
	apiKey, err := m.Credentials.Get(ctx)
	if err != nil {
		return nil, err
	}

	gen, err := m.NewGenerator(apiKey)
	if err != nil {
		return nil, err
	}

	timeout := m.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	m.progressf("Generating code snippet for %s...\n", id)
	code, err := gen.Generate(reqCtx, ai.BuildPrompt(id, m.Language))
	if err != nil {
		if !errors.Is(err, ai.ErrRequestFailed) {
			err = fmt.Errorf("%w: %w", ai.ErrRequestFailed, err)
		}
		return nil, err
	}
	if code == "" {
		return nil, fmt.Errorf("%w: empty response", ai.ErrRequestFailed)
	}

	dst := m.destPath(destDir, id)
	if err := writeFileAtomic(dst, []byte(code)); err != nil {
		return nil, err
	}

	result := &Result{Path: dst}
	packages, ok := m.Deps.Lookup(id)
	if !ok {
		result.Notice = fmt.Sprintf("No predefined dependencies found for %s. You may need to install them manually.", id)
		return result, nil
	}
	if err := m.install(ctx, destDir, packages, result); err != nil {
		return result, err
	}
	return result, nil
}

func (m *Materializer) install(ctx context.Context, dir string, packages []string, result *Result) error {
	if m.SkipInstall {
		return nil
	}
	if len(packages) > 0 {
		m.progressf("Installing the required packages for the snippet...\n")
	}
	res, err := m.Installer.Install(ctx, dir, packages)
	result.Install = res
	return err
}

func (m *Materializer) destPath(destDir, id string) string {
	return filepath.Join(destDir, id+"."+m.Store.Ext())
}

func (m *Materializer) progressf(format string, args ...interface{}) {
	if m.Progress != nil {
		fmt.Fprintf(m.Progress, format, args...)
	}
}

// writeFileAtomic writes data to a uniquely named temp file beside path and
// renames it into place, replacing any existing file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrFileSystem, dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %w", ErrFileSystem, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %w", ErrFileSystem, path, err)
	}
	return nil
}
