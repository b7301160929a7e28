//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stackseed-labs/stackseed/internal/ai"
	"github.com/stackseed-labs/stackseed/internal/config"
	"github.com/stackseed-labs/stackseed/internal/credential"
	"github.com/stackseed-labs/stackseed/internal/deps"
	"github.com/stackseed-labs/stackseed/internal/installer"
	"github.com/stackseed-labs/stackseed/internal/materialize"
	"github.com/stackseed-labs/stackseed/internal/scaffold"
	"github.com/stackseed-labs/stackseed/internal/snippet"
)

// newMaterializer wires the real components together, pointing the installer
// at npmPath and the OpenAI adapter at baseURL.
func newMaterializer(t *testing.T, env *testEnv, npmPath, baseURL string, prompter credential.Prompter) (*materialize.Materializer, *bytes.Buffer) {
	t.Helper()

	table, err := deps.Default()
	if err != nil {
		t.Fatalf("deps.Default: %v", err)
	}

	var progress bytes.Buffer
	creds := credential.NewProvider(credential.NewFileStore(env.ConfigPath), prompter, &progress)

	return &materialize.Materializer{
		Store:       snippet.Bundled(),
		Deps:        table,
		Installer:   &installer.Exec{Manager: installer.Manager{Name: "npm", Binary: npmPath, InstallArgs: []string{"install"}}},
		Credentials: creds,
		NewGenerator: func(apiKey string) (ai.Generator, error) {
			return ai.New(ai.ProviderOpenAI, ai.Options{APIKey: apiKey, BaseURL: baseURL})
		},
		Timeout:  5 * time.Second,
		Progress: &progress,
	}, &progress
}

// TestFullFlowProjectThenSnippets tests the complete flow:
// create project -> add a bundled snippet -> add an AI snippet -> verify state.
func TestFullFlowProjectThenSnippets(t *testing.T) {
	env := setupTestEnv(t)
	npm := writeFakeNPM(t, env, `echo "added 2 packages"`)
	srv := fakeOpenAI(t, "export function cache() {}\n")

	// Step 1: Scaffold the project.
	projectDir := filepath.Join(env.ProjectDir, "orders-api")
	result, err := scaffold.Generate(scaffold.DefaultTemplate, scaffold.NewProjectData(projectDir, "stackseed"), projectDir)
	if err != nil {
		t.Fatalf("scaffold.Generate: %v", err)
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	assertFileContains(t, filepath.Join(projectDir, "package.json"), `"name": "orders-api"`)
	assertFileContains(t, filepath.Join(projectDir, ".gitignore"), "node_modules/")
	assertFileExists(t, filepath.Join(projectDir, "src", "app.js"))

	// Step 2: Copy a bundled snippet and install its packages.
	m, progress := newMaterializer(t, env, npm, srv.URL+"/", nil)
	res, err := m.CopyPredefined(context.Background(), "mongodb-connection", projectDir)
	if err != nil {
		t.Fatalf("CopyPredefined: %v", err)
	}
	if res.Install == nil || res.Install.Status != installer.StatusInstalled {
		t.Fatalf("install result = %+v", res.Install)
	}
	if got, want := recordedArgs(t, projectDir), []string{"install", "mongoose", "dotenv"}; !reflect.DeepEqual(got, want) {
		t.Errorf("npm args = %v, want %v", got, want)
	}
	bundled, _ := snippet.Bundled().Read("mongodb-connection")
	copied, _ := os.ReadFile(filepath.Join(projectDir, "mongodb-connection.js"))
	if !bytes.Equal(bundled, copied) {
		t.Error("copied snippet differs from bundled content")
	}

	// Step 3: Generate an AI snippet with a stored key.
	cfg, err := config.Open(env.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set(config.KeyAPIKey, "sk-integration"); err != nil {
		t.Fatal(err)
	}

	res, err = m.GenerateWithAI(context.Background(), "redis-cache", projectDir)
	if err != nil {
		t.Fatalf("GenerateWithAI: %v", err)
	}
	assertFileContains(t, filepath.Join(projectDir, "redis-cache.js"), "export function cache() {}")
	if !strings.Contains(res.Notice, "No predefined dependencies found for redis-cache") {
		t.Errorf("Notice = %q", res.Notice)
	}
	if !strings.Contains(progress.String(), "Generating code snippet for redis-cache...") {
		t.Errorf("progress = %q", progress.String())
	}

	// No temp files are left behind.
	matches, _ := filepath.Glob(filepath.Join(projectDir, ".*.tmp"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

// TestAIFlowPromptsOnceAndPersists checks that a missing key is asked for
// once, saved, and reused by the next run without prompting.
func TestAIFlowPromptsOnceAndPersists(t *testing.T) {
	env := setupTestEnv(t)
	npm := writeFakeNPM(t, env, `echo "warn deprecated" >&2`)
	srv := fakeOpenAI(t, "export const hash = () => {};\n")

	prompter := &credential.TerminalPrompter{In: strings.NewReader("sk-typed\n"), Out: &bytes.Buffer{}}
	m, _ := newMaterializer(t, env, npm, srv.URL+"/", prompter)

	res, err := m.GenerateWithAI(context.Background(), "password-hashing", env.ProjectDir)
	if err != nil {
		t.Fatalf("GenerateWithAI: %v", err)
	}
	if res.Install == nil || res.Install.Status != installer.StatusInstalledWithWarnings {
		t.Fatalf("install result = %+v", res.Install)
	}
	assertFileContains(t, env.ConfigPath, "sk-typed")

	// A fresh run with no input available must still succeed from the file.
	m2, _ := newMaterializer(t, env, npm, srv.URL+"/",
		&credential.TerminalPrompter{In: strings.NewReader(""), Out: &bytes.Buffer{}})
	if _, err := m2.GenerateWithAI(context.Background(), "password-hashing", env.ProjectDir); err != nil {
		t.Fatalf("second GenerateWithAI: %v", err)
	}
}

// TestFailuresLeaveNoFiles covers the failure paths that must not write.
func TestFailuresLeaveNoFiles(t *testing.T) {
	env := setupTestEnv(t)
	npm := writeFakeNPM(t, env, "")
	srv := fakeOpenAI(t, "")

	m, _ := newMaterializer(t, env, npm, srv.URL+"/",
		&credential.TerminalPrompter{In: strings.NewReader(""), Out: &bytes.Buffer{}})

	if _, err := m.CopyPredefined(context.Background(), "no-such-snippet", env.ProjectDir); !errors.Is(err, snippet.ErrNotFound) {
		t.Errorf("CopyPredefined error = %v, want ErrNotFound", err)
	}
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "no-such-snippet.js"))

	if _, err := m.GenerateWithAI(context.Background(), "redis-cache", env.ProjectDir); !errors.Is(err, credential.ErrCredentialMissing) {
		t.Errorf("GenerateWithAI error = %v, want ErrCredentialMissing", err)
	}

	t.Setenv("STACKSEED_API_KEY", "sk-env")
	if _, err := m.GenerateWithAI(context.Background(), "redis-cache", env.ProjectDir); !errors.Is(err, ai.ErrRequestFailed) {
		t.Errorf("GenerateWithAI error = %v, want ErrRequestFailed for empty reply", err)
	}
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "redis-cache.js"))
}

// TestInstallFailureKeepsSnippet checks that a failing package manager is
// reported while the copied snippet stays in place.
func TestInstallFailureKeepsSnippet(t *testing.T) {
	env := setupTestEnv(t)
	npm := writeFakeNPM(t, env, `echo "npm ERR! 404 Not Found" >&2; exit 1`)

	m, _ := newMaterializer(t, env, npm, "", nil)
	_, err := m.CopyPredefined(context.Background(), "rate-limiter", env.ProjectDir)
	if !errors.Is(err, installer.ErrInstallFailed) {
		t.Fatalf("error = %v, want ErrInstallFailed", err)
	}
	if !strings.Contains(err.Error(), "404 Not Found") {
		t.Errorf("error should carry stderr, got %v", err)
	}
	assertFileExists(t, filepath.Join(env.ProjectDir, "rate-limiter.js"))
}

// TestCreateProjectMergesGitignore re-runs the scaffolder over an existing
// project and checks user edits to .gitignore survive.
func TestCreateProjectMergesGitignore(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.ProjectDir, ".gitignore"), "secrets/\n")

	for i := 0; i < 2; i++ {
		if _, err := scaffold.Generate(scaffold.DefaultTemplate, scaffold.NewProjectData(env.ProjectDir, "stackseed"), env.ProjectDir); err != nil {
			t.Fatalf("Generate run %d: %v", i+1, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(env.ProjectDir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "secrets/\n") {
		t.Errorf(".gitignore lost user entries:\n%s", data)
	}
	if n := strings.Count(string(data), "node_modules/"); n != 1 {
		t.Errorf("node_modules/ appears %d times, want 1", n)
	}
}
