//go:build integration

package integration_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME for the run
	ConfigPath string // STACKSEED_CONFIG
	ProjectDir string // destination for generated files
	BinDir     string // holds the fake package manager
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all stackseed operations are sandboxed. The env vars are restored after
// the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
		BinDir:     t.TempDir(),
	}
	env.ConfigPath = filepath.Join(env.HomeDir, ".stackseed", "config.yaml")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("STACKSEED_CONFIG", env.ConfigPath)
	t.Setenv("STACKSEED_API_KEY", "")

	return env
}

// writeFakeNPM installs a shell script that records its arguments, one per
// line, to npm-args.txt in its working directory and then runs body.
func writeFakeNPM(t *testing.T, env *testEnv, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script package manager not supported on windows")
	}

	path := filepath.Join(env.BinDir, "npm")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > npm-args.txt\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("writing fake npm: %v", err)
	}
	return path
}

// recordedArgs returns the arguments the fake package manager received.
func recordedArgs(t *testing.T, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "npm-args.txt"))
	if err != nil {
		t.Fatalf("reading recorded npm args: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// fakeOpenAI serves a single chat completion whose content is code.
func fakeOpenAI(t *testing.T, code string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		body := `{"id":"chatcmpl-1","object":"chat.completion","created":1700000000,"model":"gpt-4o-mini",` +
			`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":` + quoteJSON(code) + `}}]}`
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func quoteJSON(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
