package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GitignoreFile is the name of the generated ignore file.
const GitignoreFile = ".gitignore"

// DefaultIgnoreEntries are written to the .gitignore of a new project.
var DefaultIgnoreEntries = []string{
	"node_modules/",
	".env",
	"logs/",
	"*.log",
	"uploads/",
	"coverage/",
	"dist/",
	".DS_Store",
}

// EnsureGitignore appends every entry missing from dir/.gitignore, creating
// the file if needed. Entries already present are left alone, so running it
// twice is a no-op.
func EnsureGitignore(dir string, entries []string) error {
	gitignorePath := filepath.Join(dir, GitignoreFile)

	content, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading .gitignore: %w", err)
	}

	present := make(map[string]bool)
	for _, l := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(l)] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
			present[e] = true
		}
	}
	if len(missing) == 0 {
		return nil
	}

	suffix := strings.Join(missing, "\n") + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening .gitignore for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return fmt.Errorf("writing to .gitignore: %w", err)
	}
	return nil
}
