package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrInstallFailed wraps a non-zero exit or a failure to start the process.
var ErrInstallFailed = errors.New("dependency installation failed")

// Status classifies a completed installation.
type Status int

const (
	// StatusSkipped means there was nothing to install; no process ran.
	StatusSkipped Status = iota
	// StatusInstalled means the process exited zero with a quiet stderr.
	StatusInstalled
	// StatusInstalledWithWarnings means a zero exit with output on stderr.
	StatusInstalledWithWarnings
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusInstalled:
		return "installed"
	case StatusInstalledWithWarnings:
		return "installed with warnings"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result captures the outcome of one Install call.
type Result struct {
	Status   Status
	Packages []string
	Command  []string
	Stdout   string
	Stderr   string
}

// Warnings returns the non-empty stderr lines of a successful install.
func (r *Result) Warnings() []string {
	if r == nil || r.Status != StatusInstalledWithWarnings {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(r.Stderr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Installer installs an ordered list of packages into dir.
type Installer interface {
	Install(ctx context.Context, dir string, packages []string) (*Result, error)
}

// Exec runs a package manager as a child process.
type Exec struct {
	Manager Manager
	// Stdout and Stderr, when set, also receive the live process output.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns an installer for the named package manager.
func NewExec(managerName string) (*Exec, error) {
	m, err := LookupManager(managerName)
	if err != nil {
		return nil, err
	}
	return &Exec{Manager: m}, nil
}

// Install spawns one package-manager process with every package as an
// argument and waits for it. An empty package list is a no-op.
func (e *Exec) Install(ctx context.Context, dir string, packages []string) (*Result, error) {
	result := &Result{Packages: append([]string{}, packages...)}
	if len(packages) == 0 {
		result.Status = StatusSkipped
		return result, nil
	}

	args := e.Manager.Args(packages)
	result.Command = append([]string{e.Manager.Binary}, args...)

	bin, err := exec.LookPath(e.Manager.Binary)
	if err != nil {
		return result, fmt.Errorf("%w: %s not found: %w", ErrInstallFailed, e.Manager.Binary, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = teeTo(&stdoutBuf, e.Stdout)
	cmd.Stderr = teeTo(&stderrBuf, e.Stderr)

	err = cmd.Run()
	result.Stdout = stdoutBuf.String()
	result.Stderr = stderrBuf.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return result, fmt.Errorf("%w: %s exited with code %d%s",
				ErrInstallFailed, strings.Join(result.Command, " "), exitErr.ExitCode(), stderrSuffix(result.Stderr))
		}
		return result, fmt.Errorf("%w: running %s: %w", ErrInstallFailed, e.Manager.Binary, err)
	}

	if strings.TrimSpace(result.Stderr) != "" {
		result.Status = StatusInstalledWithWarnings
	} else {
		result.Status = StatusInstalled
	}
	return result, nil
}

func teeTo(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// stderrSuffix renders the last stderr line for inclusion in an error message.
func stderrSuffix(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return ""
	}
	return ": " + last
}
