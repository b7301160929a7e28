package installer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinNodeVersion is the oldest Node.js release the generated projects target.
const MinNodeVersion = "18.0.0"

var versionPattern = regexp.MustCompile(`v?\d+\.\d+(\.\d+)?([-+][0-9A-Za-z.-]+)?`)

// VersionCheck is the outcome of probing a binary's version.
type VersionCheck struct {
	Binary  string
	Path    string
	Version string
	Minimum string
	// OK reports whether Version satisfies Minimum.
	OK bool
}

// ProbeVersion runs `<binary> --version` and compares the reported version
// against minimum. A missing binary is an error.
func ProbeVersion(ctx context.Context, binary, minimum string) (*VersionCheck, error) {
	check := &VersionCheck{Binary: binary, Minimum: minimum}

	path, err := exec.LookPath(binary)
	if err != nil {
		return check, fmt.Errorf("%s not found: %w", binary, err)
	}
	check.Path = path

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return check, fmt.Errorf("running %s --version: %w", binary, err)
	}

	raw := versionPattern.FindString(out.String())
	if raw == "" {
		return check, fmt.Errorf("no version in %s output %q", binary, strings.TrimSpace(out.String()))
	}
	check.Version = strings.TrimPrefix(raw, "v")

	ok, err := MeetsMinimum(check.Version, minimum)
	if err != nil {
		return check, err
	}
	check.OK = ok
	return check, nil
}

// MeetsMinimum reports whether version >= minimum. A leading "v" on either
// side is tolerated.
func MeetsMinimum(version, minimum string) (bool, error) {
	if minimum == "" {
		return true, nil
	}
	v, err := parseSemver(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	m, err := parseSemver(minimum)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", minimum, err)
	}
	return v.Compare(m) >= 0, nil
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
