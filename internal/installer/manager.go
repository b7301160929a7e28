package installer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownManager is returned for an unsupported package manager name.
var ErrUnknownManager = errors.New("unknown package manager")

// Manager describes how to invoke one package manager.
type Manager struct {
	Name string
	// Binary is looked up on PATH unless it contains a path separator.
	Binary string
	// InstallArgs precede the package names, e.g. ["install"].
	InstallArgs []string
	// MinVersion is the oldest release doctor accepts.
	MinVersion string
}

var managers = map[string]Manager{
	"npm":  {Name: "npm", Binary: "npm", InstallArgs: []string{"install"}, MinVersion: "7.0.0"},
	"pnpm": {Name: "pnpm", Binary: "pnpm", InstallArgs: []string{"add"}, MinVersion: "7.0.0"},
	"yarn": {Name: "yarn", Binary: "yarn", InstallArgs: []string{"add"}, MinVersion: "1.22.0"},
	"bun":  {Name: "bun", Binary: "bun", InstallArgs: []string{"add"}, MinVersion: "1.0.0"},
}

// LookupManager returns the Manager registered under name.
func LookupManager(name string) (Manager, error) {
	m, ok := managers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Manager{}, fmt.Errorf("%w %q: supported managers are %s",
			ErrUnknownManager, name, strings.Join(ManagerNames(), ", "))
	}
	m.InstallArgs = append([]string{}, m.InstallArgs...)
	return m, nil
}

// ManagerNames returns every supported manager name, sorted.
func ManagerNames() []string {
	names := make([]string, 0, len(managers))
	for name := range managers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Args returns the full argument list for installing packages, order preserved.
func (m Manager) Args(packages []string) []string {
	args := make([]string, 0, len(m.InstallArgs)+len(packages))
	args = append(args, m.InstallArgs...)
	return append(args, packages...)
}
