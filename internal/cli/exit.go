package cli

import (
	"errors"
	"fmt"

	"github.com/stackseed-labs/stackseed/internal/ai"
	"github.com/stackseed-labs/stackseed/internal/credential"
	"github.com/stackseed-labs/stackseed/internal/installer"
	"github.com/stackseed-labs/stackseed/internal/materialize"
	"github.com/stackseed-labs/stackseed/internal/scaffold"
	"github.com/stackseed-labs/stackseed/internal/snippet"
)

// ErrInvalidName marks snippet names that are not lowercase kebab-case
// identifiers. Such a name is never in the store, so validateName reports it
// as snippet.ErrNotFound as well.
var ErrInvalidName = errors.New("names must match [a-z0-9][a-z0-9-]*")

// Process exit codes, one per failure kind.
const (
	ExitOK                = 0
	ExitGeneric           = 1
	ExitNotFound          = 2
	ExitMissingDependency = 3
	ExitCredential        = 4
	ExitAIRequest         = 5
	ExitInstall           = 6
	ExitFileSystem        = 7
)

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, snippet.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, materialize.ErrMissingDependencyEntry):
		return ExitMissingDependency
	case errors.Is(err, credential.ErrCredentialMissing):
		return ExitCredential
	case errors.Is(err, ai.ErrRequestFailed), errors.Is(err, ai.ErrUnknownProvider):
		return ExitAIRequest
	case errors.Is(err, installer.ErrInstallFailed), errors.Is(err, installer.ErrUnknownManager):
		return ExitInstall
	case errors.Is(err, materialize.ErrFileSystem), errors.Is(err, scaffold.ErrFileSystem):
		return ExitFileSystem
	default:
		return ExitGeneric
	}
}

func validateName(name string) error {
	if !snippet.ValidID(name) {
		return fmt.Errorf("%w: %q: %w", snippet.ErrNotFound, name, ErrInvalidName)
	}
	return nil
}
