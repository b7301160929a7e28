package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stackseed-labs/stackseed/internal/ai"
	"github.com/stackseed-labs/stackseed/internal/config"
	"github.com/stackseed-labs/stackseed/internal/credential"
	"github.com/stackseed-labs/stackseed/internal/deps"
	"github.com/stackseed-labs/stackseed/internal/installer"
	"github.com/stackseed-labs/stackseed/internal/materialize"
	"github.com/stackseed-labs/stackseed/internal/snippet"
)

// Constructors for the collaborators that touch the outside world. Tests
// replace them.
var (
	newPrompter = func(cmd *cobra.Command) credential.Prompter {
		return credential.NewTerminalPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
	newInstaller = func(manager string) (installer.Installer, error) {
		return installer.NewExec(manager)
	}
	newGenerator = ai.New
)

// materializerOptions carries the per-invocation flags shared by the
// generate commands.
type materializerOptions struct {
	provider    string
	model       string
	timeout     string
	skipInstall bool

	// useAI validates the provider up front, before any credential prompt.
	useAI bool
}

// newMaterializer assembles a Materializer from the config file and flags.
func newMaterializer(cmd *cobra.Command, cfg *config.Config, opts materializerOptions) (*materialize.Materializer, error) {
	table, err := deps.Default()
	if err != nil {
		return nil, err
	}

	var inst installer.Installer
	if !opts.skipInstall {
		inst, err = newInstaller(cfg.Get(config.KeyPackageManager))
		if err != nil {
			return nil, err
		}
	}

	provider := firstNonEmpty(opts.provider, cfg.Get(config.KeyProvider))
	if opts.useAI {
		if err := ai.CheckProvider(provider); err != nil {
			return nil, err
		}
	}
	genOpts := ai.Options{
		Model:   firstNonEmpty(opts.model, cfg.Get(config.KeyModel)),
		BaseURL: cfg.Get(config.KeyBaseURL),
	}

	timeout := cfg.Duration(config.KeyAITimeout, materialize.DefaultTimeout)
	if opts.timeout != "" {
		d, err := parseTimeout(opts.timeout)
		if err != nil {
			return nil, err
		}
		timeout = d
	}

	creds := credential.NewProvider(
		credential.NewFileStore(cfg.Path()),
		newPrompter(cmd),
		cmd.ErrOrStderr(),
	)

	return &materialize.Materializer{
		Store:       snippet.Bundled(),
		Deps:        table,
		Installer:   inst,
		Credentials: creds,
		NewGenerator: func(apiKey string) (ai.Generator, error) {
			o := genOpts
			o.APIKey = apiKey
			return newGenerator(provider, o)
		},
		Timeout:     timeout,
		SkipInstall: opts.skipInstall,
		Progress:    cmd.ErrOrStderr(),
	}, nil
}

// resolveDestDir returns the destination directory: the flag value, or the
// current working directory.
func resolveDestDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	return os.Getwd()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
