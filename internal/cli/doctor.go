package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/stackseed-labs/stackseed/internal/ai"
	"github.com/stackseed-labs/stackseed/internal/branding"
	"github.com/stackseed-labs/stackseed/internal/config"
	"github.com/stackseed-labs/stackseed/internal/deps"
	"github.com/stackseed-labs/stackseed/internal/installer"
	"github.com/stackseed-labs/stackseed/internal/snippet"
)

const probeTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for " + branding.DisplayName(),
	Long: `Run diagnostic checks on the environment: Node.js and the configured package
manager, the config file and stored API key, and the built-in snippet catalog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor{out: cmd.OutOrStdout()}

		d.runtimeChecks(cmd.Context())
		cfg := d.configChecks()
		if cfg != nil {
			d.packageManagerCheck(cmd.Context(), cfg.Get(config.KeyPackageManager))
		}
		d.snippetChecks(snippet.Bundled())

		if d.failures > 0 {
			return fmt.Errorf("doctor found %d problem(s)", d.failures)
		}
		return nil
	},
}

// doctor prints check results and counts failures.
type doctor struct {
	out      io.Writer
	failures int
}

func (d *doctor) section(title string) { fmt.Fprintf(d.out, "%s:\n", title) }

func (d *doctor) ok(format string, args ...interface{}) {
	fmt.Fprintf(d.out, "  [ OK ] "+format+"\n", args...)
}

func (d *doctor) warn(format string, args ...interface{}) {
	fmt.Fprintf(d.out, "  [WARN] "+format+"\n", args...)
}

func (d *doctor) fail(format string, args ...interface{}) {
	d.failures++
	fmt.Fprintf(d.out, "  [FAIL] "+format+"\n", args...)
}

func (d *doctor) runtimeChecks(ctx context.Context) {
	d.section("Runtime check")
	d.versionCheck(ctx, "node", installer.MinNodeVersion)
}

func (d *doctor) packageManagerCheck(ctx context.Context, name string) {
	d.section("Package manager check")
	m, err := installer.LookupManager(name)
	if err != nil {
		d.fail("%v", err)
		return
	}
	d.versionCheck(ctx, m.Binary, m.MinVersion)
}

func (d *doctor) versionCheck(ctx context.Context, binary, minimum string) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	check, err := installer.ProbeVersion(ctx, binary, minimum)
	switch {
	case err != nil && check.Path == "":
		d.fail("%s not found on PATH", binary)
	case err != nil:
		d.warn("%s found at %s but version is unknown: %v", binary, check.Path, err)
	case !check.OK:
		d.fail("%s %s is older than the required %s", binary, check.Version, minimum)
	default:
		d.ok("%s %s found at %s", binary, check.Version, check.Path)
	}
}

// configChecks validates the config file and returns it when readable.
func (d *doctor) configChecks() *config.Config {
	d.section("Config check")

	path := config.FilePath()
	if _, err := os.Stat(path); err != nil {
		d.warn("%s does not exist yet (created on first `config set` or API key prompt)", path)
	}

	cfg, err := config.Open(path)
	if err != nil {
		d.fail("%v", err)
		return nil
	}
	d.ok("config readable at %s", path)

	provider := cfg.Get(config.KeyProvider)
	if _, err := ai.New(provider, ai.Options{}); err != nil {
		d.fail("%v", err)
	} else {
		d.ok("AI provider: %s", provider)
	}

	if key := cfg.Get(config.KeyAPIKey); key != "" {
		d.ok("API key stored (%s)", maskSecret(key))
	} else {
		d.warn("no API key stored; generate-ai-snippet will ask for one")
	}
	return cfg
}

func (d *doctor) snippetChecks(store *snippet.FSStore) {
	d.section("Snippet catalog check")

	table, err := deps.Default()
	if err != nil {
		d.fail("%v", err)
		return
	}
	ids, err := store.List()
	if err != nil {
		d.fail("listing snippets: %v", err)
		return
	}

	missing := missingDependencyEntries(ids, table)
	for _, id := range missing {
		d.fail("snippet %s has no dependency entry", id)
	}
	if len(missing) == 0 {
		d.ok("%d snippets, all with dependency entries", len(ids))
	}
}

// missingDependencyEntries returns the ids absent from table, in order.
func missingDependencyEntries(ids []string, table deps.Table) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := table.Lookup(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
