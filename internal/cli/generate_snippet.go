package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stackseed-labs/stackseed/internal/config"
	"github.com/stackseed-labs/stackseed/internal/installer"
	"github.com/stackseed-labs/stackseed/internal/materialize"
)

var (
	snippetOutputDir   string
	snippetSkipInstall bool
)

func init() {
	generateSnippetCmd.Flags().StringVar(&snippetOutputDir, "output-dir", "", "Directory to write the snippet into (default: current directory)")
	generateSnippetCmd.Flags().BoolVar(&snippetSkipInstall, "skip-install", false, "Write the snippet without installing its dependencies")
	rootCmd.AddCommand(generateSnippetCmd)
}

var generateSnippetCmd = &cobra.Command{
	Use:   "generate-snippet <snippetName>",
	Short: "Generate a code snippet in a new file",
	Long: `Copy a built-in snippet into the current directory and install the npm
packages it needs.

Run 'stackseed list-snippets' to see the available names.

Example:
  stackseed generate-snippet jwt-based-authentication`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateName(name); err != nil {
			return err
		}

		destDir, err := resolveDestDir(snippetOutputDir)
		if err != nil {
			return fmt.Errorf("resolving output directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		m, err := newMaterializer(cmd, cfg, materializerOptions{skipInstall: snippetSkipInstall})
		if err != nil {
			return err
		}

		result, err := m.CopyPredefined(cmd.Context(), name, destDir)
		printMaterialized(cmd, result, err)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nSnippet %q has been successfully created in %s\n", name, destDir)
		return nil
	},
}

// printMaterialized reports the written file and installer output. A failed
// install still reports the file, which is kept.
func printMaterialized(cmd *cobra.Command, result *materialize.Result, err error) {
	if result == nil {
		return
	}
	out := cmd.OutOrStdout()

	if result.Path != "" {
		fmt.Fprintf(out, "Wrote %s\n", result.Path)
	}
	if result.Notice != "" {
		fmt.Fprintln(out, result.Notice)
	}
	if err != nil || result.Install == nil {
		return
	}
	printInstall(out, cmd.ErrOrStderr(), result.Install)
}

func printInstall(out, errOut io.Writer, res *installer.Result) {
	if res.Status == installer.StatusSkipped {
		fmt.Fprintln(out, "No packages to install.")
		return
	}
	for _, w := range res.Warnings() {
		fmt.Fprintf(errOut, "Warning: %s\n", w)
	}
	if s := strings.TrimSpace(res.Stdout); s != "" {
		fmt.Fprintln(out, s)
	}
	fmt.Fprintf(out, "Installed: %s\n", strings.Join(res.Packages, ", "))
}
