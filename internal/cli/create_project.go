package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stackseed-labs/stackseed/internal/branding"
	"github.com/stackseed-labs/stackseed/internal/scaffold"
)

var createOutputDir string

func init() {
	createProjectCmd.Flags().StringVar(&createOutputDir, "output-dir", "", "Output directory (default: current directory)")
	rootCmd.AddCommand(createProjectCmd)
}

var createProjectCmd = &cobra.Command{
	Use:   "create-project",
	Short: "Generate the backend project structure",
	Long: `Generate an Express backend project structure from the built-in template.

Files are written into the current directory (or --output-dir). Files with the
same name are overwritten; nothing else is removed. A .gitignore is created or
extended with the usual Node.js entries.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, err := resolveDestDir(createOutputDir)
		if err != nil {
			return fmt.Errorf("resolving output directory: %w", err)
		}

		data := scaffold.NewProjectData(outDir, branding.CLIName())
		result, err := scaffold.Generate(scaffold.DefaultTemplate, data, outDir)
		if err != nil {
			return fmt.Errorf("generating project structure: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created project %s at %s/\n", data.Name, result.OutputDir)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "  - %s\n", w)
			}
		}

		fmt.Fprintln(out, "\nProject structure created successfully!")
		fmt.Fprintln(out, "\nFollow the steps to get started:")
		fmt.Fprintln(out, "  1. cd <your_project_directory>")
		fmt.Fprintln(out, "  2. npm install")
		fmt.Fprintln(out, "  3. npm run start")
		return nil
	},
}
