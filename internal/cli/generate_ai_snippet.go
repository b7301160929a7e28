package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stackseed-labs/stackseed/internal/ai"
	"github.com/stackseed-labs/stackseed/internal/config"
)

var (
	aiOutputDir   string
	aiProvider    string
	aiModel       string
	aiTimeout     string
	aiSkipInstall bool
)

func init() {
	generateAISnippetCmd.Flags().StringVar(&aiOutputDir, "output-dir", "", "Directory to write the snippet into (default: current directory)")
	generateAISnippetCmd.Flags().StringVar(&aiProvider, "provider", "", "AI provider ("+strings.Join(ai.Providers(), ", ")+"; default from config)")
	generateAISnippetCmd.Flags().StringVar(&aiModel, "model", "", "Model name (default depends on provider)")
	generateAISnippetCmd.Flags().StringVar(&aiTimeout, "timeout", "", "Maximum time to wait for the AI response, e.g. 90s")
	generateAISnippetCmd.Flags().BoolVar(&aiSkipInstall, "skip-install", false, "Write the snippet without installing its dependencies")
	rootCmd.AddCommand(generateAISnippetCmd)
}

var generateAISnippetCmd = &cobra.Command{
	Use:   "generate-ai-snippet <snippetName>",
	Short: "Generate a code snippet using an AI model",
	Long: `Ask an AI model to write a snippet for the given name and save it in the
current directory. Known snippet names also get their npm packages installed.

The API key is read from the config file. When none is stored you are asked
for it once and it is saved for later runs.

Example:
  stackseed generate-ai-snippet redis-cache --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateName(name); err != nil {
			return err
		}

		destDir, err := resolveDestDir(aiOutputDir)
		if err != nil {
			return fmt.Errorf("resolving output directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		m, err := newMaterializer(cmd, cfg, materializerOptions{
			provider:    aiProvider,
			model:       aiModel,
			timeout:     aiTimeout,
			skipInstall: aiSkipInstall,
			useAI:       true,
		})
		if err != nil {
			return err
		}

		result, err := m.GenerateWithAI(cmd.Context(), name, destDir)
		printMaterialized(cmd, result, err)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nGenerated snippet %q saved in %s\n", name, destDir)
		return nil
	},
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --timeout %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid --timeout %q: must be positive", s)
	}
	return d, nil
}
