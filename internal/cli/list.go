package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stackseed-labs/stackseed/internal/deps"
	"github.com/stackseed-labs/stackseed/internal/snippet"
)

var listJSON bool

var listSnippetsCmd = &cobra.Command{
	Use:   "list-snippets",
	Short: "List the built-in snippets",
	Long:  `List every built-in snippet together with the npm packages it installs.`,
	Args:  cobra.NoArgs,
	RunE:  runListSnippets,
}

func init() {
	listSnippetsCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listSnippetsCmd)
}

// listEntry represents a bundled snippet for display.
type listEntry struct {
	Name         string   `json:"name"`
	File         string   `json:"file"`
	Dependencies []string `json:"dependencies"`
}

func runListSnippets(cmd *cobra.Command, args []string) error {
	store := snippet.Bundled()
	ids, err := store.List()
	if err != nil {
		return fmt.Errorf("listing snippets: %w", err)
	}

	table, err := deps.Default()
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(ids))
	for _, id := range ids {
		packages, _ := table.Lookup(id)
		if packages == nil {
			packages = []string{}
		}
		entries = append(entries, listEntry{
			Name:         id,
			File:         store.FileName(id),
			Dependencies: packages,
		})
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No snippets available.")
		return nil
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tDEPENDENCIES")
	for _, e := range entries {
		packages := strings.Join(e.Dependencies, ", ")
		if packages == "" {
			packages = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", e.Name, packages)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
