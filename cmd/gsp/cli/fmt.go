package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dimchat/gsp/internal/provider"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt REF...",
	Short: "Print the canonical JSON form of one or more documents",
	Long: `Read the given documents, merge them in order, and print the canonical
JSON form of the result. Comments, unknown fields and empty sections are
dropped; YAML input comes out as JSON.

Examples:
  gsp fmt ./gsp.yaml
  gsp fmt builtin://gsp ./overlay.js > gsp.js`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	p, err := provider.Open(cmd.Context(), registry, args...)
	if err != nil {
		return err
	}
	doc, err := provider.Encode(p)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", p.ID(), err)
	}
	_, err = cmd.OutOrStdout().Write(doc)
	return err
}
