package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dimchat/gsp/internal/provider"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the provider record",
	Long: `Show a summary of the provider record loaded from the configured sources.

Examples:
  gsp show                                # builtin record
  gsp show -s builtin://gsp -s ./gsp.yaml # builtin record with a local overlay
  gsp show --json                         # canonical JSON document`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := loadProvider(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOut {
		doc, err := provider.Encode(p)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(doc)
		return err
	}

	title := p.Name()
	if title == "" {
		title = p.ID()
	}
	printer.Section(title)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	field := func(label, value string) {
		if value == "" {
			value = printer.Dim("-")
		}
		fmt.Fprintf(w, "%s:\t%s\n", label, value)
	}
	field("ID", p.ID())
	field("URL", p.URL())
	field("Founder", p.Founder())
	field("Owner", p.Owner())
	if p.CA() != nil {
		field("CA", "present")
	} else {
		field("CA", "")
	}
	field("Stations", fmt.Sprint(len(p.Stations())))
	field("APIs", strings.Join(p.APINames(), ", "))
	field("Contacts", fmt.Sprint(len(p.Contacts())))
	return w.Flush()
}
