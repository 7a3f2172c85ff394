package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dimchat/gsp/internal/identity"
)

var verifyContacts bool

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List the provider's well-known contacts",
	Long: `List the provider's well-known contacts with the kind of identifier each
one looks like: an account ID (name@address) or a hex address.

With --verify, also check address checksums and fail if any contact does
not pass.`,
	Args: cobra.NoArgs,
	RunE: runContacts,
}

func init() {
	contactsCmd.Flags().BoolVar(&verifyContacts, "verify", false, "check address checksums")
	rootCmd.AddCommand(contactsCmd)
}

type contactResult struct {
	Contact string `json:"contact"`
	Kind    string `json:"kind"`
	Error   string `json:"error,omitempty"`
}

func runContacts(cmd *cobra.Command, args []string) error {
	p, err := loadProvider(cmd.Context())
	if err != nil {
		return err
	}

	contacts := p.Contacts()
	results := make([]contactResult, 0, len(contacts))
	failed := 0
	for _, c := range contacts {
		r := contactResult{Contact: c, Kind: identity.Detect(c).String()}
		if verifyContacts {
			if _, err := identity.Verify(c); err != nil {
				r.Error = err.Error()
				failed++
			}
		}
		results = append(results, r)
	}

	switch {
	case jsonOut:
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	case len(results) == 0:
		fmt.Fprintln(cmd.OutOrStdout(), "No contacts configured.")
	case verifyContacts:
		for _, r := range results {
			detail := r.Kind
			if r.Error != "" {
				detail = r.Error
			}
			printer.Check(r.Error == "", r.Contact, detail)
		}
	default:
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CONTACT\tKIND")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\n", r.Contact, r.Kind)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d contacts failed verification", failed, len(results))
	}
	return nil
}
