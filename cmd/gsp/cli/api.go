package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dimchat/gsp/internal/provider"
)

var apiSubs []string

var apiCmd = &cobra.Command{
	Use:   "api [NAME]",
	Short: "List API templates or resolve one to a URL",
	Long: `Without NAME, list every API template. With NAME, substitute the given
tokens into its template and print the URL. Tokens without a value are
left in place and reported.

Examples:
  gsp api
  gsp api upload --set ID=moky@4DnqXWdTV8wuZgfqSCX9GjE2kNq7HJrUgQ --set MD5=abc --set SALT=1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringArrayVar(&apiSubs, "set", nil, "token substitution TOKEN=VALUE, repeatable")
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	p, err := loadProvider(cmd.Context())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return listAPIs(cmd, p)
	}

	subs, err := parseSubs(apiSubs)
	if err != nil {
		return err
	}

	name := args[0]
	url, err := p.ResolveAPI(name, subs)
	if errors.Is(err, provider.ErrUnknownAPI) {
		if names := p.APINames(); len(names) > 0 {
			return fmt.Errorf("%w (defined: %s)", err, strings.Join(names, ", "))
		}
		return err
	}
	if err != nil {
		return err
	}
	tmpl, _ := p.API(name)
	unresolved := unresolvedTokens(tmpl, subs)

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), struct {
			Name       string   `json:"name"`
			Template   string   `json:"template"`
			URL        string   `json:"url"`
			Unresolved []string `json:"unresolved,omitempty"`
		}{name, tmpl, url, unresolved})
	}

	fmt.Fprintln(cmd.OutOrStdout(), url)
	if len(unresolved) > 0 {
		printer.Warnf("unresolved tokens: %s", strings.Join(unresolved, ", "))
	}
	return nil
}

func listAPIs(cmd *cobra.Command, p *provider.Provider) error {
	names := p.APINames()
	if jsonOut {
		out := make(map[string]string, len(names))
		for _, name := range names {
			out[name], _ = p.API(name)
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No APIs configured.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTEMPLATE")
	for _, name := range names {
		tmpl, _ := p.API(name)
		fmt.Fprintf(w, "%s\t%s\n", name, tmpl)
	}
	return w.Flush()
}

// unresolvedTokens lists the template's tokens that subs does not cover.
// It looks at the template, not the result, so a value that itself
// contains braces is not mistaken for a token.
func unresolvedTokens(tmpl string, subs map[string]string) []string {
	var out []string
	for _, token := range provider.Placeholders(tmpl) {
		if _, ok := subs[token]; !ok {
			out = append(out, token)
		}
	}
	return out
}

// parseSubs turns TOKEN=VALUE pairs into a substitution map. VALUE may
// contain '=' and may be empty.
func parseSubs(pairs []string) (map[string]string, error) {
	subs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		token, value, ok := strings.Cut(pair, "=")
		if !ok || token == "" {
			return nil, fmt.Errorf("invalid --set %q: want TOKEN=VALUE", pair)
		}
		subs[token] = value
	}
	return subs, nil
}
