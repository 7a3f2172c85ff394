package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dimchat/gsp/internal/provider"
)

var stationsCmd = &cobra.Command{
	Use:   "stations [ID]",
	Short: "List the provider's stations in preference order",
	Long: `List the provider's stations in preference order, or show one station.

Stations without a host and port are placeholders whose address is
resolved elsewhere; they are listed with "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStations,
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	p, err := loadProvider(cmd.Context())
	if err != nil {
		return err
	}

	stations := p.Stations()
	if len(args) == 1 {
		st, ok := p.Station(args[0])
		if !ok {
			return fmt.Errorf("provider %s has no station %s", p.ID(), args[0])
		}
		stations = []provider.Station{st}
	}

	if jsonOut {
		out, err := provider.EncodeStations(stations)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
		return err
	}

	if len(stations) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stations configured.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tADDRESS")
	for _, st := range stations {
		addr := st.Address()
		if addr == "" {
			addr = "-"
		}
		name := st.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", st.ID, name, addr)
	}
	return w.Flush()
}
