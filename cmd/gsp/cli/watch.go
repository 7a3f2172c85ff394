package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dimchat/gsp/internal/provider"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the provider record periodically and report changes",
	Long: `Load the provider record, then reload it every interval and print what
changed. A failed reload keeps the previous record. Stop with Ctrl-C.

The default interval comes from watch.interval in ~/.gsp/config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "reload interval (default from config, 30s)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval := watchInterval
	if interval <= 0 && globalCfg != nil {
		interval = globalCfg.Watch.Interval
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	holder, err := provider.LoadHolder(ctx, loadProvider)
	if err != nil {
		return err
	}
	cur := holder.Current()
	printer.Infof("Watching %s (%d stations), reloading every %s", cur.ID(), len(cur.Stations()), interval)

	err = holder.Watch(ctx, interval, func(prev, next *provider.Provider) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s updated\n", time.Now().Format(time.TimeOnly), next.ID())
		for _, change := range describeChanges(prev, next) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", change)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// describeChanges lists the differences between two records, one line per
// changed field.
func describeChanges(prev, next *provider.Provider) []string {
	var out []string
	scalar := func(field, a, b string) {
		if a != b {
			out = append(out, fmt.Sprintf("%s: %q -> %q", field, a, b))
		}
	}
	scalar("ID", prev.ID(), next.ID())
	scalar("name", prev.Name(), next.Name())
	scalar("URL", prev.URL(), next.URL())
	scalar("founder", prev.Founder(), next.Founder())
	scalar("owner", prev.Owner(), next.Owner())

	if !slices.Equal(prev.Stations(), next.Stations()) {
		out = append(out, fmt.Sprintf("stations: %d -> %d", len(prev.Stations()), len(next.Stations())))
	}

	for _, name := range unionSorted(prev.APINames(), next.APINames()) {
		a, inPrev := prev.API(name)
		b, inNext := next.API(name)
		switch {
		case !inPrev:
			out = append(out, fmt.Sprintf("API %s added", name))
		case !inNext:
			out = append(out, fmt.Sprintf("API %s removed", name))
		case a != b:
			out = append(out, fmt.Sprintf("API %s: %q -> %q", name, a, b))
		}
	}

	if !slices.Equal(prev.Contacts(), next.Contacts()) {
		out = append(out, fmt.Sprintf("contacts: %d -> %d", len(prev.Contacts()), len(next.Contacts())))
	}
	if !prev.Equal(next) && len(out) == 0 {
		out = append(out, "CA changed")
	}
	return out
}

func unionSorted(a, b []string) []string {
	out := append(slices.Clone(a), b...)
	slices.Sort(out)
	return slices.Compact(out)
}
