package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dimchat/gsp/internal/provider"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached provider records",
	Long: `Manage the local cache of provider records.

Every successful load refreshes the cache. When the configured sources
cannot be read, gsp falls back to the cached record of the configured
provider (or the first one cached).`,
}

var cacheStationsFor string

var cacheImportCmd = &cobra.Command{
	Use:   "import REF...",
	Short: "Load documents and cache the merged record",
	Long: `Load the given documents, merge them in order, and cache the result.

With --stations ID, the single document is a station table for provider
ID. It is used whenever that provider's cached record has no stations.

Examples:
  gsp cache import builtin://gsp ./overlay.yaml
  gsp cache import --stations gsp@pZG9dRgqerAS26J6CoxBnAf4wwvMj9brpC ./stations.js`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCacheImport,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached providers",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a cached record as canonical JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheShow,
}

var cacheRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a cached provider and its station table",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheRm,
}

func init() {
	cacheImportCmd.Flags().StringVar(&cacheStationsFor, "stations", "", "import a station table for provider `ID`")
	cacheCmd.AddCommand(cacheImportCmd, cacheListCmd, cacheShowCmd, cacheRmCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheImport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if cacheStationsFor != "" {
		if len(args) != 1 {
			return fmt.Errorf("--stations takes exactly one document, got %d", len(args))
		}
		data, err := registry.Read(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		stations, err := provider.ParseStations(data)
		if err != nil {
			return err
		}
		if err := s.SaveStations(cacheStationsFor, stations); err != nil {
			return err
		}
		printer.Infof("Cached %d station(s) for %s", len(stations), cacheStationsFor)
		return nil
	}

	p, err := provider.Open(cmd.Context(), registry, args...)
	if err != nil {
		return err
	}
	if err := s.SaveProvider(p); err != nil {
		return err
	}
	printer.Infof("Cached %s in %s", p.ID(), shortenPath(cachePath))
	return nil
}

func runCacheList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.Providers()
	if err != nil {
		return err
	}

	if jsonOut {
		type jsonRecord struct {
			ID        string `json:"id"`
			UpdatedAt string `json:"updated_at"`
		}
		out := make([]jsonRecord, 0, len(records))
		for _, r := range records {
			out = append(out, jsonRecord{ID: r.ID, UpdatedAt: r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")})
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cached providers.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nCache one with: gsp cache import <ref>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tUPDATED")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\n", r.ID, formatTimeAgo(r.UpdatedAt))
	}
	return w.Flush()
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.Provider(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	doc, err := provider.Encode(p)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(doc)
	return err
}

func runCacheRm(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteProvider(args[0]); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	printer.Infof("Removed %s", args[0])
	return nil
}
