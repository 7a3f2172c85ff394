// Package cli implements the gsp command-line interface using Cobra.
// It loads the service provider record from the configured sources and
// exposes its stations, API templates and contacts.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dimchat/gsp/internal/config"
	"github.com/dimchat/gsp/internal/log"
	"github.com/dimchat/gsp/internal/source"
	"github.com/dimchat/gsp/internal/ui"
)

var (
	verbose   bool
	jsonOut   bool
	sources   []string
	cachePath string

	// Set by PersistentPreRunE.
	globalCfg *config.GlobalConfig
	printer   *ui.Printer

	// registry resolves source references; tests swap in their own readers.
	registry = source.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gsp",
	Short: "gsp - inspect and resolve a service provider record",
	Long: `gsp loads a service provider record: its stations, API URL templates,
and well-known contacts.

Sources are read in order and merged, later documents overriding earlier
ones. References may be file paths, builtin://NAME for the bundled default,
or secretsmanager://[REGION/]SECRET. When every source fails, the last
record cached by a successful load is used instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobal()
		if err != nil {
			cmd.PrintErrf("Warning: %v; using defaults\n", err)
			cfg = config.DefaultGlobalConfig()
		}
		globalCfg = cfg
		if len(sources) == 0 {
			sources = cfg.Sources
		}
		if cachePath == "" {
			cachePath = cfg.Cache
		}

		if err := log.Init(log.Options{
			Verbose:       verbose,
			JSONFormat:    jsonOut,
			DebugDir:      config.DebugDir(),
			RetentionDays: cfg.Debug.RetentionDays,
			Stderr:        cmd.ErrOrStderr(),
		}); err != nil {
			// Non-fatal: the default logger still works.
			cmd.PrintErrf("Warning: failed to initialize debug logging: %v\n", err)
		}

		printer = newPrinter(cmd)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if printer == nil {
			printer = ui.New(os.Stdout, os.Stderr)
		}
		printer.Errorf("%v", err)
	}
	return err
}

func newPrinter(cmd *cobra.Command) *ui.Printer {
	out, outOK := cmd.OutOrStdout().(*os.File)
	errOut, errOK := cmd.ErrOrStderr().(*os.File)
	if outOK && errOK {
		return ui.New(out, errOut)
	}
	return ui.Plain(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringArrayVarP(&sources, "source", "s", nil, "provider source, repeatable (env: GSP_SOURCES)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "cache database path (env: GSP_CACHE)")
}
