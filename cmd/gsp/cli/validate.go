package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/dimchat/gsp/internal/provider"
)

var validateStations bool

var validateCmd = &cobra.Command{
	Use:   "validate REF...",
	Short: "Check provider documents without merging them",
	Long: `Check each document on its own and list every problem found.

With --stations, documents are read as station tables instead of provider
records.

Examples:
  gsp validate ./gsp.js
  gsp validate --stations ./stations.js`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStations, "stations", false, "documents are station tables")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	invalid := 0
	for _, ref := range args {
		data, err := registry.Read(cmd.Context(), ref)
		if err == nil {
			if validateStations {
				_, err = provider.ParseStations(data)
			} else {
				_, err = provider.Parse(data)
			}
		}

		if err == nil {
			printer.Check(true, ref, "")
			continue
		}
		invalid++
		problems := validationProblems(err)
		if len(problems) == 0 {
			printer.Check(false, ref, err.Error())
			continue
		}
		printer.Check(false, ref, fmt.Sprintf("%d problem(s)", len(problems)))
		for _, problem := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", problem)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d documents invalid", invalid, len(args))
	}
	return nil
}

// validationProblems lists each *ValidationError inside err, or nothing
// when err is not a validation failure.
func validationProblems(err error) []string {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return nil
	}
	var out []string
	for _, e := range merr.Errors {
		var verr *provider.ValidationError
		if errors.As(e, &verr) {
			out = append(out, verr.Error())
		}
	}
	return out
}
