// Command gridironlabs serves and inspects the processed NFL tables.
//
// Usage:
//
//	gridironlabs serve
//	gridironlabs status
//	gridironlabs players list --team KC
//	gridironlabs show player p-123
//	gridironlabs standings --season 2025
//	gridironlabs sync
//	gridironlabs browse
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zackmeach/gridironlabs/internal/apperr"
)

// jsonOutput switches every read command to JSON output.
var jsonOutput bool

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, banner(err))
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gridironlabs",
		Short:         "Gridiron Labs NFL data explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of tables")

	root.AddCommand(serveCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(entityCmd("players", "List and inspect players"))
	root.AddCommand(entityCmd("teams", "List and inspect teams"))
	root.AddCommand(entityCmd("coaches", "List and inspect coaches"))
	root.AddCommand(showCmd())
	root.AddCommand(gamesCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(standingsCmd())
	root.AddCommand(leadersCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(syncCmd())
	root.AddCommand(tableCmd())
	root.AddCommand(browseCmd())
	return root
}

// banner renders an error as the one-line status shown at the bootstrap
// boundary.
func banner(err error) string {
	kind := apperr.Kind(err)
	if kind == "INTERNAL" {
		return "ERROR: " + err.Error()
	}
	return fmt.Sprintf("ERROR [%s]: %s", kind, err.Error())
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return 3
	case errors.Is(err, apperr.ErrDataValidation):
		return 4
	case errors.Is(err, apperr.ErrMissingDependency):
		return 5
	default:
		return 1
	}
}
