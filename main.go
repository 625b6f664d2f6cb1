// Package main provides the entry point for the MasjidApp API server and its
// maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCommand creates the masjidapp command tree.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "masjidapp",
		Short:         "MasjidApp API server",
		Long:          "Serves events, prayer times, ask-the-imam and announcements from a cached postgres store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())

	return cmd
}
