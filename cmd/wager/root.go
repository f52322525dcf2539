package main

import (
	"github.com/spf13/cobra"
)

var rootFlags struct {
	home string
	dev  bool
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wager",
		Short:         "wager runs the ledger, store and match engines",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&rootFlags.home, "home", ".wager", "directory holding the node configuration")
	cmd.PersistentFlags().BoolVar(&rootFlags.dev, "dev", false, "console logging at debug level")
	cmd.AddCommand(
		newInitCmd(),
		newRunCmd(),
	)
	return cmd
}

// Execute runs the root command, errors are reported by cobra itself.
func Execute() error {
	return newRootCmd().Execute()
}
