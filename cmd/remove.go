package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Stop tracking a credential",
	Long: `Stop tracking a credential. This only deletes the metadata record;
the credential itself is untouched.

Examples:
  keywarden remove stripe-prod`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	reg, _, err := openRegistry(cmd)
	if err != nil {
		return commandError(cmd, err)
	}

	removed, err := reg.Remove(args[0])
	if err != nil {
		return commandError(cmd, err)
	}

	if jsonMode(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "{\"removed\": %q}\n", removed.Name)
		return nil
	}
	if !quietMode(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed.Name)
	}
	return nil
}
