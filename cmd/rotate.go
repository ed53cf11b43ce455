package cmd

import (
	"github.com/spf13/cobra"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate <name>",
	Short: "Mark a credential as rotated today",
	Long: `Mark a credential as rotated today and recompute its status.

Run this after you have actually rotated the secret with its provider;
keywarden only records that the rotation happened.

Examples:
  keywarden rotate stripe-prod`,
	Args: cobra.ExactArgs(1),
	RunE: runRotate,
}

func init() {
	rootCmd.AddCommand(rotateCmd)
}

func runRotate(cmd *cobra.Command, args []string) error {
	applyColorPreference(cmd)

	reg, _, err := openRegistry(cmd)
	if err != nil {
		return commandError(cmd, err)
	}

	rec, err := reg.Rotate(args[0])
	if err != nil {
		return commandError(cmd, err)
	}

	if jsonMode(cmd) {
		return printRecordJSON(cmd.OutOrStdout(), rec)
	}
	if !quietMode(cmd) {
		printRecord(cmd.OutOrStdout(), rec)
	}
	return nil
}
