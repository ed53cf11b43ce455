package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/update"
)

// Version is the release version, stamped at build time.
var Version = "dev"

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the keywarden version",
	Long: `Print the keywarden version.

With --check, also query GitHub for the latest release and report
whether an upgrade is available.`,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "keywarden %s\n", Version)

	if !versionCheck {
		return nil
	}

	tag, url, err := update.NewChecker().Latest(cmd.Context())
	if err != nil {
		return commandError(cmd, fmt.Errorf("failed to check for updates: %w", err))
	}
	if update.IsNewer(Version, tag) {
		fmt.Fprintf(out, "A newer release is available: %s\n", tag)
		fmt.Fprintf(out, "  %s\n", url)
	} else {
		fmt.Fprintln(out, "You are up to date.")
	}
	return nil
}
