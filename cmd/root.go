package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keywarden",
	Short: "Keywarden - track the lifecycle of your API keys and tokens",
	Long: `Keywarden tracks metadata about your credentials - creation date,
expiry, last rotation and rotation policy - and tells you which ones
need attention. It never stores, transmits or validates the secret
values themselves.

Use it to keep an inventory of API keys, tokens and passwords and to
catch expiring or rotation-overdue credentials before they break
something.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "credential store file (default: .keywarden.json, then ~/.keywarden/secrets.json)")
	rootCmd.PersistentFlags().Bool("json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}
