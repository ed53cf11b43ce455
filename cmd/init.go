package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/config"
	"github.com/keywarden/cli/internal/store"
)

var (
	initTier  string
	initLocal bool
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new credential store",
	Long: `Create a new credential store.

By default the store lives at ~/.keywarden/secrets.json. With --local
it is created as .keywarden.json in the current directory instead; a
local store always takes precedence over the global one.

Examples:
  keywarden init
  keywarden init --local
  keywarden init --tier pro --force`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initTier, "tier", "", "registry tier: free or pro (default from config, else free)")
	initCmd.Flags().BoolVar(&initLocal, "local", false, "create the store in the current directory")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing store")
}

func runInit(cmd *cobra.Command, args []string) error {
	tier := initTier
	if tier == "" {
		if cfg, err := config.Load(); err == nil && cfg.Tier != "" {
			tier = cfg.Tier
		} else {
			tier = "free"
		}
	}
	if tier != "free" && tier != "pro" {
		return commandError(cmd, fmt.Errorf("unknown tier %q: expected free or pro", tier))
	}

	path, _ := cmd.Flags().GetString("store")
	if path == "" {
		if initLocal {
			path = store.LocalPath()
		} else {
			var err error
			path, err = store.GlobalPath()
			if err != nil {
				return commandError(cmd, err)
			}
		}
	}

	f, err := store.Create(path, tier, initForce)
	if err != nil {
		return commandError(cmd, err)
	}

	if jsonMode(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "{\"path\": %q, \"tier\": %q}\n", f.Path(), tier)
		return nil
	}
	if !quietMode(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s-tier credential store at %s\n", tier, f.Path())
	}
	return nil
}
