package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/registry"
)

var (
	updateProvider     string
	updateKind         string
	updateCreated      string
	updateExpires      string
	updateLastRotated  string
	updateRotationDays int
	updateNotes        string
)

var updateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update a tracked credential's fields",
	Long: `Update a tracked credential. Only the flags you pass are changed;
everything else is left as it was.

Pass an empty --expires to clear the expiry ("never expires") and
--rotation-days 0 to drop the rotation requirement.

Examples:
  keywarden update stripe-prod --expires 2027-06-30
  keywarden update stripe-prod --expires ""
  keywarden update gh-pat --notes "owned by the platform team"`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVarP(&updateProvider, "provider", "p", "", "Issuing provider")
	updateCmd.Flags().StringVarP(&updateKind, "kind", "k", "", "Category: api_key, token, password, ...")
	updateCmd.Flags().StringVar(&updateCreated, "created", "", "Creation date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateExpires, "expires", "", "Expiry date (YYYY-MM-DD, empty to clear)")
	updateCmd.Flags().StringVar(&updateLastRotated, "last-rotated", "", "Last rotation date (YYYY-MM-DD)")
	updateCmd.Flags().IntVar(&updateRotationDays, "rotation-days", 0, "Rotation policy in days (0 = no requirement)")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "Free-text notes")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	applyColorPreference(cmd)

	reg, _, err := openRegistry(cmd)
	if err != nil {
		return commandError(cmd, err)
	}

	// Only explicitly-set flags participate in the merge, so an unset
	// flag never clobbers a stored value.
	var in registry.UpdateInput
	if cmd.Flags().Changed("provider") {
		in.Provider = &updateProvider
	}
	if cmd.Flags().Changed("kind") {
		in.Kind = &updateKind
	}
	if cmd.Flags().Changed("created") {
		in.CreatedAt = &updateCreated
	}
	if cmd.Flags().Changed("expires") {
		in.ExpiresAt = &updateExpires
	}
	if cmd.Flags().Changed("last-rotated") {
		in.LastRotated = &updateLastRotated
	}
	if cmd.Flags().Changed("rotation-days") {
		in.RotationPolicyDays = &updateRotationDays
	}
	if cmd.Flags().Changed("notes") {
		in.Notes = &updateNotes
	}

	rec, err := reg.Update(args[0], in)
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
