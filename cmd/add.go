package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/registry"
)

var (
	addName         string
	addProvider     string
	addKind         string
	addCreated      string
	addExpires      string
	addLastRotated  string
	addRotationDays int
	addNotes        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Track a new credential",
	Long: `Track a new credential's metadata. Keywarden records dates and a
rotation policy, never the secret value itself.

Dates are YYYY-MM-DD. An omitted creation date defaults to today, and
the last-rotation date defaults to the creation date. The rotation
policy defaults to 90 days; pass --rotation-days 0 for credentials
with no rotation requirement.

Examples:
  keywarden add --name stripe-prod --provider stripe
  keywarden add --name gh-pat --provider github --kind pat --expires 2027-01-31
  keywarden add --name legacy-db --rotation-days 0 --notes "deprecated, removal planned"`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Unique name for the credential (required)")
	addCmd.Flags().StringVarP(&addProvider, "provider", "p", "", "Issuing provider, e.g. stripe, aws, github")
	addCmd.Flags().StringVarP(&addKind, "kind", "k", "", "Category: api_key, token, password, ...")
	addCmd.Flags().StringVar(&addCreated, "created", "", "Creation date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addExpires, "expires", "", "Expiry date (YYYY-MM-DD, default never)")
	addCmd.Flags().StringVar(&addLastRotated, "last-rotated", "", "Last rotation date (YYYY-MM-DD)")
	addCmd.Flags().IntVar(&addRotationDays, "rotation-days", registry.DefaultRotationPolicyDays, "Rotation policy in days (0 = no requirement)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-text notes")
	addCmd.MarkFlagRequired("name")
}

func runAdd(cmd *cobra.Command, args []string) error {
	reg, _, err := openRegistry(cmd)
	if err != nil {
		return commandError(cmd, err)
	}

	rotationDays := addRotationDays
	rec, err := reg.Add(registry.AddInput{
		Name:               addName,
		Provider:           addProvider,
		Kind:               addKind,
		CreatedAt:          addCreated,
		ExpiresAt:          addExpires,
		LastRotated:        addLastRotated,
		RotationPolicyDays: &rotationDays,
		Notes:              addNotes,
	})
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
