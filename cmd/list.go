package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/credential"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked credentials",
	Long: `List all tracked credentials with freshly computed health statuses.

Examples:
  keywarden list
  keywarden list --status critical
  keywarden list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only show records with this status (healthy, warning, critical, expired)")
}

func runList(cmd *cobra.Command, args []string) error {
	applyColorPreference(cmd)

	reg, _, err := openRegistry(cmd)
	if err != nil {
		return commandError(cmd, err)
	}

	records := reg.List()
	if listStatus != "" {
		filtered := make([]credential.Classified, 0, len(records))
		for _, r := range records {
			if r.Evaluation.Status.String() == listStatus {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if jsonMode(cmd) {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		if !quietMode(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), "No credentials tracked.")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROVIDER\tTYPE\tSTATUS\tAGE\tEXPIRES\tPOLICY")
	fmt.Fprintln(w, "----\t--------\t----\t------\t---\t-------\t------")

	for _, r := range records {
		age := "-"
		if r.AgeDays != nil {
			age = fmt.Sprintf("%dd", *r.AgeDays)
		}
		expires := "never"
		if r.ExpiresAt != "" {
			expires = r.ExpiresAt
		}
		policy := "-"
		if r.RotationPolicyDays > 0 {
			policy = fmt.Sprintf("%dd", r.RotationPolicyDays)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Provider, r.Kind, statusLabel(r.Evaluation.Status), age, expires, policy)
	}
	w.Flush()
	return nil
}
