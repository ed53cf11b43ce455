package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/credential"
	"github.com/keywarden/cli/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit tracked credentials",
	Long: `Audit all tracked credentials and report every one that needs
attention.

The exit code reflects the worst status found, so check works in CI
and cron jobs:
  0  everything healthy
  1  warnings only
  2  at least one critical or expired credential

Examples:
  keywarden check
  keywarden check --json
  keywarden check --quiet && echo "all healthy"`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// auditExitCode maps the worst status to the process exit code.
func auditExitCode(worst credential.Status) int {
	switch worst {
	case credential.StatusExpired, credential.StatusCritical:
		return 2
	case credential.StatusWarning:
		return 1
	default:
		return 0
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	applyColorPreference(cmd)

	reg, _, err := openRegistry(cmd)
	if err != nil {
		return commandError(cmd, err)
	}

	records := reg.List()
	summary := report.Summarize(records)
	worst := report.WorstStatus(records)

	attention := make([]credential.Classified, 0)
	for _, r := range records {
		if r.Evaluation.Status != credential.StatusHealthy {
			attention = append(attention, r)
		}
	}

	out := cmd.OutOrStdout()
	if jsonMode(cmd) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			GeneratedAt time.Time               `json:"generatedAt"`
			Summary     report.Summary          `json:"summary"`
			WorstStatus string                  `json:"worstStatus"`
			Attention   []credential.Classified `json:"attention"`
		}{time.Now().UTC(), summary, string(worst), attention}); err != nil {
			return err
		}
	} else if !quietMode(cmd) {
		fmt.Fprintf(out, "Checked %d credentials: %d healthy, %d warning, %d critical, %d expired\n",
			summary.Total, summary.Healthy, summary.Warning, summary.Critical, summary.Expired)
		if len(attention) > 0 {
			fmt.Fprintln(out)
			for _, r := range attention {
				fmt.Fprintf(out, "%s %s (%s): %s\n",
					report.StatusIcon(r.Evaluation.Status), r.Name, statusLabel(r.Evaluation.Status), r.Message)
			}
		}
	}

	if code := auditExitCode(worst); code != 0 {
		os.Exit(code)
	}
	return nil
}
