// Package report renders a classified credential inventory as text,
// JSON or Markdown. Renderers are pure: they consume the status,
// age and expiry values already computed by the classification engine
// and never re-derive them.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/keywarden/cli/internal/credential"
)

const (
	// FormatText is human-readable text output.
	FormatText = "text"
	// FormatJSON is JSON output.
	FormatJSON = "json"
	// FormatMarkdown is Markdown output.
	FormatMarkdown = "markdown"
)

// Summary counts records by status.
type Summary struct {
	Total    int `json:"total"`
	Healthy  int `json:"healthy"`
	Warning  int `json:"warning"`
	Critical int `json:"critical"`
	Expired  int `json:"expired"`
}

// Summarize tallies the status counts of a record list.
func Summarize(records []credential.Classified) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Evaluation.Status {
		case credential.StatusExpired:
			s.Expired++
		case credential.StatusCritical:
			s.Critical++
		case credential.StatusWarning:
			s.Warning++
		default:
			s.Healthy++
		}
	}
	return s
}

// WorstStatus returns the most severe status present, or healthy for
// an empty list. The audit exit-code policy keys off this.
func WorstStatus(records []credential.Classified) credential.Status {
	worst := credential.StatusHealthy
	for _, r := range records {
		if r.Evaluation.Status.Rank() > worst.Rank() {
			worst = r.Evaluation.Status
		}
	}
	return worst
}

// StatusIcon maps a status to its display emoji.
func StatusIcon(s credential.Status) string {
	switch s {
	case credential.StatusExpired:
		return "❌"
	case credential.StatusCritical:
		return "🚨"
	case credential.StatusWarning:
		return "⚠️"
	default:
		return "✅"
	}
}

// Write renders the records to w in the given format. The generation
// timestamp comes from now so output is reproducible in tests.
func Write(w io.Writer, records []credential.Classified, format string, now time.Time) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, records, now)
	case FormatMarkdown:
		return writeMarkdown(w, records, now)
	case FormatText:
		fallthrough
	default:
		return writeText(w, records)
	}
}

// JSONReport is the machine-readable report shape.
type JSONReport struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	Summary     Summary                 `json:"summary"`
	Records     []credential.Classified `json:"records"`
}

func writeJSON(w io.Writer, records []credential.Classified, now time.Time) error {
	if records == nil {
		records = []credential.Classified{}
	}
	out := JSONReport{
		GeneratedAt: now.UTC(),
		Summary:     Summarize(records),
		Records:     records,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func writeText(w io.Writer, records []credential.Classified) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No credentials tracked.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(w, "%s %s\n", StatusIcon(r.Evaluation.Status), r.Name)
		fmt.Fprintf(w, "   Provider: %s   Type: %s\n", r.Provider, r.Kind)
		fmt.Fprintf(w, "   Status:   %s (%s)\n", r.Evaluation.Status, r.Message)
		fmt.Fprintf(w, "   Age:      %s   Expires: %s\n", formatAge(r.AgeDays), formatExpiry(r))
		fmt.Fprintf(w, "   Policy:   %s\n", formatPolicy(r.RotationPolicyDays))
		if r.Notes != "" {
			fmt.Fprintf(w, "   Notes:    %s\n", r.Notes)
		}
		fmt.Fprintln(w)
	}

	s := Summarize(records)
	fmt.Fprintf(w, "%d tracked: %d healthy, %d warning, %d critical, %d expired\n",
		s.Total, s.Healthy, s.Warning, s.Critical, s.Expired)
	return nil
}

func writeMarkdown(w io.Writer, records []credential.Classified, now time.Time) error {
	s := Summarize(records)

	fmt.Fprintln(w, "# Credential Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Total tracked: %d\n", s.Total)
	fmt.Fprintf(w, "- Healthy: %d\n", s.Healthy)
	fmt.Fprintf(w, "- Warning: %d\n", s.Warning)
	fmt.Fprintf(w, "- Critical: %d\n", s.Critical)
	fmt.Fprintf(w, "- Expired: %d\n", s.Expired)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Inventory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Status | Name | Provider | Age | Expires | Rotation Policy |")
	fmt.Fprintln(w, "|--------|------|----------|-----|---------|-----------------|")
	for _, r := range records {
		fmt.Fprintf(w, "| %s %s | %s | %s | %s | %s | %s |\n",
			StatusIcon(r.Evaluation.Status), r.Evaluation.Status,
			r.Name, r.Provider, formatAge(r.AgeDays), formatExpiry(r),
			formatPolicy(r.RotationPolicyDays))
	}
	fmt.Fprintln(w)

	var attention []credential.Classified
	for _, r := range records {
		if r.Evaluation.Status != credential.StatusHealthy {
			attention = append(attention, r)
		}
	}
	if len(attention) > 0 {
		fmt.Fprintln(w, "## Action Required")
		fmt.Fprintln(w)
		for _, r := range attention {
			fmt.Fprintf(w, "### %s %s\n", StatusIcon(r.Evaluation.Status), r.Name)
			fmt.Fprintln(w)
			fmt.Fprintf(w, "- Status: %s\n", r.Evaluation.Status)
			fmt.Fprintf(w, "- Reason: %s\n", r.Message)
			fmt.Fprintf(w, "- Provider: %s\n", r.Provider)
			if r.Notes != "" {
				fmt.Fprintf(w, "- Notes: %s\n", r.Notes)
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

func formatAge(age *int) string {
	if age == nil {
		return "-"
	}
	if *age == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", *age)
}

func formatExpiry(r credential.Classified) string {
	if r.ExpiresAt == "" {
		return "never"
	}
	if r.DaysUntilExpiry == nil {
		return r.ExpiresAt
	}
	if *r.DaysUntilExpiry < 0 {
		return fmt.Sprintf("%s (%d days ago)", r.ExpiresAt, -*r.DaysUntilExpiry)
	}
	return fmt.Sprintf("%s (in %d days)", r.ExpiresAt, *r.DaysUntilExpiry)
}

func formatPolicy(days int) string {
	if days <= 0 {
		return "none"
	}
	return fmt.Sprintf("rotate every %d days", days)
}

// ValidFormat reports whether the format name is one the renderer
// understands. The PDF format is handled by the pdf subpackage.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON, FormatMarkdown:
		return true
	default:
		return false
	}
}
