// Package pdf renders a classified credential inventory as a paginated
// PDF document: summary, inventory table, risk assessment and an
// expiration timeline. All severity coloring and ordering derives from
// the already-computed status and expiry values; no classification
// happens here.
package pdf

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/keywarden/cli/internal/credential"
	"github.com/keywarden/cli/internal/report"
)

type rgb struct{ r, g, b int }

func statusColor(s credential.Status) rgb {
	switch s {
	case credential.StatusExpired:
		return rgb{120, 20, 20}
	case credential.StatusCritical:
		return rgb{200, 40, 40}
	case credential.StatusWarning:
		return rgb{220, 150, 20}
	default:
		return rgb{40, 140, 60}
	}
}

// Write renders the report to w. The generation timestamp comes from
// now so output is reproducible in tests.
func Write(w io.Writer, records []credential.Classified, now time.Time) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	writeHeader(doc, now)
	writeSummary(doc, report.Summarize(records))
	writeInventory(doc, records)
	writeRiskAssessment(doc, records)
	writeTimeline(doc, records)

	return doc.Output(w)
}

func writeHeader(doc *fpdf.Fpdf, now time.Time) {
	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, "Credential Report")
	doc.Ln(10)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(110, 110, 110)
	doc.Cell(0, 6, fmt.Sprintf("Generated %s", now.UTC().Format(time.RFC3339)))
	doc.Ln(12)
	doc.SetTextColor(0, 0, 0)
}

func writeSummary(doc *fpdf.Fpdf, s report.Summary) {
	sectionTitle(doc, "Summary")
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, fmt.Sprintf("%d credentials tracked", s.Total))
	doc.Ln(6)

	counts := []struct {
		label  string
		count  int
		status credential.Status
	}{
		{"Healthy", s.Healthy, credential.StatusHealthy},
		{"Warning", s.Warning, credential.StatusWarning},
		{"Critical", s.Critical, credential.StatusCritical},
		{"Expired", s.Expired, credential.StatusExpired},
	}
	for _, c := range counts {
		col := statusColor(c.status)
		doc.SetTextColor(col.r, col.g, col.b)
		doc.Cell(45, 6, fmt.Sprintf("%s: %d", c.label, c.count))
	}
	doc.SetTextColor(0, 0, 0)
	doc.Ln(12)
}

func writeInventory(doc *fpdf.Fpdf, records []credential.Classified) {
	sectionTitle(doc, "Inventory")

	headers := []string{"Name", "Provider", "Type", "Status", "Age", "Expires"}
	widths := []float64{45, 28, 25, 22, 20, 30}

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(235, 235, 235)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	if len(records) == 0 {
		doc.CellFormat(sum(widths), 7, "No credentials tracked.", "1", 1, "L", false, 0, "")
		doc.Ln(6)
		return
	}
	for _, r := range records {
		col := statusColor(r.Evaluation.Status)
		doc.CellFormat(widths[0], 7, clip(doc, r.Name, widths[0]), "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], 7, clip(doc, r.Provider, widths[1]), "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[2], 7, clip(doc, r.Kind, widths[2]), "1", 0, "L", false, 0, "")
		doc.SetTextColor(col.r, col.g, col.b)
		doc.CellFormat(widths[3], 7, string(r.Evaluation.Status), "1", 0, "L", false, 0, "")
		doc.SetTextColor(0, 0, 0)
		doc.CellFormat(widths[4], 7, formatAge(r.AgeDays), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[5], 7, formatExpiresCell(r), "1", 1, "L", false, 0, "")
	}
	doc.Ln(6)
}

func writeRiskAssessment(doc *fpdf.Fpdf, records []credential.Classified) {
	atRisk := make([]credential.Classified, 0, len(records))
	for _, r := range records {
		if r.Evaluation.Status != credential.StatusHealthy {
			atRisk = append(atRisk, r)
		}
	}
	if len(atRisk) == 0 {
		return
	}
	// Most severe first; insertion order within a severity.
	sort.SliceStable(atRisk, func(i, j int) bool {
		return atRisk[i].Evaluation.Status.Rank() > atRisk[j].Evaluation.Status.Rank()
	})

	sectionTitle(doc, "Risk Assessment")
	for _, r := range atRisk {
		col := statusColor(r.Evaluation.Status)
		doc.SetFont("Helvetica", "B", 10)
		doc.SetTextColor(col.r, col.g, col.b)
		doc.Cell(0, 6, fmt.Sprintf("[%s] %s (%s)", r.Evaluation.Status, r.Name, r.Provider))
		doc.Ln(5)
		doc.SetTextColor(0, 0, 0)
		doc.SetFont("Helvetica", "", 9)
		doc.Cell(0, 5, r.Message)
		doc.Ln(5)
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(0, 5, Recommendation(r), "", "L", false)
		doc.Ln(3)
	}
	doc.Ln(4)
}

func writeTimeline(doc *fpdf.Fpdf, records []credential.Classified) {
	expiring := make([]credential.Classified, 0, len(records))
	for _, r := range records {
		if r.DaysUntilExpiry != nil {
			expiring = append(expiring, r)
		}
	}
	if len(expiring) == 0 {
		return
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return *expiring[i].DaysUntilExpiry < *expiring[j].DaysUntilExpiry
	})

	sectionTitle(doc, "Expiration Timeline")
	doc.SetFont("Helvetica", "", 9)
	for _, r := range expiring {
		col := statusColor(r.Evaluation.Status)
		doc.SetTextColor(col.r, col.g, col.b)
		doc.Cell(30, 6, r.ExpiresAt)
		doc.SetTextColor(0, 0, 0)
		doc.Cell(0, 6, fmt.Sprintf("%s (%s)", r.Name, describeExpiry(*r.DaysUntilExpiry)))
		doc.Ln(5)
	}
}

// Recommendation synthesizes a remediation hint from the status and
// the proximity to the expiry or rotation deadline.
func Recommendation(r credential.Classified) string {
	switch r.Evaluation.Status {
	case credential.StatusExpired:
		return "Rotate or revoke immediately: this credential is past its expiry date and may already be rejected by the provider."
	case credential.StatusCritical:
		if r.DaysUntilExpiry != nil && *r.DaysUntilExpiry < 7 {
			if *r.DaysUntilExpiry <= 0 {
				return "Renew today or dependent services will lose access."
			}
			return fmt.Sprintf("Renew within %d days or dependent services will lose access.", *r.DaysUntilExpiry)
		}
		return "Rotate now: the rotation policy deadline has passed."
	case credential.StatusWarning:
		if r.DaysUntilExpiry != nil && *r.DaysUntilExpiry < 30 {
			return fmt.Sprintf("Schedule a renewal before %s.", r.ExpiresAt)
		}
		return "Plan a rotation soon to stay within policy."
	default:
		return "No action required."
	}
}

func sectionTitle(doc *fpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 13)
	doc.Cell(0, 8, title)
	doc.Ln(9)
}

func describeExpiry(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("expired %d days ago", -days)
	case days == 0:
		return "expires today"
	case days == 1:
		return "expires in 1 day"
	default:
		return fmt.Sprintf("expires in %d days", days)
	}
}

func formatAge(age *int) string {
	if age == nil {
		return "-"
	}
	return fmt.Sprintf("%dd", *age)
}

func formatExpiresCell(r credential.Classified) string {
	if r.ExpiresAt == "" {
		return "never"
	}
	return r.ExpiresAt
}

func clip(doc *fpdf.Fpdf, s string, width float64) string {
	for doc.GetStringWidth(s) > width-2 && len(s) > 3 {
		s = s[:len(s)-4] + "..."
	}
	return s
}

func sum(ws []float64) float64 {
	total := 0.0
	for _, w := range ws {
		total += w
	}
	return total
}
