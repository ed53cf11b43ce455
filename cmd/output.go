package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/config"
	"github.com/keywarden/cli/internal/credential"
	"github.com/keywarden/cli/internal/registry"
	"github.com/keywarden/cli/internal/report"
	"github.com/keywarden/cli/internal/store"
)

// storeFile resolves the store handle: the --store flag wins, then the
// config file's store_path, then the usual local-over-global lookup.
func storeFile(cmd *cobra.Command) (*store.File, error) {
	if path, _ := cmd.Flags().GetString("store"); path != "" {
		return store.Open(path), nil
	}
	if cfg, err := config.Load(); err == nil && cfg.StorePath != "" {
		return store.Open(cfg.StorePath), nil
	}
	return store.Resolve()
}

// openRegistry loads the persisted registry and wires the store handle
// back in as its persistence collaborator, so mutations are written to
// the same file they were read from.
func openRegistry(cmd *cobra.Command) (*registry.Registry, *store.File, error) {
	f, err := storeFile(cmd)
	if err != nil {
		return nil, nil, err
	}
	doc, err := f.Load()
	if err != nil {
		return nil, nil, err
	}
	return registry.New(registry.Tier(doc.Tier), doc.Secrets, f), f, nil
}

func jsonMode(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func quietMode(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("quiet")
	return v
}

func applyColorPreference(cmd *cobra.Command) {
	if v, _ := cmd.Flags().GetBool("no-color"); v {
		color.NoColor = true
		return
	}
	if cfg, err := config.Load(); err == nil && cfg.NoColor {
		color.NoColor = true
	}
}

// commandError surfaces a failure. In JSON mode the short message and
// the machine-readable code go to stdout; the returned error still
// drives the non-zero exit.
func commandError(cmd *cobra.Command, err error) error {
	if jsonMode(cmd) {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.Encode(map[string]string{
			"error": err.Error(),
			"code":  string(registry.ErrorCode(err)),
		})
	}
	return err
}

func printRecordJSON(w io.Writer, rec credential.Classified) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// statusLabel renders the status honoring the color preference in
// effect at call time.
func statusLabel(s credential.Status) string {
	switch s {
	case credential.StatusExpired:
		return color.New(color.FgRed, color.Bold).Sprint("expired")
	case credential.StatusCritical:
		return color.New(color.FgRed).Sprint("critical")
	case credential.StatusWarning:
		return color.New(color.FgYellow).Sprint("warning")
	default:
		return color.New(color.FgGreen).Sprint("healthy")
	}
}

// printRecord writes the one-record detail block used by add, rotate
// and update.
func printRecord(w io.Writer, rec credential.Classified) {
	fmt.Fprintf(w, "%s %s\n", report.StatusIcon(rec.Evaluation.Status), rec.Name)
	fmt.Fprintf(w, "  Provider:  %s\n", rec.Provider)
	fmt.Fprintf(w, "  Type:      %s\n", rec.Kind)
	fmt.Fprintf(w, "  Status:    %s (%s)\n", statusLabel(rec.Evaluation.Status), rec.Message)
	fmt.Fprintf(w, "  Created:   %s\n", rec.CreatedAt)
	if rec.LastRotated != "" {
		fmt.Fprintf(w, "  Rotated:   %s\n", rec.LastRotated)
	}
	if rec.ExpiresAt != "" {
		fmt.Fprintf(w, "  Expires:   %s\n", rec.ExpiresAt)
	} else {
		fmt.Fprintf(w, "  Expires:   never\n")
	}
	if rec.RotationPolicyDays > 0 {
		fmt.Fprintf(w, "  Policy:    rotate every %d days\n", rec.RotationPolicyDays)
	}
	if rec.Notes != "" {
		fmt.Fprintf(w, "  Notes:     %s\n", rec.Notes)
	}
}
