package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/registry"
	"github.com/keywarden/cli/internal/scanner"
)

var scanImport bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover credentials from cloud providers",
	Long: `Discover credentials worth tracking from cloud providers.

Scanners read only metadata (key IDs, dates, owners), never secret
values. Without --import the discovered credentials are just listed;
with it they are added to the registry through the normal add path.`,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.PersistentFlags().BoolVar(&scanImport, "import", false, "add discovered credentials to the registry")
}

// scanLogger builds the stderr logger shared by the scanner commands.
// Quiet mode drops everything below warning.
func scanLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if quietMode(cmd) {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runScan drives one scanner: availability check, scan, then either a
// preview table or an import through the registry.
func runScan(cmd *cobra.Command, s scanner.Scanner) error {
	ctx := cmd.Context()
	if !s.IsAvailable(ctx) {
		return commandError(cmd, fmt.Errorf("%s scanner is not available: no usable credentials found in the environment", s.Name()))
	}

	descriptors, err := s.Scan(ctx)
	if err != nil {
		return commandError(cmd, err)
	}
	if len(descriptors) == 0 {
		if !quietMode(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "No credentials discovered by the %s scanner.\n", s.Name())
		}
		return nil
	}

	if !scanImport {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPROVIDER\tTYPE\tCREATED\tEXPIRES\tNOTES")
		for _, d := range descriptors {
			created, expires := d.CreatedAt, d.ExpiresAt
			if created == "" {
				created = "-"
			}
			if expires == "" {
				expires = "never"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", d.Name, d.Provider, d.Kind, created, expires, d.Notes)
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d discovered. Re-run with --import to track them.\n", len(descriptors))
		return nil
	}

	reg, _, err := openRegistry(cmd)
	if err != nil {
		return commandError(cmd, err)
	}

	imported, skipped := 0, 0
	for _, in := range scanner.ToRegistryInput(descriptors) {
		_, err := reg.Add(in)
		switch {
		case err == nil:
			imported++
		case registry.IsCode(err, registry.CodeDuplicateName):
			// Already tracked from an earlier scan.
			skipped++
		default:
			return commandError(cmd, err)
		}
	}

	if !quietMode(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d credentials (%d already tracked).\n", imported, skipped)
	}
	return nil
}
