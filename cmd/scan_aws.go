package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/config"
	awsscanner "github.com/keywarden/cli/internal/scanner/aws"
)

var scanAWSRegion string

var scanAWSCmd = &cobra.Command{
	Use:   "aws",
	Short: "Discover IAM access keys",
	Long: `Discover the IAM access keys of the calling AWS identity.

Uses the SDK's default credential chain (environment, shared config,
instance profile). Key creation dates become the tracked creation and
last-rotation dates.

Examples:
  keywarden scan aws
  keywarden scan aws --import
  keywarden scan aws --region eu-west-1`,
	RunE: runScanAWS,
}

func init() {
	scanCmd.AddCommand(scanAWSCmd)
	scanAWSCmd.Flags().StringVar(&scanAWSRegion, "region", "", "AWS region (default from SDK config)")
}

func runScanAWS(cmd *cobra.Command, args []string) error {
	region := scanAWSRegion
	if region == "" {
		if cfg, err := config.Load(); err == nil {
			region = cfg.Scanner.AWSRegion
		}
	}

	s := awsscanner.New(cmd.Context(), region, scanLogger(cmd))
	return runScan(cmd, s)
}
