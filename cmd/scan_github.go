package cmd

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/config"
	ghscanner "github.com/keywarden/cli/internal/scanner/github"
)

var scanGitHubCmd = &cobra.Command{
	Use:   "github",
	Short: "Discover the ambient GitHub personal access token",
	Long: `Inspect the GitHub personal access token from GITHUB_TOKEN or
GH_TOKEN and track its metadata. Fine-grained tokens report their
expiry date; classic tokens are tracked as never-expiring.

Examples:
  keywarden scan github
  keywarden scan github --import`,
	RunE: runScanGitHub,
}

func init() {
	scanCmd.AddCommand(scanGitHubCmd)
}

func runScanGitHub(cmd *cobra.Command, args []string) error {
	log := scanLogger(cmd)

	s := ghscanner.New(log)
	if host := githubHostFromConfig(); host != "" && s.IsAvailable(cmd.Context()) {
		enterprise, err := ghscanner.NewWithBaseURL(http.DefaultClient, "https://"+host+"/api/v3/", githubTokenFromEnv(), log)
		if err != nil {
			return commandError(cmd, err)
		}
		s = enterprise
	}
	return runScan(cmd, s)
}

func githubHostFromConfig() string {
	cfg, err := config.Load()
	if err != nil {
		return ""
	}
	return cfg.Scanner.GitHubHost
}

func githubTokenFromEnv() string {
	for _, env := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}
