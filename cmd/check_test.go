package cmd

import (
	"testing"

	"github.com/keywarden/cli/internal/credential"
)

func TestCheckCmd_Initialized(t *testing.T) {
	if checkCmd == nil {
		t.Fatal("checkCmd is nil")
	}

	if checkCmd.Use != "check" {
		t.Errorf("checkCmd.Use = %q, want %q", checkCmd.Use, "check")
	}

	if checkCmd.Short == "" {
		t.Error("checkCmd.Short should not be empty")
	}

	if checkCmd.RunE == nil {
		t.Error("checkCmd.RunE should not be nil")
	}
}

func TestAuditExitCode(t *testing.T) {
	tests := []struct {
		worst credential.Status
		want  int
	}{
		{credential.StatusHealthy, 0},
		{credential.StatusWarning, 1},
		{credential.StatusCritical, 2},
		{credential.StatusExpired, 2},
	}

	for _, tt := range tests {
		if got := auditExitCode(tt.worst); got != tt.want {
			t.Errorf("auditExitCode(%s) = %d, want %d", tt.worst, got, tt.want)
		}
	}
}
