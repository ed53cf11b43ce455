package cmd

import (
	"strings"
	"testing"
)

func TestRemoveCmd_Initialized(t *testing.T) {
	if removeCmd == nil {
		t.Fatal("removeCmd is nil")
	}

	if !strings.HasPrefix(removeCmd.Use, "remove") {
		t.Errorf("removeCmd.Use = %q, want prefix %q", removeCmd.Use, "remove")
	}

	if removeCmd.Short == "" {
		t.Error("removeCmd.Short should not be empty")
	}

	if removeCmd.RunE == nil {
		t.Error("removeCmd.RunE should not be nil")
	}

	if removeCmd.Args == nil {
		t.Error("removeCmd should have Args validator")
	}
}

func TestRemoveCmd_HasRmAlias(t *testing.T) {
	for _, alias := range removeCmd.Aliases {
		if alias == "rm" {
			return
		}
	}
	t.Error("removeCmd should have 'rm' alias")
}
