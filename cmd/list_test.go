package cmd

import "testing"

func TestListCmd_Initialized(t *testing.T) {
	if listCmd == nil {
		t.Fatal("listCmd is nil")
	}

	if listCmd.Use != "list" {
		t.Errorf("listCmd.Use = %q, want %q", listCmd.Use, "list")
	}

	if listCmd.Short == "" {
		t.Error("listCmd.Short should not be empty")
	}

	if listCmd.RunE == nil {
		t.Error("listCmd.RunE should not be nil")
	}
}

func TestListCmd_HasStatusFlag(t *testing.T) {
	flag := listCmd.Flags().Lookup("status")
	if flag == nil {
		t.Fatal("listCmd should have 'status' flag")
	}

	if flag.DefValue != "" {
		t.Errorf("status flag default = %q, want empty", flag.DefValue)
	}
}
