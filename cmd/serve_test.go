package cmd

import "testing"

func TestServeCmd_Initialized(t *testing.T) {
	if serveCmd == nil {
		t.Fatal("serveCmd is nil")
	}

	if serveCmd.Use != "serve" {
		t.Errorf("serveCmd.Use = %q, want %q", serveCmd.Use, "serve")
	}

	if serveCmd.Short == "" {
		t.Error("serveCmd.Short should not be empty")
	}

	if serveCmd.RunE == nil {
		t.Error("serveCmd.RunE should not be nil")
	}
}
