package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestRotateCmd_Initialized(t *testing.T) {
	if rotateCmd == nil {
		t.Fatal("rotateCmd is nil")
	}

	if rotateCmd.Use != "rotate <name>" {
		t.Errorf("rotateCmd.Use = %q, want %q", rotateCmd.Use, "rotate <name>")
	}

	if rotateCmd.Short == "" {
		t.Error("rotateCmd.Short should not be empty")
	}

	if rotateCmd.RunE == nil {
		t.Error("rotateCmd.RunE should not be nil")
	}

	if rotateCmd.Args == nil {
		t.Error("rotateCmd should have Args validator")
	}
}

func TestRotateCmd_StampsToday(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "secrets.json")

	execute(t, "init", "--store", storePath)
	execute(t, "add", "--store", storePath,
		"--name", "aws-root",
		"--created", "2020-01-01",
		"--last-rotated", "2020-01-01")

	out := execute(t, "rotate", "aws-root", "--store", storePath, "--json")

	var rec struct {
		LastRotated string `json:"lastRotated"`
		Status      string `json:"status"`
	}
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("rotate --json produced invalid JSON: %v\n%s", err, out)
	}
	if rec.LastRotated == "2020-01-01" {
		t.Error("rotate should move lastRotated off the old date")
	}
	if rec.Status != "healthy" {
		t.Errorf("status after rotation = %q, want healthy", rec.Status)
	}
}
