package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCmd_Initialized(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}

	if rootCmd.Use != "keywarden" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "keywarden")
	}

	if rootCmd.Short == "" {
		t.Error("rootCmd.Short should not be empty")
	}

	if !rootCmd.SilenceUsage {
		t.Error("rootCmd should silence usage on errors")
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"store", "json", "quiet", "no-color"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("rootCmd should have persistent %q flag", name)
		}
	}
}

func TestRootCmd_SubcommandsRegistered(t *testing.T) {
	want := []string{
		"init", "add", "list", "check", "remove", "rotate",
		"update", "report", "scan", "serve", "version",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("rootCmd should have %q subcommand", name)
		}
	}
}

// execute runs the root command with the given args and returns its
// stdout.
func execute(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("keywarden %s: %v", strings.Join(args, " "), err)
	}
	return buf.String()
}

func TestWorkflow_InitAddList(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "secrets.json")

	out := execute(t, "init", "--store", storePath, "--tier", "free")
	if !strings.Contains(out, storePath) {
		t.Errorf("init output should name the store path, got %q", out)
	}

	execute(t, "add", "--store", storePath,
		"--name", "stripe-prod",
		"--provider", "stripe",
		"--kind", "api_key",
		"--rotation-days", "90")

	out = execute(t, "list", "--store", storePath, "--json")

	var records []map[string]any
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("list --json produced invalid JSON: %v\n%s", err, out)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0]["name"] != "stripe-prod" {
		t.Errorf("record name = %v, want stripe-prod", records[0]["name"])
	}
	if records[0]["status"] != "healthy" {
		t.Errorf("record status = %v, want healthy", records[0]["status"])
	}
}

func TestWorkflow_CheckHealthyStore(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "secrets.json")

	execute(t, "init", "--store", storePath)
	execute(t, "add", "--store", storePath, "--name", "fresh-key", "--rotation-days", "0")

	out := execute(t, "check", "--store", storePath, "--json")

	var result struct {
		WorstStatus string           `json:"worstStatus"`
		Attention   []map[string]any `json:"attention"`
		Summary     struct {
			Total   int `json:"total"`
			Healthy int `json:"healthy"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("check --json produced invalid JSON: %v\n%s", err, out)
	}
	if result.WorstStatus != "healthy" {
		t.Errorf("worstStatus = %q, want healthy", result.WorstStatus)
	}
	if result.Summary.Total != 1 || result.Summary.Healthy != 1 {
		t.Errorf("summary = %+v, want 1 total, 1 healthy", result.Summary)
	}
	if len(result.Attention) != 0 {
		t.Errorf("attention should be empty for a healthy store, got %v", result.Attention)
	}
}
