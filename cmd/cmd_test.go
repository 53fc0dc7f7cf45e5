package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `{
  "name": "cli",
  "seed": 9,
  "schedule_start_time": "2024-01-01 00:00:00",
  "schedule_end_time": "2024-01-01 01:00:00",
  "break_count": [4],
  "break_duration": [60, 90],
  "commercial_count": [5],
  "commercial_duration": [15, 30],
  "commercial_minimum_play": [1],
  "commercial_maximum_play": [2],
  "penalty": [10],
  "price_range": [20],
  "reach_range": [20],
  "budget_chance": [10],
  "reach_chance": [10],
  "competitors_count": 2,
  "output": {"dir": %q}
}`

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	body := strings.Replace(testConfig, "%q", `"`+filepath.ToSlash(dir)+`"`, 1)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateAndConvertCommands(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	rootCmd.SetArgs([]string{"generate", "--config", cfg, "--log-level", "error"})
	if err := Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	instances, err := filepath.Glob(filepath.Join(dir, "data_nsga", "1_*_cli.json"))
	if err != nil || len(instances) != 1 {
		t.Fatalf("expected one instance file, got %v (%v)", instances, err)
	}
	solvers, _ := filepath.Glob(filepath.Join(dir, "data_cplex", "1_*_cli.json"))
	if len(solvers) != 1 {
		t.Fatalf("expected one solver file, got %v", solvers)
	}

	out := filepath.Join(dir, "converted.json")
	rootCmd.SetArgs([]string{"convert", instances[0], "--out", out})
	if err := Execute(); err != nil {
		t.Fatalf("convert: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(solvers[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("converted file differs from generated solver instance")
	}

	rootCmd.SetArgs([]string{"convert", solvers[0], "--out", filepath.Join(dir, "again.json")})
	if err := Execute(); err == nil {
		t.Fatal("expected converting a solver instance to fail")
	}
	if _, err := os.Stat(filepath.Join(dir, "again.json")); !os.IsNotExist(err) {
		t.Fatal("failed conversion left a file behind")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"version"})
	if err := Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		t.Fatal("empty version")
	}
}
