package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// execute runs the root command with args and returns combined output,
// failing the test on error.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("gantry %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

// executeErr runs the root command expecting an error.
func executeErr(t *testing.T, args ...string) error {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		t.Fatalf("gantry %s succeeded, want error\n%s", strings.Join(args, " "), buf.String())
	}
	return err
}

func TestEndToEnd(t *testing.T) {
	t.Chdir(t.TempDir())

	out := execute(t, "init", "demo", "--start", "2026-03-02")
	if !strings.Contains(out, "wrote tasks.toml") {
		t.Fatalf("init output: %q", out)
	}

	out = execute(t, "validate")
	if !strings.Contains(out, "ok:") {
		t.Errorf("validate output: %q", out)
	}

	out = execute(t, "schedule")
	for _, id := range []string{"research", "design", "build", "review", "present"} {
		if !strings.Contains(out, id) {
			t.Errorf("schedule output missing %q:\n%s", id, out)
		}
	}
	if !strings.Contains(out, "critical") {
		t.Errorf("schedule output has no critical task:\n%s", out)
	}

	out = execute(t, "gantt", "--no-color")
	if !strings.Contains(out, "█") {
		t.Errorf("gantt output has no bars:\n%s", out)
	}

	out = execute(t, "workload")
	if !strings.Contains(out, "alex") || !strings.Contains(out, "team") {
		t.Errorf("workload output: %q", out)
	}

	out = execute(t, "export", "--format", "json", "--output", "sched.json")
	data, err := os.ReadFile("sched.json")
	if err != nil {
		t.Fatalf("export wrote no file: %v (output %q)", err, out)
	}
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("exported JSON invalid: %v", err)
	}
	if len(rows) != 5 {
		t.Errorf("exported %d rows, want 5", len(rows))
	}

	out = execute(t, "schedule", "--save")
	if !strings.Contains(out, "saved run 1") {
		t.Errorf("save output: %q", out)
	}
	out = execute(t, "history")
	if !strings.Contains(out, "demo") {
		t.Errorf("history output: %q", out)
	}
	out = execute(t, "history", "show", "1")
	if !strings.Contains(out, "research") {
		t.Errorf("history show output: %q", out)
	}
}

func TestValidateReportsCycle(t *testing.T) {
	t.Chdir(t.TempDir())

	const bad = `
[project]
name = "broken"
start = "2026-03-02"

[[task]]
id = "a"
hours = 4.0
depends_on = ["b"]

[[task]]
id = "b"
hours = 4.0
depends_on = ["a"]
`
	if err := os.WriteFile("tasks.toml", []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	err := executeErr(t, "validate")
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("error %q does not mention the cycle", err)
	}
}

func TestMissingProjectFile(t *testing.T) {
	t.Chdir(t.TempDir())
	err := executeErr(t, "schedule")
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error %q does not mention the missing file", err)
	}
}
