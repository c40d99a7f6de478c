package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `host: db.internal
port: 5432
url: "postgres://${host}:$port/app"
server:
  host: api.internal
  endpoint: "http://$host"
loop: "$loop"
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func TestListPrintsResolvedKeysAndReportsCycles(t *testing.T) {
	path := writeSample(t, "app.yaml", sampleConfig)

	out, errOut, err := runCLI(t, "list", path)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"host=db.internal",
		"port=5432",
		"url=postgres://db.internal:5432/app",
		`server={"endpoint":"http://api.internal","host":"api.internal"}`,
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
	requireContains(t, errOut, "loop: appconfig: circular reference")
}

func TestListNoResolveAndTable(t *testing.T) {
	path := writeSample(t, "app.yaml", sampleConfig)

	out, errOut, err := runCLI(t, "list", path, "--no-resolve")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "url=postgres://${host}:$port/app")
	requireContains(t, out, "loop=$loop")
	if errOut != "" {
		t.Fatalf("expected no errors without resolution, got %q", errOut)
	}

	out, _, err = runCLI(t, "list", path, "--table")
	if err != nil {
		t.Fatalf("list --table: %v", err)
	}
	requireContains(t, out, "KEY")
	requireContains(t, out, "postgres://db.internal:5432/app")
}

func TestGetCommand(t *testing.T) {
	path := writeSample(t, "app.yaml", sampleConfig)

	out, _, err := runCLI(t, "get", path, "url")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if strings.TrimSpace(out) != "postgres://db.internal:5432/app" {
		t.Fatalf("unexpected value %q", out)
	}

	if _, _, err := runCLI(t, "get", path, "absent"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, _, err := runCLI(t, "get", path, "loop"); err == nil || !strings.Contains(err.Error(), "circular reference") {
		t.Fatalf("expected circular reference error, got %v", err)
	}
}

func TestGetTraceOutputsJSON(t *testing.T) {
	path := writeSample(t, "app.yaml", sampleConfig)

	out, _, err := runCLI(t, "get", path, "url", "--trace")
	if err != nil {
		t.Fatalf("get --trace: %v", err)
	}
	var payload struct {
		Value string `json:"value"`
		Trace struct {
			Key        string `json:"key"`
			References []struct {
				Name string `json:"name"`
			} `json:"references"`
		} `json:"trace"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if payload.Value != "postgres://db.internal:5432/app" || payload.Trace.Key != "url" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if len(payload.Trace.References) != 2 || payload.Trace.References[0].Name != "host" {
		t.Fatalf("unexpected references %+v", payload.Trace.References)
	}
}

func TestDumpConvertsFormats(t *testing.T) {
	path := writeSample(t, "app.toml", "host = \"db\"\nurl = \"tcp://$host\"\n")

	out, _, err := runCLI(t, "dump", path, "--to", "json")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	requireContains(t, out, `"url": "tcp://$host"`)

	out, _, err = runCLI(t, "dump", path, "--resolved", "--to", "yaml")
	if err != nil {
		t.Fatalf("dump --resolved: %v", err)
	}
	if out != "host: db\nurl: tcp://db\n" {
		t.Fatalf("unexpected resolved dump %q", out)
	}

	if _, _, err := runCLI(t, "dump", path, "--to", "xml"); err == nil {
		t.Fatalf("expected unsupported output format error")
	}
}

func TestFormatFlagOverridesExtension(t *testing.T) {
	path := writeSample(t, "app.conf", `{"a": "x", "b": "$a"}`)

	out, _, err := runCLI(t, "--format", "json", "get", path, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if strings.TrimSpace(out) != "x" {
		t.Fatalf("unexpected value %q", out)
	}
}
