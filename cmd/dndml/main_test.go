package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dndml/internal/dice"
)

const heroSheet = `@section info:
	@field name: %string["Aria"];
	@field level: %int[3];
@end-section

@section combat:
	@field str: %stat[ability: 16; mod: 3];
	@field attack: %dice[1d1+4];
	@field pack: %itemlist[%item[val: "Rope"; qty: 1; weight: 10];];
@end-section
`

const brokenSheet = "@section info:\n\t@field level: %int[3];\n"

func resetFlags(cmd *cobra.Command) {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(cmd.PersistentFlags())
	reset(cmd.Flags())
	cmd.SilenceErrors = false
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// sandbox isolates config discovery and state files in temp dirs.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	seeded := newRoller
	newRoller = func() *dice.Roller { return dice.NewRoller(rand.NewPCG(1, 2)) }
	t.Cleanup(func() { newRoller = seeded })
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParsePretty(t *testing.T) {
	dir := sandbox(t)
	path := writeFile(t, dir, "aria.dnd", heroSheet)

	stdout, stderr, err := execute(t, "", "parse", path)
	if err != nil {
		t.Fatalf("parse error: %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{"(2 sections, 5 fields)", "Section combat", `attack: %dice[1d1+4]`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestParseStdinJSON(t *testing.T) {
	sandbox(t)
	stdout, _, err := execute(t, heroSheet, "parse", "-", "--format", "json")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out struct {
		Source   string `json:"source"`
		Sections []struct {
			Name string `json:"name"`
		} `json:"sections"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if out.Source != stdinName || len(out.Sections) != 2 || out.Sections[1].Name != "combat" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestParseFailureReportsDiagnostics(t *testing.T) {
	dir := sandbox(t)
	path := writeFile(t, dir, "broken.dnd", brokenSheet)

	stdout, stderr, err := execute(t, "", "parse", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "SYN2301") {
		t.Errorf("stderr missing SYN2301:\n%s", stderr)
	}
	if strings.Contains(stderr, "Error: ") {
		t.Errorf("cobra error line should be silenced:\n%s", stderr)
	}
}

func TestParseDiagnosticsJSON(t *testing.T) {
	sandbox(t)
	_, stderr, err := execute(t, brokenSheet, "parse", "-", "--diagnostics", "json")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !json.Valid([]byte(stderr)) || !strings.Contains(stderr, `"SYN2301"`) {
		t.Errorf("stderr is not JSON diagnostics:\n%s", stderr)
	}
}

func TestParseDirectoryYAML(t *testing.T) {
	dir := sandbox(t)
	party := filepath.Join(dir, "party")
	writeFile(t, party, "aria.dnd", heroSheet)
	writeFile(t, party, "bram.dnd", "@section info:\n@end-section\n")

	stdout, _, err := execute(t, "", "parse", party, "--format", "yaml", "--jobs", "2")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	for _, want := range []string{"aria.dnd:", "bram.dnd:", "name: combat"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestParseDirectoryWithFailure(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, dir, "sheets/good.dnd", heroSheet)
	writeFile(t, dir, "sheets/bad.dnd", brokenSheet)

	stdout, stderr, err := execute(t, "", "parse", filepath.Join(dir, "sheets"))
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(stdout, "== good.dnd ==") || strings.Contains(stdout, "== bad.dnd ==") {
		t.Errorf("stdout:\n%s", stdout)
	}
	if !strings.Contains(stderr, "SYN2301") {
		t.Errorf("stderr:\n%s", stderr)
	}
}

func TestParseUsesConfigFormat(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, dir, "dndml.toml", "format = \"tree\"\n")
	path := writeFile(t, dir, "aria.dnd", heroSheet)

	stdout, _, err := execute(t, "", "parse", path)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !strings.Contains(stdout, "@combat") {
		t.Errorf("expected tree output:\n%s", stdout)
	}

	// an explicit flag beats the config
	stdout, _, err = execute(t, "", "parse", path, "--format", "pretty")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Section combat") {
		t.Errorf("expected pretty output:\n%s", stdout)
	}
}

func TestBadConfigFails(t *testing.T) {
	dir := sandbox(t)
	cfg := writeFile(t, dir, "custom.toml", "color = \"sometimes\"\n")
	_, _, err := execute(t, "", "--config", cfg, "calcmod", "10")
	if err == nil || !strings.Contains(err.Error(), "color must be one of") {
		t.Errorf("err = %v", err)
	}
}

func TestParseTimings(t *testing.T) {
	sandbox(t)
	_, stderr, err := execute(t, heroSheet, "--timings", "parse", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "timings") {
		t.Errorf("stderr missing timings:\n%s", stderr)
	}
}

func TestParseCache(t *testing.T) {
	dir := sandbox(t)
	writeFile(t, dir, "dndml.toml", "cache_dir = \"sheet-cache\"\n")
	path := writeFile(t, dir, "aria.dnd", heroSheet)

	for range 2 {
		if _, stderr, err := execute(t, "", "parse", path, "--cache"); err != nil {
			t.Fatalf("parse error: %v\n%s", err, stderr)
		}
	}
	entries, err := os.ReadDir(filepath.Join(dir, "sheet-cache", "sheets"))
	if err != nil || len(entries) != 1 {
		t.Errorf("cache entries = %v, %v", entries, err)
	}
}

func TestTokenize(t *testing.T) {
	sandbox(t)
	stdout, _, err := execute(t, "@field hp: %int[7];", "tokenize", "-")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != 9 || !strings.Contains(lines[8], "end of input") {
		t.Errorf("tokenize output:\n%s", stdout)
	}
}

func TestShow(t *testing.T) {
	dir := sandbox(t)
	path := writeFile(t, dir, "aria.dnd", heroSheet)
	stdout, _, err := execute(t, "", "show", path, "--width", "60")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"combat", "16 (+3)", "1d1+4", "• Rope x1 (10 lb)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRollAndReroll(t *testing.T) {
	dir := sandbox(t)

	stdout, _, err := execute(t, "", "roll", "1d1+2")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "Result of rolling 1d1+2: 3\n" {
		t.Errorf("roll output = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "state", "dndml", "lastroll.mp")); err != nil {
		t.Errorf("last roll not saved: %v", err)
	}

	stdout, _, err = execute(t, "", "reroll", "--show-rolls")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "Result of rolling 1d1+2: 3\nrolls: 1\n" {
		t.Errorf("reroll output = %q", stdout)
	}
}

func TestRollFromSheet(t *testing.T) {
	dir := sandbox(t)
	path := writeFile(t, dir, "aria.dnd", heroSheet)

	stdout, _, err := execute(t, "", "roll", "--sheet", path, "--field", "combat.attack")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "Result of rolling 1d1+4: 5\n" {
		t.Errorf("roll output = %q", stdout)
	}
}

func TestRollErrors(t *testing.T) {
	dir := sandbox(t)
	path := writeFile(t, dir, "aria.dnd", heroSheet)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"nothing", []string{"roll"}, "nothing to roll"},
		{"both", []string{"roll", "1d6", "--sheet", path, "--field", "combat.attack"}, "not both"},
		{"bad notation", []string{"roll", "d6"}, "invalid dice notation"},
		{"zero faces", []string{"roll", "2d0"}, "faces must be at least 1"},
		{"bad field path", []string{"roll", "--sheet", path, "--field", "attack"}, "section.field"},
		{"missing field", []string{"roll", "--sheet", path, "--field", "combat.bite"}, "no field combat.bite"},
		{"not dice", []string{"roll", "--sheet", path, "--field", "info.level"}, "is int, not dice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRerollWithoutHistory(t *testing.T) {
	sandbox(t)
	_, _, err := execute(t, "", "reroll")
	if err == nil || !strings.Contains(err.Error(), "no previous roll") {
		t.Errorf("err = %v", err)
	}
}

func TestCalcmod(t *testing.T) {
	sandbox(t)
	tests := []struct {
		score   string
		want    string
		wantErr bool
	}{
		{"16", "Modifier for Ability score 16: 3\n", false},
		{"10", "Modifier for Ability score 10: 0\n", false},
		{"1", "Modifier for Ability score 1: -5\n", false},
		{"0", "", true},
		{"strong", "", true},
	}
	for _, tt := range tests {
		stdout, _, err := execute(t, "", "calcmod", tt.score)
		if (err != nil) != tt.wantErr {
			t.Errorf("calcmod %s: err = %v", tt.score, err)
			continue
		}
		if stdout != tt.want {
			t.Errorf("calcmod %s = %q, want %q", tt.score, stdout, tt.want)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	sandbox(t)
	stdout, _, err := execute(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "dndml" || payload.Version == "" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeOff, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("fancy"); err == nil {
		t.Error("readUIMode(fancy) should fail")
	}
}

func TestCPUProfileFlag(t *testing.T) {
	dir := sandbox(t)
	out := filepath.Join(dir, "cpu.pprof")
	if _, _, err := execute(t, heroSheet, "--cpu-profile", out, "parse", "-"); err != nil {
		t.Fatal(err)
	}
	if err := stopProfiling(); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("cpu profile not written: %v", err)
	}
}

func TestQuietDiagnosticsSummary(t *testing.T) {
	dir := sandbox(t)
	path := writeFile(t, dir, "broken.dnd", brokenSheet)

	_, stderr, err := execute(t, "", "--quiet", "--path-mode", "basename", "parse", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(stderr, "error SYN2301 broken.dnd:") || strings.Count(stderr, "\n") != 1 {
		t.Errorf("quiet stderr = %q", stderr)
	}
}
