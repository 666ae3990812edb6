package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "github.com/KaramelBytes/colstat-cli/internal/config"
	"github.com/KaramelBytes/colstat-cli/internal/profile"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/pflag"
)

// runCmd executes the root command with args and stdin, returning stdout.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return execute(t, stdin, io.Discard, args...)
}

func execute(t *testing.T, stdin string, stderr io.Writer, args ...string) (string, error) {
	t.Helper()
	// Reset sticky flags that persist Changed state across invocations
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	configInitCmd.Flags().VisitAll(reset)
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"COLSTAT_PRECISION", "COLSTAT_INPUT_DELIMITER", "COLSTAT_OUTPUT_DELIMITER"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func TestCLI_GroupNumberDelimited(t *testing.T) {
	isolateHome(t)
	out, err := runCmd(t, "g1,10\ng1,20\ng2,30\nbad\n", "group-number", "-D", ";")
	if err != nil {
		t.Fatalf("group-number: %v", err)
	}
	want := ";count;empty;error;min;max;sum;mean;stddev\n" +
		"g2;1;0;0;30;30;3e+01;30;0\n" +
		"g1;2;0;0;10;20;3e+01;15;5\n" +
		"<INVALID>;0;0;1;0;0;0e+00;0;0\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestCLI_NumberTable(t *testing.T) {
	isolateHome(t)
	out, err := runCmd(t, "1\n2\n3\n4\n5\n", "number", "-p", "4")
	if err != nil {
		t.Fatalf("number: %v", err)
	}
	for _, want := range []string{"Count", "StdDev", "1.5e+01", "3.0000", "1.4142"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_CSVFromFile(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "people.csv")
	if err := os.WriteFile(path, []byte("name,age\nann,30\nbob,\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out, err := runCmd(t, "", "csv", "-D", ",", path)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], ",count,cardinality,string_empty,") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "name,2,2,0,ann,bob,0,2,0,0,0,0,3,3,3,0" {
		t.Fatalf("name row = %q", lines[1])
	}
	if lines[2] != "age,1,1,1,30,30,1,0,30,30,30,0,2,2,2,0" {
		t.Fatalf("age row = %q", lines[2])
	}
}

func TestCLI_CSVMissingHeader(t *testing.T) {
	isolateHome(t)
	_, err := runCmd(t, "", "csv")
	if !errors.Is(err, profile.ErrMissingHeader) {
		t.Fatalf("expected ErrMissingHeader, got %v", err)
	}
}

func TestCLI_CompressedInputMatchesPlain(t *testing.T) {
	home := isolateHome(t)
	data := "a;1\na;2\nb;x\nb;\n"
	plain := filepath.Join(home, "in.txt")
	if err := os.WriteFile(plain, []byte(data), 0o644); err != nil {
		t.Fatalf("write plain: %v", err)
	}
	gz := filepath.Join(home, "in.txt.gz")
	f, err := os.Create(gz)
	if err != nil {
		t.Fatalf("create gz: %v", err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(data)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want, err := runCmd(t, "", "group-number", "-d", ";", "-D", "tab", plain)
	if err != nil {
		t.Fatalf("plain run: %v", err)
	}
	got, err := runCmd(t, "", "group-number", "-d", ";", "-D", "tab", gz)
	if err != nil {
		t.Fatalf("gzip run: %v", err)
	}
	if got != want {
		t.Fatalf("gzip output differs:\n%s\nvs\n%s", got, want)
	}
}

func TestCLI_GroupStringCap(t *testing.T) {
	isolateHome(t)
	out, err := runCmd(t, "k,a\nk,b\nk,a\nk,c\n", "group-string", "--cardinality-cap", "2", "-D", ",")
	if err != nil {
		t.Fatalf("group-string: %v", err)
	}
	if !strings.Contains(out, "\nk,4,0,0,3+,a,c,") {
		t.Fatalf("expected capped cardinality row:\n%s", out)
	}
}

func TestCLI_InvalidFlagsFailBeforeReading(t *testing.T) {
	isolateHome(t)
	cases := [][]string{
		{"number", "-d", "::"},
		{"number", "-p", "-1"},
		{"group-string", "--cardinality", "bloom"},
		{"csv", "--max-line-size", "huge"},
	}
	for _, args := range cases {
		if _, err := runCmd(t, "1\n", args...); err == nil {
			t.Errorf("%v: expected validation error", args)
		}
	}
}

func TestCLI_MissingFile(t *testing.T) {
	home := isolateHome(t)
	_, err := runCmd(t, "", "number", filepath.Join(home, "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCLI_ConfigInitSetShow(t *testing.T) {
	home := isolateHome(t)
	out, err := runCmd(t, "", "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	path := filepath.Join(home, ".colstat", "config.yaml")
	if !strings.Contains(out, path) {
		t.Fatalf("init output should name %s: %q", path, out)
	}
	if _, err := runCmd(t, "", "config", "init"); err == nil {
		t.Fatalf("second init without --force should fail")
	}
	if _, err := runCmd(t, "", "config", "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	if _, err := runCmd(t, "", "config", "set", "output_delimiter", "|"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := runCmd(t, "", "config", "set", "precision", "many"); err == nil {
		t.Fatalf("expected error for non-numeric precision")
	}
	if _, err := runCmd(t, "", "config", "set", "bogus", "1"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	out, err = runCmd(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "output_delimiter: '|'") && !strings.Contains(out, `output_delimiter: "|"`) {
		t.Fatalf("show missing saved value:\n%s", out)
	}

	// the saved output delimiter now applies to runs
	out, err = runCmd(t, "5\n", "number")
	if err != nil {
		t.Fatalf("number: %v", err)
	}
	if !strings.HasPrefix(out, "count|empty|error|") {
		t.Fatalf("expected delimited output from config:\n%s", out)
	}
}

func TestCLI_ConfigSetIgnoresRunFlags(t *testing.T) {
	home := isolateHome(t)
	if _, err := runCmd(t, "", "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := runCmd(t, "", "-p", "7", "-d", ";", "--debug", "config", "set", "output_delimiter", "|"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	saved, err := cfgpkg.Load(filepath.Join(home, ".colstat", "config.yaml"))
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if saved.OutputDelimiter != "|" {
		t.Fatalf("output_delimiter = %q, want |", saved.OutputDelimiter)
	}
	if saved.Precision != 0 || saved.InputDelimiter != "," || saved.LogLevel != "WARNING" {
		t.Fatalf("run flags leaked into saved config: %+v", saved)
	}
}

func TestCLI_DebugLogsSummary(t *testing.T) {
	isolateHome(t)
	var logs bytes.Buffer
	if _, err := execute(t, "1\n2\n", &logs, "number", "--debug"); err != nil {
		t.Fatalf("number --debug: %v", err)
	}
	if !strings.Contains(logs.String(), "2 lines") || !strings.Contains(logs.String(), "mode=number") {
		t.Fatalf("debug summary missing:\n%s", logs.String())
	}

	logs.Reset()
	if _, err := execute(t, "1\n", &logs, "number"); err != nil {
		t.Fatalf("number: %v", err)
	}
	if logs.Len() != 0 {
		t.Fatalf("default level should stay quiet:\n%s", logs.String())
	}
}
