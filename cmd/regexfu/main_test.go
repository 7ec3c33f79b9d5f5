package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("REGEXFU_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	for _, key := range []string{
		"REGEXFU_ENGINE",
		"REGEXFU_FLAGS",
		"REGEXFU_MATCH_TIMEOUT",
		"REGEXFU_LOG_FILE",
		"REGEXFU_LOG_LEVEL",
		"REGEXFU_WATCH",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestPrintModeWritesTranscript(t *testing.T) {
	isolateConfig(t)

	code, out, errOut := runCLI(t, "--print", "-p", "b+", "-s", "abbc bb")
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	want := "Match #1: 1-3\n\nMatch #2: 5-7\n\nNo more matches\n"
	if out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestPrintModeExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"compile error", []string{"--print", "-p", "(", "-s", "abc"}, 1, "", ""},
		{"no matches", []string{"--print", "-p", "z", "-s", "abc"}, 0, "No matches", ""},
		{"missing subject", []string{"--print", "-p", "a"}, 2, "", "required"},
		{"re2 with flags", []string{"--print", "--engine", "re2", "--flags", "i", "-p", "B", "-s", "abc"}, 0, "Match #1: 1-2", ""},
		{"re2 rejects extended", []string{"--print", "-e", "re2", "-f", "x", "-p", "a", "-s", "a"}, 1, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			code, out, errOut := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit %d, want %d (stdout %q, stderr %q)", code, tt.wantCode, out, errOut)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Fatalf("stdout %q missing %q", out, tt.wantOut)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Fatalf("stderr %q missing %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestPrintModeReadsSubjectFile(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "subject.txt")
	if err := os.WriteFile(path, []byte("\xFF\xFEa\x00b\x00"), 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "--print", "-p", "b", "--subject-file", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if !strings.HasPrefix(out, "Match #1: 1-2") {
		t.Fatalf("stdout = %q", out)
	}
}

func TestCLIErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		code    int
		wantErr string
	}{
		{"unknown flag", []string{"--nope"}, 2, "unknown flag"},
		{"unknown engine", []string{"--engine", "pcre"}, 1, "Error loading config"},
		{"bad modifiers", []string{"--flags", "q"}, 1, "flags"},
		{"watch without file", []string{"--watch"}, 1, "--subject-file"},
		{"missing subject file", []string{"--subject-file", "/nonexistent/regexfu.txt"}, 1, "Error loading subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			code, _, errOut := runCLI(t, tt.args...)
			if code != tt.code {
				t.Fatalf("exit %d, want %d (stderr %q)", code, tt.code, errOut)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Fatalf("stderr %q missing %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestHelpAndVersion(t *testing.T) {
	isolateConfig(t)

	code, out, _ := runCLI(t, "--help")
	if code != 0 || !strings.Contains(out, "--subject-file") || !strings.Contains(out, "USAGE") {
		t.Fatalf("help exit %d output %q", code, out)
	}

	code, out, _ = runCLI(t, "-v")
	if code != 0 || strings.TrimSpace(out) != "regexfu dev" {
		t.Fatalf("version exit %d output %q", code, out)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("engine: re2\nflags: i\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var opts cliOptions
	fs := newFlagSet(&opts)
	if err := fs.Parse([]string{"--config", path, "--engine", "regexp2"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(&opts, fs)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Engine != "regexp2" {
		t.Fatalf("engine = %q, want flag override", cfg.Engine)
	}
	if cfg.Flags != "i" {
		t.Fatalf("flags = %q, want value from file", cfg.Flags)
	}
}
