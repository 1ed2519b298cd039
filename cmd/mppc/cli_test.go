package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestCLICompilesAndWritesQuad builds the mppc binary and runs it against
// small fixtures on disk, the same build-then-exec style as go-dws's
// cmd/dwscript/control_flow_cli_test.go.
func TestCLICompilesAndWritesQuad(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "mppc")

	build := exec.Command("go", "build", "-o", binary, ".")
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build mppc: %v", err)
	}

	src := filepath.Join(dir, "prog.mpp")
	if err := os.WriteFile(src, []byte(`int main() { int x = 1; return x; }`), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	tests := []struct {
		name      string
		args      []string
		wantFile  string
		wantParts []string
	}{
		{
			name:      "default output path",
			args:      []string{src},
			wantFile:  filepath.Join(dir, "prog.quad"),
			wantParts: []string{"PROC main", "ENDP main"},
		},
		{
			name:      "explicit output path",
			args:      []string{src, "-o", filepath.Join(dir, "custom.quad")},
			wantFile:  filepath.Join(dir, "custom.quad"),
			wantParts: []string{"PROC main"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command(binary, tc.args...)
			if out, err := cmd.CombinedOutput(); err != nil {
				t.Fatalf("mppc exited with an error: %v\noutput:\n%s", err, out)
			}

			data, err := os.ReadFile(tc.wantFile)
			if err != nil {
				t.Fatalf("expected output at %s: %v", tc.wantFile, err)
			}
			for _, part := range tc.wantParts {
				if !strings.Contains(string(data), part) {
					t.Errorf("expected %q in output, got:\n%s", part, data)
				}
			}
		})
	}
}

// TestCLIAlwaysExitsZero exercises the "exit 0 in all cases" contract of
// spec §6, including a missing input file.
func TestCLIAlwaysExitsZero(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "mppc")

	build := exec.Command("go", "build", "-o", binary, ".")
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build mppc: %v", err)
	}

	cases := [][]string{
		{},
		{filepath.Join(dir, "does-not-exist.mpp")},
		{"--bogus-flag", filepath.Join(dir, "does-not-exist.mpp")},
	}

	for _, args := range cases {
		cmd := exec.Command(binary, args...)
		_ = cmd.Run()
		if cmd.ProcessState.ExitCode() != 0 {
			t.Errorf("args %v: expected exit code 0, got %d", args, cmd.ProcessState.ExitCode())
		}
	}
}

// TestCLIVersionFlag checks the -v/--version shorthand prints a version
// line instead of attempting to compile.
func TestCLIVersionFlag(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "mppc")

	build := exec.Command("go", "build", "-o", binary, ".")
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build mppc: %v", err)
	}

	out, err := exec.Command(binary, "-v").CombinedOutput()
	if err != nil {
		t.Fatalf("mppc -v exited with an error: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(string(out), "mppc version") {
		t.Errorf("expected a version line, got:\n%s", out)
	}
}
