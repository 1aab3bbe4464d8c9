package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

// captureStdout redirects os.Stdout for the duration of f and returns
// everything written to it. The commands under test print results via
// plain fmt.Println rather than through cli.App's Writer field, so a
// real os.Stdout swap is the only way to observe their output.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	f()

	w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read captured stdout: %v", err)
	}
	return buf.String()
}

// exitCodeOf extracts the exit code a cli.ExitCoder error carries, or
// fails the test if err isn't one.
func exitCodeOf(t *testing.T, err error) int {
	t.Helper()
	ec, ok := err.(cli.ExitCoder)
	if !ok {
		t.Fatalf("expected a cli.ExitCoder, got %T (%v)", err, err)
	}
	return ec.ExitCode()
}

func TestEvalCommandPrintsResult(t *testing.T) {
	var runErr error
	out := captureStdout(t, func() {
		runErr = newApp().Run([]string{"newlang", "eval", "1 + 2"})
	})
	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
	if got := strings.TrimSpace(out); got != "3" {
		t.Errorf("expected %q, got %q", "3", got)
	}
}

func TestEvalCommandMissingExprIsUsageError(t *testing.T) {
	err := newApp().Run([]string{"newlang", "eval"})
	if err == nil {
		t.Fatal("expected a usage error")
	}
	if got := exitCodeOf(t, err); got != exitUsage {
		t.Errorf("expected exit code %d, got %d", exitUsage, got)
	}
}

func TestEvalCommandDiagnosedErrorExitsError(t *testing.T) {
	err := newApp().Run([]string{"newlang", "eval", "1 + ''"})
	if err == nil {
		t.Fatal("expected a diagnosed error")
	}
	if got := exitCodeOf(t, err); got != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, got)
	}
}

func TestEvalCommandWithImportPreloadsSession(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/preload.nl"
	if err := os.WriteFile(path, []byte("$.base := 10"), 0644); err != nil {
		t.Fatalf("write preload file: %v", err)
	}

	var runErr error
	out := captureStdout(t, func() {
		runErr = newApp().Run([]string{"newlang", "eval", "-I", path, "$base + 5"})
	})
	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
	if got := strings.TrimSpace(out); got != "15" {
		t.Errorf("expected %q, got %q", "15", got)
	}
}

func TestRunCommandWithoutExecPrintsNothing(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prog.nl"
	if err := os.WriteFile(path, []byte("1 + 2"), 0644); err != nil {
		t.Fatalf("write program file: %v", err)
	}

	var runErr error
	out := captureStdout(t, func() {
		runErr = newApp().Run([]string{"newlang", "run", path})
	})
	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
	if out != "" {
		t.Errorf("expected no output without --exec, got %q", out)
	}
}

func TestRunCommandWithExecPrintsResult(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prog.nl"
	if err := os.WriteFile(path, []byte("1 + 2"), 0644); err != nil {
		t.Fatalf("write program file: %v", err)
	}

	var runErr error
	out := captureStdout(t, func() {
		runErr = newApp().Run([]string{"newlang", "run", "--exec", path})
	})
	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
	if got := strings.TrimSpace(out); got != "3" {
		t.Errorf("expected %q, got %q", "3", got)
	}
}

func TestRunCommandMissingFileIsUsageError(t *testing.T) {
	err := newApp().Run([]string{"newlang", "run"})
	if err == nil {
		t.Fatal("expected a usage error")
	}
	if got := exitCodeOf(t, err); got != exitUsage {
		t.Errorf("expected exit code %d, got %d", exitUsage, got)
	}
}

func TestRunCommandUnreadableFileIsUsageError(t *testing.T) {
	err := newApp().Run([]string{"newlang", "run", "/nonexistent/path/does-not-exist.nl"})
	if err == nil {
		t.Fatal("expected a usage error")
	}
	if got := exitCodeOf(t, err); got != exitUsage {
		t.Errorf("expected exit code %d, got %d", exitUsage, got)
	}
}

func TestLintCommandValidFileReportsOK(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prog.nl"
	if err := os.WriteFile(path, []byte("x := 1 + 2"), 0644); err != nil {
		t.Fatalf("write program file: %v", err)
	}

	var runErr error
	out := captureStdout(t, func() {
		runErr = newApp().Run([]string{"newlang", "lint", path})
	})
	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("expected an 'ok' report, got %q", out)
	}
}

func TestLintCommandMissingArgIsUsageError(t *testing.T) {
	err := newApp().Run([]string{"newlang", "lint"})
	if err == nil {
		t.Fatal("expected a usage error")
	}
	if got := exitCodeOf(t, err); got != exitUsage {
		t.Errorf("expected exit code %d, got %d", exitUsage, got)
	}
}

func TestLintCommandParseErrorExitsError(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.nl"
	if err := os.WriteFile(path, []byte("(((("), 0644); err != nil {
		t.Fatalf("write program file: %v", err)
	}

	err := newApp().Run([]string{"newlang", "lint", path})
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if got := exitCodeOf(t, err); got != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, got)
	}
}

func TestLintCommandWithASTFlagPrintsReprintedTerm(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prog.nl"
	if err := os.WriteFile(path, []byte("1 + 2"), 0644); err != nil {
		t.Fatalf("write program file: %v", err)
	}

	var runErr error
	out := captureStdout(t, func() {
		runErr = newApp().Run([]string{"newlang", "lint", "--ast", path})
	})
	if runErr != nil {
		t.Fatalf("Run: %v", runErr)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("expected the final 'ok' line alongside the printed AST, got %q", out)
	}
}
