// Package integration provides integration tests for refsift commands.
package integration

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

var (
	refsiftBinary     string
	refsiftBinaryOnce sync.Once
	refsiftBinaryErr  error
)

// getRefsiftBinary builds the refsift binary once and returns its path.
func getRefsiftBinary(t *testing.T) string {
	t.Helper()
	refsiftBinaryOnce.Do(func() {
		// Get module root directory
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			refsiftBinaryErr = os.ErrInvalid
			return
		}
		moduleRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))

		tmpDir, err := os.MkdirTemp("", "refsift-test-*")
		if err != nil {
			refsiftBinaryErr = err
			return
		}
		refsiftBinary = filepath.Join(tmpDir, "refsift")

		cmd := exec.Command("go", "build", "-o", refsiftBinary, "./cmd/refsift")
		cmd.Dir = moduleRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			refsiftBinaryErr = &buildError{output: string(output), err: err}
			return
		}
	})
	if refsiftBinaryErr != nil {
		t.Fatalf("failed to build refsift: %v", refsiftBinaryErr)
	}
	return refsiftBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

// runRefsift executes refsift in workDir and returns its combined output.
func runRefsift(t *testing.T, workDir string, args ...string) (string, error) {
	t.Helper()
	bin := getRefsiftBinary(t)
	cmd := exec.Command(bin, args...)
	cmd.Dir = workDir
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// exitCode extracts the process exit code from a runRefsift error.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 0
}

// writeCSV writes an input file into dir and returns its name.
func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}
