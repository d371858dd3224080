package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/rangeprod into a temporary directory. go test
// runs from test/e2e, so the module root is two levels up.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	binName := "rangeprod"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/rangeprod")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build rangeprod: %v", err)
	}
	return binPath
}

func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)

	tests := []struct {
		name       string
		args       []string
		stdin      string
		wantStdout string // substring, empty to skip
		exact      bool   // compare stdout exactly
		wantCode   int
	}{
		{name: "positional", args: []string{"4", "1", "11"}, wantStdout: "Result: 3628800\n", exact: true},
		{name: "single thread", args: []string{"1", "1", "11"}, wantStdout: "Result: 3628800\n", exact: true},
		{name: "more threads than integers", args: []string{"8", "5", "6"}, wantStdout: "Result: 5\n", exact: true},
		{name: "empty range", args: []string{"-q", "3", "10", "1"}, wantStdout: "1\n", exact: true},
		{name: "overshoot", args: []string{"-q", "-policy", "overshoot", "3", "1", "11"}, wantStdout: "479001600\n", exact: true},
		{name: "wraparound", args: []string{"-q", "4", "1", "26"}, wantStdout: "7034535277573963776\n", exact: true},
		{name: "prompt", stdin: "4\n1\n11\n", wantStdout: "Thread count: Start number: End number: Result: 3628800\n", exact: true},
		{name: "compare all", args: []string{"-algo", "all", "4", "1", "21"}, wantStdout: "Global Status: Success"},
		{name: "help", args: []string{"--help"}},
		{name: "version", args: []string{"--version"}, wantStdout: "rangeprod"},
		{name: "zero threads", args: []string{"0", "1", "11"}, wantCode: 4},
		{name: "malformed integer", args: []string{"2", "one", "11"}, wantCode: 4},
		{name: "bad prompt input", stdin: "x\n", wantCode: 4},
		{name: "timeout", args: []string{"-timeout", "1ms", "-algo", "exact", "1", "1", "1000000000"}, wantCode: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			cmd.Stdin = strings.NewReader(tt.stdin)
			var stderr strings.Builder
			cmd.Stderr = &stderr
			output, err := cmd.Output()
			stdout := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running rangeprod: %v", err)
			}
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout, stderr.String())
			}

			switch {
			case tt.exact && stdout != tt.wantStdout:
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			case !tt.exact && !strings.Contains(stdout, tt.wantStdout):
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout)
			}
		})
	}
}
