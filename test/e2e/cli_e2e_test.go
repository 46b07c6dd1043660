package e2e

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/mcarea into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "mcarea"
	if runtime.GOOS == "windows" {
		binName = "mcarea.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs in test/e2e; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/mcarea")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build mcarea: %v", err)
	}
	return binPath
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n
}

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "mcarea",
			wantCode: 0,
		},
		{
			name:     "Quiet Report",
			args:     []string{"-q", "--no-plots", "--seed", "1"},
			wantOut:  "exact 0.944517",
			wantCode: 0,
		},
		{
			name:     "Invalid DPI",
			args:     []string{"--dpi", "0"},
			wantOut:  "dpi must be positive",
			wantCode: 4,
		},
		{
			name:     "Unknown Flag",
			args:     []string{"--algo", "fast"},
			wantOut:  "flag provided but not defined",
			wantCode: 4,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"--simulate", "--timeout", "1ns"},
			wantOut:  "timed out",
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Dir = t.TempDir()
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			if exitErr, ok := err.(*exec.ExitError); ok {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("Command did not run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("Exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}

// TestCLI_E2E_FullPipeline runs in an empty directory: both tables are
// generated, the report is printed and the three images are written.
func TestCLI_E2E_FullPipeline(t *testing.T) {
	binPath := buildBinary(t)
	dir := t.TempDir()

	cmd := exec.Command(binPath, "--dir", dir, "--seed", "7", "--dpi", "40")
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("mcarea failed: %v\nOutput: %s", err, output)
	}
	outStr := string(output)

	for _, name := range []string{"wide_area_results.csv", "narrow_area_results.csv"} {
		if got := countLines(t, filepath.Join(dir, name)); got != 201 {
			t.Errorf("%s has %d lines, want 201", name, got)
		}
	}
	for _, name := range []string{"area_vs_N.png", "error_vs_N.png", "combined_plots.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
	for _, want := range []string{"Exact area: 0.944517", "Relative error range (wide)", "Relative error range (narrow)"} {
		if !strings.Contains(outStr, want) {
			t.Errorf("Output missing %q:\n%s", want, outStr)
		}
	}

	// A second run loads the tables it just wrote.
	again := exec.Command(binPath, "--dir", dir, "-q", "--no-plots")
	again.Env = cmd.Env
	second, err := again.Output()
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if strings.Contains(string(second), "Could not load data") {
		t.Errorf("second run regenerated the tables:\n%s", second)
	}
}
