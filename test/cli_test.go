package test_test

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildCLI builds the gwci CLI binary for testing
func buildCLI(t *testing.T) string {
	t.Helper()

	// Use a shared build directory
	buildDir := filepath.Join("..", "test-dist", "cli-bin")
	if err := os.MkdirAll(buildDir, 0750); err != nil {
		t.Fatalf("Failed to create build dir: %v", err)
	}

	cliPath, err := filepath.Abs(filepath.Join(buildDir, "gwci"))
	if err != nil {
		t.Fatalf("Failed to resolve CLI path: %v", err)
	}

	// Check if already built
	if _, err := os.Stat(cliPath); err == nil {
		return cliPath
	}

	t.Log("Building gwci CLI...")
	cmd := exec.Command("go", "build", "-o", cliPath, "../cmd/gwci") // #nosec G204 -- test code with controlled input

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\nOutput: %s", err, output)
	}

	t.Log("CLI built successfully")
	return cliPath
}

// writeStubTool writes an executable shell script standing in for an external
// tool (test runner, type checker, trigger).
func writeStubTool(t *testing.T, path, script string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("Failed to create tool dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(script), 0700); err != nil { // #nosec G306 -- stub tool must be executable
		t.Fatalf("Failed to write stub tool: %v", err)
	}
}

// setupWorkspace builds a throwaway gateway-style workspace: a unit test
// tree, stub external tools, and a gwci.yml wiring them together with
// absolute paths. It returns the workspace root.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	ws := t.TempDir()

	testFiles := []string{
		"gateway_tests/users_test.py",
		"gateway_tests/sensors_failing_test.py",
		"plugins_tests/base_test.py",
		"power_tests/helpers.py",
	}
	for _, f := range testFiles {
		path := filepath.Join(ws, "testing", "unittests", f)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("Failed to create test tree: %v", err)
		}
		if err := os.WriteFile(path, []byte("# test module\n"), 0600); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
	}

	// Stub test runner: writes a minimal report to the --junit-xml target and
	// fails for any file whose name contains "failing".
	writeStubTool(t, filepath.Join(ws, "bin", "fake-pytest"), `#!/bin/sh
status=0
report=""
for arg in "$@"; do
  case "$arg" in
    --junit-xml=*) report="${arg#--junit-xml=}" ;;
  esac
done
case "$1" in
  *failing*) status=1 ;;
esac
if [ -n "$report" ]; then
  mkdir -p "$(dirname "$report")"
  printf '<?xml version="1.0"?>\n<testsuite tests="1" failures="%s"/>\n' "$status" > "$report"
fi
exit $status
`)

	writeStubTool(t, filepath.Join(ws, "bin", "fake-mypy"), `#!/bin/sh
echo "Success: no issues found"
exit 0
`)

	// Stub downstream trigger: records the branch it was fired with.
	writeStubTool(t, filepath.Join(ws, "bin", "fake-trigger"), `#!/bin/sh
echo "$1" > "`+filepath.Join(ws, "trigger.txt")+`"
`)

	config := fmt.Sprintf(`tests:
  root: %[1]s/testing/unittests
  blacklist:
    - plugins_tests/base_test.py
runtimes:
  - name: python3
    command: [%[1]s/bin/fake-pytest]
    reports_dir: %[1]s/gw-unit-reports
typecheck:
  command: [%[1]s/bin/fake-mypy]
  source_dir: %[1]s/src
  report_path: %[1]s/typecheck-reports/mypy.xml
pipeline:
  timeout_minutes: 5
  trigger:
    branch: develop
    command: [%[1]s/bin/fake-trigger]
`, ws)
	if err := os.WriteFile(filepath.Join(ws, "gwci.yml"), []byte(config), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	return ws
}

func runCLI(t *testing.T, cliPath string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(cliPath, args...) // #nosec G204 -- test code with controlled input
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// TestCLI_Help tests help output for all commands
func TestCLI_Help(t *testing.T) {
	cliPath := buildCLI(t)

	commands := []string{
		"",
		"run",
		"list",
		"typecheck",
		"pipeline",
		"package",
		"container",
		"verify",
		"selftest",
	}

	for _, cmd := range commands {
		t.Run("help_"+cmd, func(t *testing.T) {
			args := []string{"--help"}
			if cmd != "" {
				args = []string{cmd, "--help"}
			}

			output, err := runCLI(t, cliPath, args...)

			// Help should exit with 0 or 2 (flag's help exit code)
			if err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					if exitErr.ExitCode() != 2 {
						t.Errorf("Help exited with unexpected code: %d", exitErr.ExitCode())
					}
				}
			}

			if !strings.Contains(output, "Usage") && !strings.Contains(output, "Commands") {
				t.Errorf("Expected usage information in help output:\n%s", output)
			}
		})
	}
}

// TestCLI_List tests test file discovery and blacklist display
func TestCLI_List(t *testing.T) {
	cliPath := buildCLI(t)
	ws := setupWorkspace(t)

	output, err := runCLI(t, cliPath, "list", "-config", filepath.Join(ws, "gwci.yml"))
	if err != nil {
		t.Fatalf("list command failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "gateway_tests/users_test.py") {
		t.Errorf("Expected users_test.py in list output:\n%s", output)
	}
	if !strings.Contains(output, "gateway_tests_users_test.py.xml") {
		t.Errorf("Expected report name mapping in list output:\n%s", output)
	}
	if !strings.Contains(output, "plugins_tests/base_test.py") {
		t.Errorf("Expected blacklisted file in list output:\n%s", output)
	}
	if strings.Contains(output, "helpers.py") {
		t.Errorf("Non-matching file should not be listed:\n%s", output)
	}
	if !strings.Contains(output, "2 selected, 1 blacklisted") {
		t.Errorf("Expected selection counts in list output:\n%s", output)
	}
}

// TestCLI_Run tests the batch test run: failures are reported but never fail
// the command, and one report file appears per selected test file.
func TestCLI_Run(t *testing.T) {
	cliPath := buildCLI(t)
	ws := setupWorkspace(t)

	output, err := runCLI(t, cliPath, "run", "-config", filepath.Join(ws, "gwci.yml"))
	if err != nil {
		t.Fatalf("run command should exit 0 despite test failures: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Passed: 1") || !strings.Contains(output, "Failed: 1") {
		t.Errorf("Expected 1 passed and 1 failed in summary:\n%s", output)
	}
	if !strings.Contains(output, "Skipped: 1") {
		t.Errorf("Expected blacklisted file counted as skipped:\n%s", output)
	}

	for _, report := range []string{
		"gateway_tests_users_test.py.xml",
		"gateway_tests_sensors_failing_test.py.xml",
	} {
		if _, err := os.Stat(filepath.Join(ws, "gw-unit-reports", report)); err != nil {
			t.Errorf("Expected report %s: %v", report, err)
		}
	}
	if _, err := os.Stat(filepath.Join(ws, "gw-unit-reports", "plugins_tests_base_test.py.xml")); err == nil {
		t.Error("Blacklisted file should not get a report")
	}
}

// TestCLI_Run_ToolMissing tests that an unstartable test tool still yields a
// synthesized report per file and a zero exit code.
func TestCLI_Run_ToolMissing(t *testing.T) {
	cliPath := buildCLI(t)
	ws := setupWorkspace(t)

	config := fmt.Sprintf(`tests:
  root: %[1]s/testing/unittests
runtimes:
  - name: python3
    command: [%[1]s/bin/does-not-exist]
    reports_dir: %[1]s/gw-unit-reports
`, ws)
	configPath := filepath.Join(ws, "broken.yml")
	if err := os.WriteFile(configPath, []byte(config), 0600); err != nil {
		t.Fatal(err)
	}

	output, err := runCLI(t, cliPath, "run", "-config", configPath)
	if err != nil {
		t.Fatalf("run command should exit 0 when the tool cannot start: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Errors: 2") {
		t.Errorf("Expected 2 errors in summary:\n%s", output)
	}

	report := filepath.Join(ws, "gw-unit-reports", "gateway_tests_users_test.py.xml")
	data, err := os.ReadFile(report) // #nosec G304 -- report path is constructed from test temp dir
	if err != nil {
		t.Fatalf("Expected synthesized report: %v", err)
	}
	if !strings.Contains(string(data), "test tool could not be started") {
		t.Errorf("Synthesized report should carry the invocation error:\n%s", data)
	}
}

// TestCLI_Typecheck tests the typecheck command with a passing stub
func TestCLI_Typecheck(t *testing.T) {
	cliPath := buildCLI(t)
	ws := setupWorkspace(t)

	output, err := runCLI(t, cliPath, "typecheck", "-config", filepath.Join(ws, "gwci.yml"))
	if err != nil {
		t.Fatalf("typecheck command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Typecheck passed") {
		t.Errorf("Expected success message:\n%s", output)
	}
}

// TestCLI_Typecheck_ExitCodePassthrough tests that the tool's own exit code
// surfaces unchanged
func TestCLI_Typecheck_ExitCodePassthrough(t *testing.T) {
	cliPath := buildCLI(t)
	ws := setupWorkspace(t)

	writeStubTool(t, filepath.Join(ws, "bin", "fake-mypy"), `#!/bin/sh
echo "src/users.py:10: error: incompatible type"
exit 2
`)

	output, err := runCLI(t, cliPath, "typecheck", "-config", filepath.Join(ws, "gwci.yml"))
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected non-zero exit, got: %v\nOutput: %s", err, output)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("Exit code = %d, want the tool's own code 2", exitErr.ExitCode())
	}
	if !strings.Contains(output, "incompatible type") {
		t.Errorf("Expected tool output passed through:\n%s", output)
	}
}

// TestCLI_Pipeline tests the full stage sequence and the branch-gated trigger
func TestCLI_Pipeline(t *testing.T) {
	cliPath := buildCLI(t)

	t.Run("develop branch fires trigger", func(t *testing.T) {
		ws := setupWorkspace(t)

		output, err := runCLI(t, cliPath, "pipeline",
			"-config", filepath.Join(ws, "gwci.yml"), "-branch", "develop")
		if err != nil {
			t.Fatalf("pipeline failed: %v\nOutput: %s", err, output)
		}

		if !strings.Contains(output, "Downstream integration tests triggered") {
			t.Errorf("Expected trigger message:\n%s", output)
		}
		data, err := os.ReadFile(filepath.Join(ws, "trigger.txt")) // #nosec G304 -- path constructed from test temp dir
		if err != nil {
			t.Fatalf("Trigger stub did not record a firing: %v", err)
		}
		if strings.TrimSpace(string(data)) != "develop" {
			t.Errorf("Trigger fired with branch %q, want develop", strings.TrimSpace(string(data)))
		}
	})

	t.Run("feature branch skips trigger", func(t *testing.T) {
		ws := setupWorkspace(t)

		output, err := runCLI(t, cliPath, "pipeline",
			"-config", filepath.Join(ws, "gwci.yml"), "-branch", "feature/shutters")
		if err != nil {
			t.Fatalf("pipeline failed: %v\nOutput: %s", err, output)
		}

		if strings.Contains(output, "Downstream integration tests triggered") {
			t.Errorf("Trigger should not fire on a feature branch:\n%s", output)
		}
		if _, err := os.Stat(filepath.Join(ws, "trigger.txt")); err == nil {
			t.Error("Trigger stub recorded a firing on a feature branch")
		}
	})
}

// TestCLI_Verify tests checksum verification
func TestCLI_Verify(t *testing.T) {
	cliPath := buildCLI(t)

	tmpDir := t.TempDir()
	bundle := filepath.Join(tmpDir, "gateway.tgz")
	content := []byte("frozen gateway bundle\n")
	if err := os.WriteFile(bundle, content, 0600); err != nil {
		t.Fatalf("Failed to create bundle file: %v", err)
	}
	digest := sha256.Sum256(content)
	expected := hex.EncodeToString(digest[:])

	t.Run("valid checksum", func(t *testing.T) {
		output, err := runCLI(t, cliPath, "verify", "-file", bundle, "-sha256", expected)
		if err != nil {
			t.Fatalf("verify failed: %v\nOutput: %s", err, output)
		}
		if !strings.Contains(output, "SHA256 checksum verified") {
			t.Errorf("Expected verification message:\n%s", output)
		}
	})

	t.Run("wrong checksum", func(t *testing.T) {
		output, err := runCLI(t, cliPath, "verify", "-file", bundle, "-sha256", strings.Repeat("0", 64))
		if err == nil {
			t.Fatalf("verify should fail on a checksum mismatch\nOutput: %s", output)
		}
	})

	t.Run("nothing to verify", func(t *testing.T) {
		if _, err := runCLI(t, cliPath, "verify", "-file", bundle); err == nil {
			t.Fatal("verify should fail when no check is requested")
		}
	})
}

// TestCLI_Package tests the freeze command with a stub packaging tool
func TestCLI_Package(t *testing.T) {
	cliPath := buildCLI(t)
	ws := setupWorkspace(t)
	distDir := filepath.Join(ws, "dist")

	writeStubTool(t, filepath.Join(ws, "bin", "fake-pyinstaller"), `#!/bin/sh
mkdir -p "`+distDir+`"
echo "binary" > "`+filepath.Join(distDir, "openmotics_service")+`"
`)

	config := fmt.Sprintf(`tests:
  root: %[1]s/testing/unittests
runtimes:
  - name: python3
    command: [%[1]s/bin/fake-pytest]
    reports_dir: %[1]s/gw-unit-reports
freeze:
  command: [%[1]s/bin/fake-pyinstaller]
  spec_file: openmotics_service.spec
  output_dir: %[1]s/dist
`, ws)
	configPath := filepath.Join(ws, "freeze.yml")
	if err := os.WriteFile(configPath, []byte(config), 0600); err != nil {
		t.Fatal(err)
	}

	output, err := runCLI(t, cliPath, "package", "-config", configPath)
	if err != nil {
		t.Fatalf("package failed: %v\nOutput: %s", err, output)
	}

	sidecar := filepath.Join(distDir, "openmotics_service.sha256")
	data, err := os.ReadFile(sidecar) // #nosec G304 -- path constructed from test temp dir
	if err != nil {
		t.Fatalf("Expected SHA256 sidecar: %v", err)
	}
	if !strings.Contains(string(data), "openmotics_service") {
		t.Errorf("Sidecar should name the bundle file:\n%s", data)
	}
}

// TestCLI_Selftest tests the serial loopback self check
func TestCLI_Selftest(t *testing.T) {
	cliPath := buildCLI(t)

	output, err := runCLI(t, cliPath, "selftest", "-loops", "2")
	if err != nil {
		t.Fatalf("selftest failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Selftest passed (2 loops)") {
		t.Errorf("Expected selftest success message:\n%s", output)
	}
}

// TestCLI_UnknownCommand tests the dispatch error path
func TestCLI_UnknownCommand(t *testing.T) {
	cliPath := buildCLI(t)

	output, err := runCLI(t, cliPath, "frobnicate")
	if err == nil {
		t.Fatal("Expected non-zero exit for unknown command")
	}
	if !strings.Contains(output, "Unknown command") {
		t.Errorf("Expected unknown command message:\n%s", output)
	}
}
