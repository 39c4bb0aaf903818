package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openmotics/gwci/internal/domain/entities"
)

func writeTestTree(t *testing.T, paths []string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", p, err)
		}
		if err := os.WriteFile(full, []byte("# test"), 0600); err != nil {
			t.Fatalf("Failed to create %s: %v", p, err)
		}
	}
	return root
}

func TestSelectionService_DiscoverTests(t *testing.T) {
	root := writeTestTree(t, []string{
		"gateway_tests/users_test.py",
		"plugins_tests/base_test.py",
		"plugins_tests/runner_test.py",
		"serial_test.py",
		"toolbox.py", // does not match the naming convention
	})

	svc := NewSelectionService(entities.NewBlacklist([]string{"plugins_tests/base_test.py"}), "")

	selected, skipped, err := svc.DiscoverTests(root)
	if err != nil {
		t.Fatalf("DiscoverTests() failed: %v", err)
	}

	wantSelected := map[string]bool{
		"gateway_tests/users_test.py":  true,
		"plugins_tests/runner_test.py": true,
		"serial_test.py":               true,
	}
	if len(selected) != len(wantSelected) {
		t.Fatalf("selected = %d files, want %d", len(selected), len(wantSelected))
	}
	for _, file := range selected {
		if !wantSelected[file.Path] {
			t.Errorf("unexpected selected file %q", file.Path)
		}
	}

	if len(skipped) != 1 || skipped[0].Path != "plugins_tests/base_test.py" {
		t.Errorf("skipped = %v, want exactly plugins_tests/base_test.py", skipped)
	}
}

func TestSelectionService_SuperstringOfBlacklistEntryIsSkipped(t *testing.T) {
	// Regression test for the containment quirk: a file whose path contains
	// a blacklist entry is skipped even though it is not an exact entry.
	root := writeTestTree(t, []string{
		"x/plugins_tests/base_test.py",
	})

	svc := NewSelectionService(entities.NewBlacklist([]string{"plugins_tests/base_test.py"}), "")

	selected, skipped, err := svc.DiscoverTests(root)
	if err != nil {
		t.Fatalf("DiscoverTests() failed: %v", err)
	}
	if len(selected) != 0 {
		t.Errorf("selected = %v, want none", selected)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, want one entry", skipped)
	}
}

func TestSelectionService_ReportNames(t *testing.T) {
	root := writeTestTree(t, []string{
		"plugins_tests/runner_test.py",
	})

	svc := NewSelectionService(entities.NewBlacklist(nil), "")

	selected, _, err := svc.DiscoverTests(root)
	if err != nil {
		t.Fatalf("DiscoverTests() failed: %v", err)
	}
	if len(selected) != 1 {
		t.Fatalf("selected = %d files, want 1", len(selected))
	}
	if selected[0].ReportName != "plugins_tests_runner_test.py" {
		t.Errorf("ReportName = %q, want %q", selected[0].ReportName, "plugins_tests_runner_test.py")
	}
}

func TestSelectionService_CustomPattern(t *testing.T) {
	root := writeTestTree(t, []string{
		"checks/energy_check.py",
		"checks/energy_test.py",
	})

	svc := NewSelectionService(entities.NewBlacklist(nil), "*_check.py")

	selected, _, err := svc.DiscoverTests(root)
	if err != nil {
		t.Fatalf("DiscoverTests() failed: %v", err)
	}
	if len(selected) != 1 || selected[0].Path != "checks/energy_check.py" {
		t.Errorf("selected = %v, want exactly checks/energy_check.py", selected)
	}
}

func TestSelectionService_MissingRoot(t *testing.T) {
	svc := NewSelectionService(entities.NewBlacklist(nil), "")

	if _, _, err := svc.DiscoverTests(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("DiscoverTests() should fail for a missing root")
	}
}
