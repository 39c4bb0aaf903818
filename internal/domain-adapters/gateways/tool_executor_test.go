package gateways

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestToolExecutor_Execute_Success(t *testing.T) {
	te := NewToolExecutor()

	result := te.Execute(context.Background(), ToolInvocation{
		Argv:        []string{"echo", "Hello, World!"},
		Description: "test echo",
	})

	if !result.Success {
		t.Errorf("Execute() failed: %v", result.Error)
	}

	if result.ExitCode != 0 {
		t.Errorf("Execute() exit code = %d, want 0", result.ExitCode)
	}

	if result.Stdout != "Hello, World!\n" {
		t.Errorf("Execute() stdout = %q, want %q", result.Stdout, "Hello, World!\n")
	}
}

func TestToolExecutor_Execute_Failure(t *testing.T) {
	te := NewToolExecutor()

	result := te.Execute(context.Background(), ToolInvocation{
		Argv:        []string{"sh", "-c", "exit 42"},
		Description: "test failure",
	})

	if result.Success {
		t.Error("Execute() should have failed")
	}

	if !result.Started {
		t.Error("Execute() should have started the tool")
	}

	if result.ExitCode != 42 {
		t.Errorf("Execute() exit code = %d, want 42", result.ExitCode)
	}
}

func TestToolExecutor_Execute_ToolNotFound(t *testing.T) {
	te := NewToolExecutor()

	result := te.Execute(context.Background(), ToolInvocation{
		Argv:        []string{"definitely-not-a-real-tool"},
		Description: "test missing tool",
	})

	if result.Success {
		t.Error("Execute() should have failed")
	}

	if result.Started {
		t.Error("Execute() should not report a missing tool as started")
	}
}

func TestToolExecutor_Execute_WithEnvironment(t *testing.T) {
	te := NewToolExecutor()

	result := te.Execute(context.Background(), ToolInvocation{
		Argv: []string{"sh", "-c", "echo $TEST_VAR"},
		Env: map[string]string{
			"TEST_VAR": "test_value",
		},
		Description: "test env vars",
	})

	if !result.Success {
		t.Errorf("Execute() failed: %v", result.Error)
	}

	if result.Stdout != "test_value\n" {
		t.Errorf("Execute() stdout = %q, want %q", result.Stdout, "test_value\n")
	}
}

func TestToolExecutor_Execute_Timeout(t *testing.T) {
	te := NewToolExecutor()

	result := te.Execute(context.Background(), ToolInvocation{
		Argv:        []string{"sleep", "5"},
		Timeout:     100 * time.Millisecond,
		Description: "test timeout",
	})

	if result.Success {
		t.Error("Execute() should have timed out")
	}

	if result.Error == nil {
		t.Error("Execute() should have returned an error")
	}
}

func TestToolExecutor_Execute_WorkingDirectory(t *testing.T) {
	te := NewToolExecutor()
	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	result := te.Execute(context.Background(), ToolInvocation{
		Argv:        []string{"ls", "test.txt"},
		WorkingDir:  tempDir,
		Description: "test working directory",
	})

	if !result.Success {
		t.Errorf("Execute() failed: %v", result.Error)
	}

	if result.Stdout != "test.txt\n" {
		t.Errorf("Execute() stdout = %q, want %q", result.Stdout, "test.txt\n")
	}
}

func TestToolExecutor_Execute_EmptyArgv(t *testing.T) {
	te := NewToolExecutor()

	result := te.Execute(context.Background(), ToolInvocation{
		Description: "test empty argv",
	})

	if result.Success {
		t.Error("Execute() should fail for an empty argv")
	}
}
