package gateways

import (
	"context"

	"github.com/openmotics/gwci/internal/domain/entities"
)

// TestTool invokes the external test-execution tool against a single file,
// directing verbose logging and timing output, and pointing the tool at a
// structured report destination.
type TestTool struct {
	executor *ToolExecutor
	command  []string
}

// NewTestTool creates a test tool gateway for one runtime's command.
func NewTestTool(executor *ToolExecutor, command []string) *TestTool {
	return &TestTool{
		executor: executor,
		command:  command,
	}
}

// Invocation builds the per-file tool invocation. The file path is passed
// relative to root, which also becomes the working directory, so report
// paths inside the structured report stay root-relative.
func (t *TestTool) Invocation(root string, file entities.TestFile, reportPath string) ToolInvocation {
	argv := append(append([]string(nil), t.command...),
		file.Path,
		"-v",
		"--log-level=DEBUG",
		"--durations=25",
		"--junit-xml="+reportPath,
	)
	return ToolInvocation{
		Argv:        argv,
		WorkingDir:  root,
		Description: "test " + file.Path,
	}
}

// RunFile executes the tool for one test file. The exit status is reported
// but never translated into an error: per-file failure handling is the
// caller's concern and the batch must continue regardless.
func (t *TestTool) RunFile(ctx context.Context, root string, file entities.TestFile, reportPath string) entities.ToolOutcome {
	result := t.executor.Execute(ctx, t.Invocation(root, file, reportPath))
	return entities.ToolOutcome{
		Started:  result.Started,
		ExitCode: result.ExitCode,
		Duration: result.Duration,
		Output:   result.Stdout + result.Stderr,
	}
}
