package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// ToolExecutor handles execution of external CI tools.
type ToolExecutor struct{}

// NewToolExecutor creates a new tool executor
func NewToolExecutor() *ToolExecutor {
	return &ToolExecutor{}
}

// ToolInvocation contains the configuration for launching one external tool.
type ToolInvocation struct {
	Argv        []string
	WorkingDir  string
	Env         map[string]string
	Timeout     time.Duration // zero means no timeout at this layer
	Description string
}

// ExecuteResult contains the result of a tool invocation
type ExecuteResult struct {
	Success  bool
	Started  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Execute runs an external tool with the given invocation. The tool is
// launched directly from its argv, not through a shell.
func (te *ToolExecutor) Execute(ctx context.Context, inv ToolInvocation) *ExecuteResult {
	startTime := time.Now()
	result := &ExecuteResult{}

	if len(inv.Argv) == 0 {
		result.Error = fmt.Errorf("empty argv for %s", inv.Description)
		result.ExitCode = -1
		return result
	}

	execCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	//nolint:gosec // G204: Tool invocation is intentional and controlled by workspace configuration
	cmd := exec.CommandContext(execCtx, inv.Argv[0], inv.Argv[1:]...)

	if inv.WorkingDir != "" {
		cmd.Dir = inv.WorkingDir
	}

	env := os.Environ()
	for key, value := range inv.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Error = err
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if errors.As(err, &exitErr) {
			result.Started = true
			result.ExitCode = exitErr.ExitCode()
		} else if execCtx.Err() == context.DeadlineExceeded {
			result.Error = fmt.Errorf("%s timed out after %v", inv.Description, inv.Timeout)
			result.ExitCode = -1
		} else {
			result.ExitCode = -1
		}
		return result
	}

	result.Success = true
	result.Started = true
	result.ExitCode = 0
	return result
}
