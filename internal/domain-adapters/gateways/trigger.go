package gateways

import (
	"context"
	"fmt"
)

// DownstreamTrigger fires the downstream integration-test job. The trigger
// command comes from workspace configuration; the branch that caused the
// trigger is appended as its final argument.
type DownstreamTrigger struct {
	executor *ToolExecutor
	command  []string
}

// NewDownstreamTrigger creates a downstream trigger gateway.
func NewDownstreamTrigger(executor *ToolExecutor, command []string) *DownstreamTrigger {
	return &DownstreamTrigger{
		executor: executor,
		command:  command,
	}
}

// Fire invokes the trigger command for the given branch.
func (t *DownstreamTrigger) Fire(ctx context.Context, branch string) error {
	if len(t.command) == 0 {
		return fmt.Errorf("no trigger command configured")
	}
	argv := append(append([]string(nil), t.command...), branch)
	result := t.executor.Execute(ctx, ToolInvocation{
		Argv:        argv,
		Description: "trigger integration tests for " + branch,
	})
	if !result.Success {
		return fmt.Errorf("trigger failed (exit %d): %w\nStderr: %s",
			result.ExitCode, result.Error, result.Stderr)
	}
	return nil
}
