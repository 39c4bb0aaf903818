package gateways

import (
	"context"

	"github.com/openmotics/gwci/internal/domain/entities"
)

// Typechecker invokes the external type-checking tool against a source
// directory, writing a structured report to the given path.
type Typechecker struct {
	executor *ToolExecutor
	command  []string
}

// NewTypechecker creates a typechecker gateway for the configured command.
func NewTypechecker(executor *ToolExecutor, command []string) *Typechecker {
	return &Typechecker{
		executor: executor,
		command:  command,
	}
}

// Invocation builds the type-check tool invocation.
func (t *Typechecker) Invocation(sourceDir, reportPath string) ToolInvocation {
	argv := append(append([]string(nil), t.command...),
		sourceDir,
		"--junit-xml", reportPath,
	)
	return ToolInvocation{
		Argv:        argv,
		Description: "typecheck " + sourceDir,
	}
}

// Check runs the type checker and reports the outcome.
func (t *Typechecker) Check(ctx context.Context, sourceDir, reportPath string) entities.ToolOutcome {
	result := t.executor.Execute(ctx, t.Invocation(sourceDir, reportPath))
	return entities.ToolOutcome{
		Started:  result.Started,
		ExitCode: result.ExitCode,
		Duration: result.Duration,
		Output:   result.Stdout + result.Stderr,
	}
}
