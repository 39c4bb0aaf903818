package gateways

import (
	"context"
	"fmt"

	"github.com/openmotics/gwci/internal/domain/entities"
)

// Freezer invokes the packaging tool that freezes an application entry point
// into a standalone distributable bundle.
type Freezer struct {
	executor *ToolExecutor
}

// NewFreezer creates a freezer gateway.
func NewFreezer(executor *ToolExecutor) *Freezer {
	return &Freezer{executor: executor}
}

// Invocation builds the freezing-tool invocation from a freeze spec: the
// tool's spec file, one --add-data flag per data bundle and one
// --hidden-import flag per hint.
func (f *Freezer) Invocation(spec entities.FreezeSpec) ToolInvocation {
	argv := append([]string(nil), spec.Command...)
	argv = append(argv, spec.SpecFile)
	if spec.OutputDir != "" {
		argv = append(argv, "--distpath", spec.OutputDir)
	}
	for _, bundle := range spec.DataBundles {
		argv = append(argv, "--add-data", fmt.Sprintf("%s:%s", bundle.Source, bundle.Dest))
	}
	for _, imp := range spec.HiddenImports {
		argv = append(argv, "--hidden-import="+imp)
	}
	return ToolInvocation{
		Argv:        argv,
		WorkingDir:  spec.WorkDir,
		Description: "freeze " + spec.SpecFile,
	}
}

// Freeze runs the packaging tool. Unlike the test batch, a packaging failure
// is a hard error: there is no bundle to ship.
func (f *Freezer) Freeze(ctx context.Context, spec entities.FreezeSpec) error {
	result := f.executor.Execute(ctx, f.Invocation(spec))
	if !result.Success {
		return fmt.Errorf("packaging failed (exit %d): %w\nStderr: %s",
			result.ExitCode, result.Error, result.Stderr)
	}
	return nil
}
