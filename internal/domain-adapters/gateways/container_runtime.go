package gateways

import (
	"context"
	"fmt"
	"sort"

	"github.com/openmotics/gwci/internal/domain/entities"
)

// ContainerRuntime drives the container CLI to build and run the development
// container. The container tool itself is an external collaborator; this
// gateway only assembles and executes its command lines.
type ContainerRuntime struct {
	executor *ToolExecutor
	tool     string
}

// NewContainerRuntime creates a container runtime gateway. An empty tool
// defaults to "docker".
func NewContainerRuntime(executor *ToolExecutor, tool string) *ContainerRuntime {
	if tool == "" {
		tool = "docker"
	}
	return &ContainerRuntime{
		executor: executor,
		tool:     tool,
	}
}

// BuildInvocation assembles the image build command line.
func (c *ContainerRuntime) BuildInvocation(spec entities.ContainerSpec) ToolInvocation {
	argv := []string{c.tool, "build", "-t", spec.Image}
	if spec.Dockerfile != "" {
		argv = append(argv, "-f", spec.Dockerfile)
	}
	buildContext := spec.Context
	if buildContext == "" {
		buildContext = "."
	}
	argv = append(argv, buildContext)
	return ToolInvocation{
		Argv:        argv,
		Description: "build image " + spec.Image,
	}
}

// RunInvocation assembles the container run command line: mounts,
// environment variables, privilege flag and working directory.
func (c *ContainerRuntime) RunInvocation(spec entities.ContainerSpec) ToolInvocation {
	argv := []string{c.tool, "run", "--rm", "-it"}
	if spec.Privileged {
		argv = append(argv, "--privileged")
	}
	for _, mount := range spec.Mounts {
		argv = append(argv, "-v", fmt.Sprintf("%s:%s", mount.Source, mount.Target))
	}
	// Sorted for a deterministic command line
	keys := make([]string, 0, len(spec.Env))
	for key := range spec.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		argv = append(argv, "-e", fmt.Sprintf("%s=%s", key, spec.Env[key]))
	}
	if spec.WorkDir != "" {
		argv = append(argv, "-w", spec.WorkDir)
	}
	argv = append(argv, spec.Image)
	argv = append(argv, spec.Command...)
	return ToolInvocation{
		Argv:        argv,
		Description: "run container " + spec.Image,
	}
}

// Build builds the development container image.
func (c *ContainerRuntime) Build(ctx context.Context, spec entities.ContainerSpec) error {
	result := c.executor.Execute(ctx, c.BuildInvocation(spec))
	if !result.Success {
		return fmt.Errorf("image build failed (exit %d): %w\nStderr: %s",
			result.ExitCode, result.Error, result.Stderr)
	}
	return nil
}

// Run starts the development container and waits for it to exit.
func (c *ContainerRuntime) Run(ctx context.Context, spec entities.ContainerSpec) error {
	result := c.executor.Execute(ctx, c.RunInvocation(spec))
	if !result.Success {
		return fmt.Errorf("container run failed (exit %d): %w\nStderr: %s",
			result.ExitCode, result.Error, result.Stderr)
	}
	return nil
}
