package entities

import "time"

// WorkspaceConfig is the parsed CI workspace configuration.
type WorkspaceConfig struct {
	Tests     TestsConfig
	Runtimes  []RuntimeConfig
	Typecheck TypecheckConfig
	Pipeline  PipelineConfig
	Freeze    FreezeSpec
	Container ContainerSpec
}

// Runtime returns the runtime configuration with the given name, or the
// first configured runtime when name is empty.
func (c *WorkspaceConfig) Runtime(name string) (RuntimeConfig, bool) {
	if len(c.Runtimes) == 0 {
		return RuntimeConfig{}, false
	}
	if name == "" {
		return c.Runtimes[0], true
	}
	for _, rt := range c.Runtimes {
		if rt.Name == name {
			return rt, true
		}
	}
	return RuntimeConfig{}, false
}

// TestsConfig describes test discovery for the workspace.
type TestsConfig struct {
	Root      string
	Pattern   string
	Blacklist []string
}

// RuntimeConfig is one test-execution version: the interpreter command used
// to run the test tool and the reports directory its artifacts land in.
type RuntimeConfig struct {
	Name       string
	Command    []string
	ReportsDir string
}

// TypecheckConfig describes the external type-checking tool invocation.
type TypecheckConfig struct {
	Command    []string
	SourceDir  string
	ReportPath string
}

// PipelineConfig sequences the CI stages.
type PipelineConfig struct {
	TimeoutMinutes int
	Trigger        TriggerConfig
}

// Timeout returns the wall-clock limit for a full pipeline run.
func (p PipelineConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutMinutes) * time.Minute
}

// TriggerConfig is the conditional downstream integration-test trigger,
// keyed on branch name.
type TriggerConfig struct {
	Branch  string
	Command []string
}

// FreezeSpec describes a packaging job: freeze an application entry point
// into a standalone distributable bundle.
type FreezeSpec struct {
	Command       []string
	SpecFile      string
	DataBundles   []DataBundle
	HiddenImports []string
	OutputDir     string
	WorkDir       string
}

// DataBundle is an extra data directory or file bundled into the frozen
// distributable (e.g. migration files, term files).
type DataBundle struct {
	Source string
	Dest   string
}

// ContainerSpec parameterizes the development container.
type ContainerSpec struct {
	Image      string
	Dockerfile string
	Context    string
	Mounts     []Mount
	Env        map[string]string
	Privileged bool
	WorkDir    string
	Command    []string
}

// Mount is a bind mount into the development container.
type Mount struct {
	Source string
	Target string
}
