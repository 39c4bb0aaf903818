// Package yaml provides YAML-based workspace configuration parsing.
package yaml

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/openmotics/gwci/internal/domain/entities"
	"github.com/openmotics/gwci/internal/domain/services"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	Tests     yamlTests     `yaml:"tests"`
	Runtimes  []yamlRuntime `yaml:"runtimes" validate:"min=1,dive"`
	Typecheck yamlTypecheck `yaml:"typecheck"`
	Pipeline  yamlPipeline  `yaml:"pipeline"`
	Freeze    yamlFreeze    `yaml:"freeze"`
	Container yamlContainer `yaml:"container"`
}

type yamlTests struct {
	Root      string   `yaml:"root" validate:"required"`
	Pattern   string   `yaml:"pattern"`
	Blacklist []string `yaml:"blacklist"`
}

type yamlRuntime struct {
	Name       string   `yaml:"name" validate:"required"`
	Command    []string `yaml:"command" validate:"min=1"`
	ReportsDir string   `yaml:"reports_dir" validate:"required"`
}

type yamlTypecheck struct {
	Command    []string `yaml:"command"`
	SourceDir  string   `yaml:"source_dir"`
	ReportPath string   `yaml:"report_path"`
}

type yamlPipeline struct {
	TimeoutMinutes int         `yaml:"timeout_minutes" validate:"gte=0"`
	Trigger        yamlTrigger `yaml:"trigger"`
}

type yamlTrigger struct {
	Branch  string   `yaml:"branch"`
	Command []string `yaml:"command"`
}

type yamlFreeze struct {
	Command       []string     `yaml:"command"`
	SpecFile      string       `yaml:"spec_file"`
	DataBundles   []yamlBundle `yaml:"data_bundles" validate:"dive"`
	HiddenImports []string     `yaml:"hidden_imports"`
	OutputDir     string       `yaml:"output_dir"`
	WorkDir       string       `yaml:"work_dir"`
}

type yamlBundle struct {
	Source string `yaml:"source" validate:"required"`
	Dest   string `yaml:"dest" validate:"required"`
}

type yamlContainer struct {
	Image      string            `yaml:"image"`
	Dockerfile string            `yaml:"dockerfile"`
	Context    string            `yaml:"context"`
	Mounts     []yamlMount       `yaml:"mounts" validate:"dive"`
	Env        map[string]string `yaml:"env"`
	Privileged bool              `yaml:"privileged"`
	WorkDir    string            `yaml:"workdir"`
	Command    []string          `yaml:"command"`
}

type yamlMount struct {
	Source string `yaml:"source" validate:"required"`
	Target string `yaml:"target" validate:"required"`
}

// ConfigParser parses YAML workspace configuration files
type ConfigParser struct {
	validate *validator.Validate
}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{
		validate: validator.New(),
	}
}

// ParseFile parses a YAML configuration file into a WorkspaceConfig entity
func (p *ConfigParser) ParseFile(filePath string) (*entities.WorkspaceConfig, error) {
	//nolint:gosec // G304: filePath is the workspace configuration path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a WorkspaceConfig entity, applying defaults
// and validating required fields.
func (p *ConfigParser) Parse(data []byte) (*entities.WorkspaceConfig, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&raw)

	if err := p.validate.Struct(&raw); err != nil {
		return nil, fmt.Errorf("invalid workspace configuration: %w", err)
	}

	return convert(&raw), nil
}

func applyDefaults(raw *yamlConfig) {
	if raw.Tests.Pattern == "" {
		raw.Tests.Pattern = services.DefaultTestPattern
	}
	if raw.Tests.Blacklist == nil {
		raw.Tests.Blacklist = entities.DefaultBlacklist
	}
	if raw.Pipeline.Trigger.Branch == "" {
		raw.Pipeline.Trigger.Branch = "develop"
	}
	if len(raw.Freeze.Command) == 0 {
		raw.Freeze.Command = []string{"pyinstaller"}
	}
}

func convert(raw *yamlConfig) *entities.WorkspaceConfig {
	cfg := &entities.WorkspaceConfig{
		Tests: entities.TestsConfig{
			Root:      raw.Tests.Root,
			Pattern:   raw.Tests.Pattern,
			Blacklist: raw.Tests.Blacklist,
		},
		Typecheck: entities.TypecheckConfig{
			Command:    raw.Typecheck.Command,
			SourceDir:  raw.Typecheck.SourceDir,
			ReportPath: raw.Typecheck.ReportPath,
		},
		Pipeline: entities.PipelineConfig{
			TimeoutMinutes: raw.Pipeline.TimeoutMinutes,
			Trigger: entities.TriggerConfig{
				Branch:  raw.Pipeline.Trigger.Branch,
				Command: raw.Pipeline.Trigger.Command,
			},
		},
		Freeze: entities.FreezeSpec{
			Command:       raw.Freeze.Command,
			SpecFile:      raw.Freeze.SpecFile,
			HiddenImports: raw.Freeze.HiddenImports,
			OutputDir:     raw.Freeze.OutputDir,
			WorkDir:       raw.Freeze.WorkDir,
		},
		Container: entities.ContainerSpec{
			Image:      raw.Container.Image,
			Dockerfile: raw.Container.Dockerfile,
			Context:    raw.Container.Context,
			Env:        raw.Container.Env,
			Privileged: raw.Container.Privileged,
			WorkDir:    raw.Container.WorkDir,
			Command:    raw.Container.Command,
		},
	}

	for _, rt := range raw.Runtimes {
		cfg.Runtimes = append(cfg.Runtimes, entities.RuntimeConfig{
			Name:       rt.Name,
			Command:    rt.Command,
			ReportsDir: rt.ReportsDir,
		})
	}
	for _, bundle := range raw.Freeze.DataBundles {
		cfg.Freeze.DataBundles = append(cfg.Freeze.DataBundles, entities.DataBundle{
			Source: bundle.Source,
			Dest:   bundle.Dest,
		})
	}
	for _, mount := range raw.Container.Mounts {
		cfg.Container.Mounts = append(cfg.Container.Mounts, entities.Mount{
			Source: mount.Source,
			Target: mount.Target,
		})
	}

	return cfg
}
