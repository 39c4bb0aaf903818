package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/openmotics/gwci/internal/domain-adapters/gateways"
)

func runContainer(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("container", flag.ExitOnError)
	var (
		configPath = fs.String("config", "gwci.yml", "Path to workspace configuration")
		build      = fs.Bool("build", false, "Build the development image before running")
		buildOnly  = fs.Bool("build-only", false, "Only build the image, do not run")
		tool       = fs.String("tool", "docker", "Container tool to invoke")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gwci container [options]

Build and/or run the development container described in the workspace
configuration: image, bind mounts, environment variables, privilege flag and
working directory.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(ctx, *configPath)
	if cfg.Container.Image == "" {
		fmt.Fprintf(os.Stderr, "Error: container.image is not configured\n")
		os.Exit(1)
	}

	runtime := gateways.NewContainerRuntime(gateways.NewToolExecutor(), *tool)

	if *build || *buildOnly {
		fmt.Printf("🔨 Building image %s\n", cfg.Container.Image)
		if err := runtime.Build(ctx, cfg.Container); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *buildOnly {
			fmt.Println("✅ Image built")
			return
		}
	}

	fmt.Printf("🐳 Running container %s\n", cfg.Container.Image)
	if err := runtime.Run(ctx, cfg.Container); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
