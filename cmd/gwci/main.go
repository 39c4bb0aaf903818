package main

import (
	"context"
	"fmt"
	"os"

	"github.com/openmotics/gwci/internal/domain/entities"
	"github.com/openmotics/gwci/internal/domain/interfaces"
	"github.com/openmotics/gwci/internal/domain/interfaces/repositories"
	"github.com/openmotics/gwci/internal/external-adapters/yaml"
	"github.com/openmotics/gwci/internal/external-adapters/zaplog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "run":
		runRun(ctx, os.Args[2:])
	case "list":
		runList(ctx, os.Args[2:])
	case "typecheck":
		runTypecheck(ctx, os.Args[2:])
	case "pipeline":
		runPipeline(ctx, os.Args[2:])
	case "package":
		runPackage(ctx, os.Args[2:])
	case "container":
		runContainer(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "selftest":
		runSelftest(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gwci - CI automation toolkit for the gateway service

Usage:
  gwci <command> [options]

Commands:
  run        Discover and run unit test files, one report per file
  list       List discovered test files and blacklist skips
  typecheck  Run the type checker with a structured report
  pipeline   Run the full CI pipeline (typecheck, unit tests, trigger)
  package    Freeze the service into a distributable bundle
  container  Build or run the development container
  verify     Verify bundle checksums and signatures
  selftest   Run the serial loopback self check

Use "gwci <command> --help" for more information about a command.`)
}

// newLogger builds the zap-backed logger shared by all commands.
func newLogger(verbose bool) interfaces.Logger {
	log, err := zaplog.New(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return log
}

// loadConfig loads and validates the workspace configuration or exits.
func loadConfig(ctx context.Context, path string) *entities.WorkspaceConfig {
	var repo repositories.ConfigRepository = yaml.NewConfigRepository(path)
	cfg, err := repo.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
