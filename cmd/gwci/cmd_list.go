package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/openmotics/gwci/internal/domain/entities"
	"github.com/openmotics/gwci/internal/domain/services"
)

func runList(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var (
		configPath = fs.String("config", "gwci.yml", "Path to workspace configuration")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gwci list [options]

List every test file discovery would select, plus the files the blacklist
skips. Useful for auditing blacklist entries before a run.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(ctx, *configPath)
	selector := services.NewSelectionService(entities.NewBlacklist(cfg.Tests.Blacklist), cfg.Tests.Pattern)

	selected, skipped, err := selector.DiscoverTests(cfg.Tests.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Test files under %s (pattern %s):\n\n", cfg.Tests.Root, selector.Pattern())
	for _, file := range selected {
		fmt.Printf("  %s  →  %s.xml\n", file.Path, file.ReportName)
	}
	if len(skipped) > 0 {
		fmt.Printf("\nBlacklisted:\n")
		for _, file := range skipped {
			fmt.Printf("  ⏭️  %s\n", file.Path)
		}
	}
	fmt.Printf("\n%d selected, %d blacklisted\n", len(selected), len(skipped))
}
