package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openmotics/gwci/internal/domain-adapters/gateways"
)

func runPackage(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("package", flag.ExitOnError)
	var (
		configPath = fs.String("config", "gwci.yml", "Path to workspace configuration")
		outputDir  = fs.String("output-dir", "", "Output directory override")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gwci package [options]

Freeze the service entry point into a standalone distributable bundle using
the configured packaging tool, bundling the extra data directories and
hidden-import hints from the workspace configuration. A SHA256 sidecar is
written next to each produced bundle file.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig(ctx, *configPath)
	spec := cfg.Freeze
	if *outputDir != "" {
		spec.OutputDir = *outputDir
	}
	if spec.SpecFile == "" {
		fmt.Fprintf(os.Stderr, "Error: freeze.spec_file is not configured\n")
		os.Exit(1)
	}

	executor := gateways.NewToolExecutor()
	freezer := gateways.NewFreezer(executor)

	fmt.Printf("📦 Freezing %s\n", spec.SpecFile)
	if err := freezer.Freeze(ctx, spec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeChecksumSidecars(spec.OutputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write checksum sidecars: %v\n", err)
	}

	fmt.Printf("✅ Bundle written to %s\n", spec.OutputDir)
}

// writeChecksumSidecars writes a "<file>.sha256" next to each regular file in
// the bundle output directory.
func writeChecksumSidecars(outputDir string) error {
	if outputDir == "" {
		return nil
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	verifier := gateways.NewChecksumVerifier()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) == ".sha256" {
			continue
		}
		path := filepath.Join(outputDir, entry.Name())
		sum, err := verifier.CalculateChecksum(path, gateways.AlgorithmSHA256)
		if err != nil {
			return err
		}
		sidecar := fmt.Sprintf("%s  %s\n", sum, entry.Name())
		if err := os.WriteFile(path+".sha256", []byte(sidecar), 0600); err != nil {
			return fmt.Errorf("failed to write sidecar for %s: %w", entry.Name(), err)
		}
	}
	return nil
}
