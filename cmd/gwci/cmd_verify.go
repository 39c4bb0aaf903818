package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/openmotics/gwci/internal/domain-adapters/gateways"
	"github.com/openmotics/gwci/internal/external-adapters/gpg"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		file      = fs.String("file", "", "Bundle file to verify")
		md5sum    = fs.String("md5", "", "Expected MD5 digest")
		sha256sum = fs.String("sha256", "", "Expected SHA256 digest")
		signature = fs.String("signature", "", "Detached signature file")
		keyring   = fs.String("keyring", "", "Keyring file with trusted public keys")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gwci verify --file <bundle> [options]

Verify a packaged bundle against expected checksums and, when a signature and
keyring are given, a detached GPG signature.

Examples:
  gwci verify --file dist/gateway.tgz --md5 8f3a...
  gwci verify --file dist/gateway.tgz --sha256 1c9b... --signature dist/gateway.tgz.asc --keyring keys.asc

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *file == "" {
		fmt.Fprintf(os.Stderr, "Error: --file is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	if *md5sum == "" && *sha256sum == "" && *signature == "" {
		fmt.Fprintf(os.Stderr, "Error: nothing to verify, pass --md5, --sha256 or --signature\n")
		os.Exit(1)
	}

	verifier := gateways.NewChecksumVerifier()

	if *md5sum != "" {
		if err := verifier.VerifyChecksum(ctx, *file, *md5sum, gateways.AlgorithmMD5); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ MD5 checksum verified")
	}

	if *sha256sum != "" {
		if err := verifier.VerifyChecksum(ctx, *file, *sha256sum, gateways.AlgorithmSHA256); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ SHA256 checksum verified")
	}

	if *signature != "" {
		if *keyring == "" {
			fmt.Fprintf(os.Stderr, "Error: --keyring is required with --signature\n")
			os.Exit(1)
		}
		gpgVerifier := gpg.NewVerifier()
		if err := gpgVerifier.ImportKeyringFile(*keyring); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := gpgVerifier.VerifyDetachedSignature(*file, *signature); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ GPG signature verified")
	}
}
